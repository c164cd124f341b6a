package spider

import "github.com/spatialbench/sbgen/internal/seed"

// Normal centers points on (0.5, 0.5) with per-axis Gaussian spread Sigma.
// Out-of-range draws are reflected back into the unit square.
type Normal struct {
	Sigma float64
}

func (n Normal) Sample(st seed.Stream, index int64) (float64, float64) {
	x := fold(0.5 + st.Norm(index, 0)*n.Sigma)
	y := fold(0.5 + st.Norm(index, 2)*n.Sigma)
	return x, y
}
