package spider

import "github.com/spatialbench/sbgen/internal/seed"

// Uniform draws each axis independently and uniformly.
type Uniform struct{}

func (Uniform) Sample(st seed.Stream, index int64) (float64, float64) {
	return st.Float(index, 0), st.Float(index, 1)
}
