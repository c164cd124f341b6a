package spider

import "github.com/spatialbench/sbgen/internal/seed"

// Diagonal scatters points along the main diagonal of the unit square.
// A Percent fraction lands exactly on one of five fixed offset bands spaced
// Buffer/4 apart; the rest take a Gaussian perpendicular offset scaled by
// Buffer.
type Diagonal struct {
	Percent float64
	Buffer  float64
}

func (d Diagonal) Sample(st seed.Stream, index int64) (float64, float64) {
	t := st.Float(index, 0)

	var off float64
	if st.Float(index, 1) < d.Percent {
		band := st.IntN(index, 2, 5) - 2 // -2..2
		off = float64(band) * d.Buffer / 4
	} else {
		off = st.Norm(index, 3) * d.Buffer / 4
	}

	// Perpendicular displacement splits evenly across both axes.
	return fold(t + off/2), fold(t - off/2)
}
