package spider

import (
	"math"

	"github.com/spatialbench/sbgen/internal/seed"
)

// Bit builds each coordinate digit by digit: binary level i contributes 2^-i
// with probability Prob. Low probabilities concentrate mass near the origin
// of every scale level, producing fractal clustering.
type Bit struct {
	Prob   float64
	Digits int
}

func (b Bit) Sample(st seed.Stream, index int64) (float64, float64) {
	var x, y float64
	for i := 1; i <= b.Digits; i++ {
		if st.Float(index, uint64(2*i)) < b.Prob {
			x += math.Ldexp(1, -i)
		}
		if st.Float(index, uint64(2*i+1)) < b.Prob {
			y += math.Ldexp(1, -i)
		}
	}
	return x, y
}
