package spatial

import (
	"fmt"
	"math"

	"github.com/spatialbench/sbgen/internal/seed"
)

// Choice is a precomputed weighted selection over a group of alternatives,
// picked deterministically per row index.
type Choice struct {
	cum   []float64
	total float64
}

func NewChoice(group string, weights []float64) (Choice, error) {
	if len(weights) == 0 {
		return Choice{}, fmt.Errorf("%w: %s group is empty", ErrConfig, group)
	}
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return Choice{}, fmt.Errorf("%w: %s weight %d is %v, want >= 0", ErrConfig, group, i, w)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return Choice{}, fmt.Errorf("%w: %s weights sum to zero", ErrConfig, group)
	}
	return Choice{cum: cum, total: total}, nil
}

// Pick selects the alternative for a row index using draw slot k.
func (c Choice) Pick(st seed.Stream, index int64, k uint64) int {
	r := st.Float(index, k) * c.total
	for i, cw := range c.cum {
		if r < cw {
			return i
		}
	}
	return len(c.cum) - 1
}

func (c Choice) Len() int {
	return len(c.cum)
}
