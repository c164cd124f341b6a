package spider

import "github.com/spatialbench/sbgen/internal/seed"

// Sierpinski plays the chaos game on a base triangle: starting from a random
// point, repeatedly average toward an index-deterministically chosen vertex.
// More iterations sharpen the gasket.
type Sierpinski struct {
	Iterations int
}

var sierpinskiVerts = [3][2]float64{
	{0, 0},
	{1, 0},
	{0.5, 0.8660254037844386}, // equilateral apex, sqrt(3)/2
}

func (s Sierpinski) Sample(st seed.Stream, index int64) (float64, float64) {
	x := st.Float(index, 0)
	y := st.Float(index, 1)
	for i := 0; i < s.Iterations; i++ {
		v := sierpinskiVerts[st.IntN(index, uint64(2+i), 3)]
		x = (x + v[0]) / 2
		y = (y + v[1]) / 2
	}
	return x, y
}
