package spider

import "github.com/spatialbench/sbgen/internal/seed"

// HierThomas nests two Thomas processes: parent centers spawn child centers,
// child centers spawn leaf points, each level with its own spread.
type HierThomas struct {
	ChildrenPerParent int64
	PointsPerChild    int64
	ParentSigma       float64
	ChildSigma        float64
}

const (
	parentCenterX = 40
	parentCenterY = 41
	childOffsetX  = 34
	childOffsetY  = 36
)

func (h HierThomas) Sample(st seed.Stream, index int64) (float64, float64) {
	child := index / h.PointsPerChild
	parent := child / h.ChildrenPerParent

	px := st.Float(parent, parentCenterX)
	py := st.Float(parent, parentCenterY)

	cx := fold(px + st.Norm(child, childOffsetX)*h.ParentSigma)
	cy := fold(py + st.Norm(child, childOffsetY)*h.ParentSigma)

	x := fold(cx + st.Norm(index, 0)*h.ChildSigma)
	y := fold(cy + st.Norm(index, 2)*h.ChildSigma)
	return x, y
}
