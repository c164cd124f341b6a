package spider

import "github.com/spatialbench/sbgen/internal/seed"

// Thomas is a Poisson cluster process: cluster centers sit uniformly in the
// unit square and each point is a Gaussian offset from its center. The
// cluster for a row follows from its index alone, so partitions agree on
// assignments without coordination.
type Thomas struct {
	PointsPerCluster int64
	Sigma            float64
}

// Draw slots 32/33 hold the center coordinates for a cluster; leaf offsets
// use slots 0-3. Centers are addressed by cluster id, leaves by row index.
const (
	clusterCenterX = 32
	clusterCenterY = 33
)

func (t Thomas) Sample(st seed.Stream, index int64) (float64, float64) {
	cluster := index / t.PointsPerCluster
	cx := st.Float(cluster, clusterCenterX)
	cy := st.Float(cluster, clusterCenterY)
	x := fold(cx + st.Norm(index, 0)*t.Sigma)
	y := fold(cy + st.Norm(index, 2)*t.Sigma)
	return x, y
}
