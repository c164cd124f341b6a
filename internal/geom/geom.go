// Package geom holds the geometry values the generators emit and their
// well-known-text rendering.
package geom

type Kind int

const (
	KindPoint Kind = iota
	KindBox
	KindPolygon
)

type Point struct {
	Lon, Lat float64
}

type Box struct {
	Min, Max Point
}

func (b Box) Contains(p Point) bool {
	return p.Lon >= b.Min.Lon && p.Lon <= b.Max.Lon &&
		p.Lat >= b.Min.Lat && p.Lat <= b.Max.Lat
}

// Geometry is the tagged variant produced per spatial column value. For
// polygons, Ring holds the open ring (first vertex not repeated); rendering
// closes it. Ring may alias a caller-owned scratch buffer, so a Geometry is
// only valid until the next generation call on the same scratch.
type Geometry struct {
	Kind  Kind
	Point Point
	Box   Box
	Ring  []Point
}
