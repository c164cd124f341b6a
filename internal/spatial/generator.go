package spatial

import (
	"math"

	"github.com/spatialbench/sbgen/internal/geom"
	"github.com/spatialbench/sbgen/internal/seed"
)

// Generator produces the geometry for one spatial column. It is a value
// object; the same (config, table, column, runSeed, index) always yields the
// same geometry.
type Generator struct {
	col *Column

	// pick selects distribution/continent/geometry type, value feeds the
	// distribution sampler, shape feeds box/polygon materialization. Separate
	// streams keep their draw slots from colliding.
	pick  seed.Stream
	value seed.Stream
	shape seed.Stream
}

// Generator binds a compiled column to a run seed. Unconfigured columns use
// the built-in point default.
func (c *Config) Generator(table, column string, runSeed int64) *Generator {
	col, ok := c.columns[table+"."+column]
	if !ok {
		col = c.fallback
	}
	return &Generator{
		col:   col,
		pick:  seed.NewStream(runSeed, table, column+"#pick"),
		value: seed.NewStream(runSeed, table, column+"#value"),
		shape: seed.NewStream(runSeed, table, column+"#shape"),
	}
}

// Continent returns the continent selected for a row index.
func (g *Generator) Continent(index int64) Continent {
	return g.col.continents[g.col.contChoice.Pick(g.pick, index, 1)]
}

// At produces the geometry for a row index. Polygon vertices append into
// ring's backing array; the returned slice must be passed back on the next
// call for reuse. The result is only valid until then.
func (g *Generator) At(index int64, ring []geom.Point) (geom.Geometry, []geom.Point) {
	di := g.col.distChoice.Pick(g.pick, index, 0)
	x, y := g.col.dists[di].Sample(g.value, index)

	cont := g.Continent(index)
	w := cont.Box
	lon := w.Min.Lon + x*(w.Max.Lon-w.Min.Lon)
	lat := w.Min.Lat + y*(w.Max.Lat-w.Min.Lat)

	gs := g.col.geoms[g.col.geomChoice.Pick(g.pick, index, 2)]
	switch gs.kind {
	case geom.KindBox:
		return geom.Geometry{Kind: geom.KindBox, Box: geom.Box{
			Min: geom.Point{
				Lon: math.Max(w.Min.Lon, lon-gs.halfWidth),
				Lat: math.Max(w.Min.Lat, lat-gs.halfHeight),
			},
			Max: geom.Point{
				Lon: math.Min(w.Max.Lon, lon+gs.halfWidth),
				Lat: math.Min(w.Max.Lat, lat+gs.halfHeight),
			},
		}}, ring

	case geom.KindPolygon:
		ring = ring[:0]
		n := gs.vertices
		for v := 0; v < n; v++ {
			// Jittered angle stays within its sector, so angles are strictly
			// increasing and the ring is simple.
			aj := (g.shape.Float(index, uint64(2*v)) - 0.5) * gs.jitter * 0.9
			ang := 2 * math.Pi * (float64(v) + 0.5 + aj) / float64(n)
			rad := gs.radius * (1 + (g.shape.Float(index, uint64(2*v+1))-0.5)*gs.jitter)
			p := geom.Point{
				Lon: lon + rad*math.Cos(ang),
				Lat: lat + rad*math.Sin(ang),
			}
			p.Lon = math.Min(math.Max(p.Lon, w.Min.Lon), w.Max.Lon)
			p.Lat = math.Min(math.Max(p.Lat, w.Min.Lat), w.Max.Lat)
			ring = append(ring, p)
		}
		return geom.Geometry{Kind: geom.KindPolygon, Ring: ring}, ring
	}

	return geom.Geometry{Kind: geom.KindPoint, Point: geom.Point{Lon: lon, Lat: lat}}, ring
}
