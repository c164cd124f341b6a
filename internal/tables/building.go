package tables

import (
	"strconv"

	"github.com/spatialbench/sbgen/internal/geom"
	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/spatial"
)

type BuildingGen struct {
	count    int64
	boundary *spatial.Generator
	ring     []geom.Point
	wkt      []byte
}

func NewBuilding(sf float64, runSeed int64, cfg *spatial.Config) *BuildingGen {
	t := string(scale.TableBuilding)
	return &BuildingGen{
		count:    scale.RowCount(scale.TableBuilding, sf),
		boundary: cfg.Generator(t, "boundary", runSeed),
	}
}

func (g *BuildingGen) Table() scale.Table { return scale.TableBuilding }
func (g *BuildingGen) RowCount() int64    { return g.count }

func (g *BuildingGen) Columns() []Column {
	return []Column{
		{"b_buildingkey", TypeInt64},
		{"b_name", TypeString},
		{"b_boundary", TypeString},
	}
}

func (g *BuildingGen) AppendText(dst []byte, index int64) ([]byte, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	dst = strconv.AppendInt(dst, index+1, 10)
	dst = append(dst, sep)
	dst = appendKeyedName(dst, "Building#", index+1)
	dst = append(dst, sep)

	var gg geom.Geometry
	gg, g.ring = g.boundary.At(index, g.ring)
	dst = geom.AppendWKT(dst, gg)
	return append(dst, sep), nil
}

func (g *BuildingGen) Values(dst []any, index int64) ([]any, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	var gg geom.Geometry
	gg, g.ring = g.boundary.At(index, g.ring)
	g.wkt = geom.AppendWKT(g.wkt[:0], gg)

	return append(dst,
		index+1,
		string(appendKeyedName(nil, "Building#", index+1)),
		string(g.wkt),
	), nil
}
