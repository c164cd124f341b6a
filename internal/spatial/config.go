// Package spatial resolves spatial column configuration and produces
// geometries from it: weighted distribution, continent and geometry-type
// selection, unit-square sampling, and world-coordinate materialization.
package spatial

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spatialbench/sbgen/internal/geom"
	"github.com/spatialbench/sbgen/internal/spider"
)

var ErrConfig = errors.New("invalid spatial config")

// FileConfig is the YAML document shape. Keys of Columns are qualified
// column names ("trip.pickup", "building.boundary").
type FileConfig struct {
	Columns map[string]ColumnConfig `yaml:"columns"`
}

type ColumnConfig struct {
	Distributions []DistributionSpec `yaml:"distributions"`
	Continents    []ContinentSpec    `yaml:"continents"`
	GeomTypes     []GeomTypeSpec     `yaml:"geom_types"`
}

type DistributionSpec struct {
	Type   string             `yaml:"type"`
	Weight float64            `yaml:"weight"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

type ContinentSpec struct {
	Name   string    `yaml:"name"`
	BBox   []float64 `yaml:"bbox"` // min_lon, min_lat, max_lon, max_lat
	Weight float64   `yaml:"weight"`
}

type GeomTypeSpec struct {
	Type   string             `yaml:"type"` // point | box | polygon
	Weight float64            `yaml:"weight"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Config is the compiled, validated form. Once built it is immutable and
// safe for concurrent use.
type Config struct {
	// Source records which precedence tier supplied the config: a file path
	// or "builtin".
	Source string

	columns  map[string]*Column
	fallback *Column
}

// ColumnNames lists the configured spatial columns in sorted order.
func (c *Config) ColumnNames() []string {
	names := make([]string, 0, len(c.columns))
	for name := range c.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Column is one spatial column's compiled weighted groups.
type Column struct {
	dists      []spider.Sampler
	distChoice Choice

	continents []Continent
	contChoice Choice

	geoms      []geomSpec
	geomChoice Choice
}

type Continent struct {
	Name string
	Box  geom.Box
}

type geomSpec struct {
	kind       geom.Kind
	halfWidth  float64
	halfHeight float64
	vertices   int
	radius     float64
	jitter     float64
}

// Compile validates a file config and builds the resolved form. All
// validation failures surface here, before any generation starts.
func Compile(fc FileConfig, source string) (*Config, error) {
	cfg := &Config{Source: source, columns: make(map[string]*Column, len(fc.Columns))}
	for name, cc := range fc.Columns {
		col, err := compileColumn(cc)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		cfg.columns[name] = col
	}

	fallback, err := compileColumn(defaultColumn(geomPoint))
	if err != nil {
		return nil, err
	}
	cfg.fallback = fallback
	return cfg, nil
}

func compileColumn(cc ColumnConfig) (*Column, error) {
	col := &Column{}

	weights := make([]float64, len(cc.Distributions))
	for i, d := range cc.Distributions {
		s, err := spider.New(d.Type, d.Params)
		if err != nil {
			return nil, err
		}
		col.dists = append(col.dists, s)
		weights[i] = d.Weight
	}
	var err error
	if col.distChoice, err = NewChoice("distribution", weights); err != nil {
		return nil, err
	}

	weights = make([]float64, len(cc.Continents))
	for i, c := range cc.Continents {
		box, err := parseBBox(c.BBox)
		if err != nil {
			return nil, fmt.Errorf("continent %q: %w", c.Name, err)
		}
		col.continents = append(col.continents, Continent{Name: c.Name, Box: box})
		weights[i] = c.Weight
	}
	if col.contChoice, err = NewChoice("continent", weights); err != nil {
		return nil, err
	}

	weights = make([]float64, len(cc.GeomTypes))
	for i, g := range cc.GeomTypes {
		gs, err := parseGeomType(g)
		if err != nil {
			return nil, err
		}
		col.geoms = append(col.geoms, gs)
		weights[i] = g.Weight
	}
	if col.geomChoice, err = NewChoice("geom_type", weights); err != nil {
		return nil, err
	}

	return col, nil
}

func parseBBox(bbox []float64) (geom.Box, error) {
	if len(bbox) != 4 {
		return geom.Box{}, fmt.Errorf("%w: bbox needs 4 values [min_lon min_lat max_lon max_lat], got %d", ErrConfig, len(bbox))
	}
	b := geom.Box{
		Min: geom.Point{Lon: bbox[0], Lat: bbox[1]},
		Max: geom.Point{Lon: bbox[2], Lat: bbox[3]},
	}
	if b.Min.Lon >= b.Max.Lon || b.Min.Lat >= b.Max.Lat {
		return geom.Box{}, fmt.Errorf("%w: bbox min must be < max per axis, got %v", ErrConfig, bbox)
	}
	return b, nil
}

func parseGeomType(g GeomTypeSpec) (geomSpec, error) {
	p := func(key string, def float64) float64 {
		if v, ok := g.Params[key]; ok {
			return v
		}
		return def
	}
	switch g.Type {
	case "point":
		return geomSpec{kind: geom.KindPoint}, nil
	case "box":
		gs := geomSpec{
			kind:       geom.KindBox,
			halfWidth:  p("half_width", 0.001),
			halfHeight: p("half_height", 0.001),
		}
		if gs.halfWidth <= 0 || gs.halfHeight <= 0 {
			return geomSpec{}, fmt.Errorf("%w: box half extents must be positive", ErrConfig)
		}
		return gs, nil
	case "polygon":
		gs := geomSpec{
			kind:     geom.KindPolygon,
			vertices: int(p("vertices", 8)),
			radius:   p("radius", 0.0004),
			jitter:   p("jitter", 0.3),
		}
		if gs.vertices < 3 || gs.vertices > 64 {
			return geomSpec{}, fmt.Errorf("%w: polygon vertices must be in [3,64], got %d", ErrConfig, gs.vertices)
		}
		if gs.radius <= 0 {
			return geomSpec{}, fmt.Errorf("%w: polygon radius must be positive", ErrConfig)
		}
		if gs.jitter < 0 || gs.jitter > 1 {
			return geomSpec{}, fmt.Errorf("%w: polygon jitter must be in [0,1], got %v", ErrConfig, gs.jitter)
		}
		return gs, nil
	}
	return geomSpec{}, fmt.Errorf("%w: unknown geom type %q", ErrConfig, g.Type)
}
