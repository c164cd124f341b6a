package tables

import (
	"strconv"

	"github.com/spatialbench/sbgen/internal/geom"
	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/seed"
	"github.com/spatialbench/sbgen/internal/spatial"
)

// ZoneBoundary is one record from an external boundary source.
type ZoneBoundary struct {
	GersID   string
	Country  string
	Region   string
	Name     string
	Subtype  string
	Boundary geom.Geometry
}

// BoundaryFeed supplies zone boundaries. Unlike the synthetic tables, zone
// data comes from an external collaborator; the generator only assigns keys
// and slices the feed per partition. Implementations must be random access
// and repeatable: Boundary(i) returns the same record every time.
type BoundaryFeed interface {
	Count() int64
	Boundary(i int64) (ZoneBoundary, error)
}

type ZoneGen struct {
	feed BoundaryFeed
}

func NewZone(feed BoundaryFeed) *ZoneGen {
	return &ZoneGen{feed: feed}
}

func (g *ZoneGen) Table() scale.Table { return scale.TableZone }
func (g *ZoneGen) RowCount() int64    { return g.feed.Count() }

func (g *ZoneGen) Columns() []Column {
	return []Column{
		{"z_zonekey", TypeInt64},
		{"z_gersid", TypeString},
		{"z_country", TypeString},
		{"z_region", TypeString},
		{"z_name", TypeString},
		{"z_subtype", TypeString},
		{"z_boundary", TypeString},
	}
}

func (g *ZoneGen) AppendText(dst []byte, index int64) ([]byte, error) {
	if err := checkIndex(index, g.feed.Count()); err != nil {
		return dst, err
	}
	zb, err := g.feed.Boundary(index)
	if err != nil {
		return dst, err
	}
	dst = strconv.AppendInt(dst, index+1, 10)
	dst = append(dst, sep)
	dst = append(dst, zb.GersID...)
	dst = append(dst, sep)
	dst = append(dst, zb.Country...)
	dst = append(dst, sep)
	dst = append(dst, zb.Region...)
	dst = append(dst, sep)
	dst = append(dst, zb.Name...)
	dst = append(dst, sep)
	dst = append(dst, zb.Subtype...)
	dst = append(dst, sep)
	dst = geom.AppendWKT(dst, zb.Boundary)
	return append(dst, sep), nil
}

func (g *ZoneGen) Values(dst []any, index int64) ([]any, error) {
	if err := checkIndex(index, g.feed.Count()); err != nil {
		return dst, err
	}
	zb, err := g.feed.Boundary(index)
	if err != nil {
		return dst, err
	}
	return append(dst,
		index+1,
		zb.GersID,
		zb.Country,
		zb.Region,
		zb.Name,
		zb.Subtype,
		string(geom.AppendWKT(nil, zb.Boundary)),
	), nil
}

var zoneCountries = []string{"US", "CA", "MX", "BR", "GB", "FR", "DE", "ES", "IT", "NG", "ZA", "IN", "CN", "JP", "AU"}

var zoneSubtypes = []string{"county", "locality", "neighborhood", "region"}

// SyntheticFeed is the default boundary source: a deterministic stand-in for
// real administrative boundaries so the tool works without external data.
type SyntheticFeed struct {
	count    int64
	meta     seed.Stream
	boundary *spatial.Generator
	ring     []geom.Point
}

func NewSyntheticFeed(sf float64, runSeed int64, cfg *spatial.Config) *SyntheticFeed {
	t := string(scale.TableZone)
	return &SyntheticFeed{
		count:    scale.RowCount(scale.TableZone, sf),
		meta:     seed.NewStream(runSeed, t, "z_meta"),
		boundary: cfg.Generator(t, "boundary", runSeed),
	}
}

func (f *SyntheticFeed) Count() int64 { return f.count }

func (f *SyntheticFeed) Boundary(i int64) (ZoneBoundary, error) {
	if err := checkIndex(i, f.count); err != nil {
		return ZoneBoundary{}, err
	}

	var gers [32]byte
	const hex = "0123456789abcdef"
	for j := 0; j < 32; j++ {
		gers[j] = hex[f.meta.IntN(i, uint64(j), 16)]
	}

	var gg geom.Geometry
	gg, f.ring = f.boundary.At(i, f.ring)

	// Copy the ring out of the scratch buffer; feed records outlive the next
	// call by contract.
	ring := make([]geom.Point, len(gg.Ring))
	copy(ring, gg.Ring)
	gg.Ring = ring

	return ZoneBoundary{
		GersID:   string(gers[:]),
		Country:  zoneCountries[f.meta.IntN(i, 40, int64(len(zoneCountries)))],
		Region:   "R" + strconv.FormatInt(f.meta.Range(i, 41, 1, 99), 10),
		Name:     string(appendKeyedName(nil, "Zone#", i+1)),
		Subtype:  zoneSubtypes[f.meta.IntN(i, 42, int64(len(zoneSubtypes)))],
		Boundary: gg,
	}, nil
}
