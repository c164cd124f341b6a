package tables

import (
	"strconv"

	"github.com/spatialbench/sbgen/internal/geom"
	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/seed"
)

// d_since spans 2010-01-01 .. 2023-12-31 as epoch days.
const (
	driverSinceLo = 14610 // 2010-01-01
	driverSinceHi = 19722 // 2023-12-31
)

type DriverGen struct {
	count   int64
	license seed.Stream
	rating  seed.Stream
	since   seed.Stream
}

func NewDriver(sf float64, runSeed int64) *DriverGen {
	t := string(scale.TableDriver)
	return &DriverGen{
		count:   scale.RowCount(scale.TableDriver, sf),
		license: seed.NewStream(runSeed, t, "d_license"),
		rating:  seed.NewStream(runSeed, t, "d_rating"),
		since:   seed.NewStream(runSeed, t, "d_since"),
	}
}

func (g *DriverGen) Table() scale.Table { return scale.TableDriver }
func (g *DriverGen) RowCount() int64    { return g.count }

func (g *DriverGen) Columns() []Column {
	return []Column{
		{"d_driverkey", TypeInt64},
		{"d_name", TypeString},
		{"d_license", TypeString},
		{"d_rating", TypeString},
		{"d_since", TypeString},
	}
}

func (g *DriverGen) AppendText(dst []byte, index int64) ([]byte, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	dst = strconv.AppendInt(dst, index+1, 10)
	dst = append(dst, sep)
	dst = appendKeyedName(dst, "Driver#", index+1)
	dst = append(dst, sep)
	dst = g.appendLicense(dst, index)
	dst = append(dst, sep)
	dst = geom.AppendFixed(dst, g.rating.Range(index, 0, 300, 500), 2)
	dst = append(dst, sep)
	dst = appendDate(dst, g.since.Range(index, 0, driverSinceLo, driverSinceHi))
	return append(dst, sep), nil
}

func (g *DriverGen) appendLicense(dst []byte, index int64) []byte {
	dst = append(dst, "DL"...)
	for k := uint64(0); k < 8; k++ {
		dst = append(dst, byte('0'+g.license.IntN(index, k, 10)))
	}
	return dst
}

func (g *DriverGen) Values(dst []any, index int64) ([]any, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	return append(dst,
		index+1,
		string(appendKeyedName(nil, "Driver#", index+1)),
		string(g.appendLicense(nil, index)),
		string(geom.AppendFixed(nil, g.rating.Range(index, 0, 300, 500), 2)),
		dateString(g.since.Range(index, 0, driverSinceLo, driverSinceHi)),
	), nil
}
