package tables

import (
	"strconv"

	"github.com/spatialbench/sbgen/internal/geom"
	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/seed"
)

var streetNames = []string{
	"Alder", "Birch", "Cedar", "Dogwood", "Elm", "Fir", "Hawthorn", "Juniper",
	"Laurel", "Magnolia", "Oak", "Pine", "Rowan", "Spruce", "Walnut", "Willow",
	"Harbor", "Hillcrest", "Lakeview", "Meadow", "Orchard", "Prairie",
	"Ridgeline", "Riverside", "Summit", "Sunset", "Valley", "Vista",
}

var streetSuffixes = []string{"St", "Ave", "Blvd", "Rd", "Ln", "Way"}

var marketSegments = []string{"STANDARD", "PREMIUM", "POOL", "BUSINESS", "ACCESS"}

type CustomerGen struct {
	count   int64
	address seed.Stream
	phone   seed.Stream
	acctbal seed.Stream
	segment seed.Stream
}

func NewCustomer(sf float64, runSeed int64) *CustomerGen {
	t := string(scale.TableCustomer)
	return &CustomerGen{
		count:   scale.RowCount(scale.TableCustomer, sf),
		address: seed.NewStream(runSeed, t, "c_address"),
		phone:   seed.NewStream(runSeed, t, "c_phone"),
		acctbal: seed.NewStream(runSeed, t, "c_acctbal"),
		segment: seed.NewStream(runSeed, t, "c_mktsegment"),
	}
}

func (g *CustomerGen) Table() scale.Table { return scale.TableCustomer }
func (g *CustomerGen) RowCount() int64    { return g.count }

func (g *CustomerGen) Columns() []Column {
	return []Column{
		{"c_custkey", TypeInt64},
		{"c_name", TypeString},
		{"c_address", TypeString},
		{"c_phone", TypeString},
		{"c_acctbal", TypeString},
		{"c_mktsegment", TypeString},
	}
}

func (g *CustomerGen) AppendText(dst []byte, index int64) ([]byte, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	dst = strconv.AppendInt(dst, index+1, 10)
	dst = append(dst, sep)
	dst = appendKeyedName(dst, "Customer#", index+1)
	dst = append(dst, sep)
	dst = g.appendAddress(dst, index)
	dst = append(dst, sep)
	dst = g.appendPhone(dst, index)
	dst = append(dst, sep)
	dst = geom.AppendFixed(dst, g.acctbal.Range(index, 0, -99_999, 999_999), 2)
	dst = append(dst, sep)
	dst = append(dst, marketSegments[g.segment.IntN(index, 0, int64(len(marketSegments)))]...)
	return append(dst, sep), nil
}

func (g *CustomerGen) appendAddress(dst []byte, index int64) []byte {
	dst = strconv.AppendInt(dst, g.address.Range(index, 0, 1, 9999), 10)
	dst = append(dst, ' ')
	dst = append(dst, streetNames[g.address.IntN(index, 1, int64(len(streetNames)))]...)
	dst = append(dst, ' ')
	return append(dst, streetSuffixes[g.address.IntN(index, 2, int64(len(streetSuffixes)))]...)
}

func (g *CustomerGen) appendPhone(dst []byte, index int64) []byte {
	dst = appendPadded(dst, g.phone.Range(index, 0, 10, 34), 2)
	dst = append(dst, '-')
	dst = appendPadded(dst, g.phone.Range(index, 1, 100, 999), 3)
	dst = append(dst, '-')
	dst = appendPadded(dst, g.phone.Range(index, 2, 100, 999), 3)
	dst = append(dst, '-')
	return appendPadded(dst, g.phone.Range(index, 3, 1000, 9999), 4)
}

func (g *CustomerGen) Values(dst []any, index int64) ([]any, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	return append(dst,
		index+1,
		string(appendKeyedName(nil, "Customer#", index+1)),
		string(g.appendAddress(nil, index)),
		string(g.appendPhone(nil, index)),
		string(geom.AppendFixed(nil, g.acctbal.Range(index, 0, -99_999, 999_999), 2)),
		marketSegments[g.segment.IntN(index, 0, int64(len(marketSegments)))],
	), nil
}
