package tables

import (
	"strconv"

	"github.com/spatialbench/sbgen/internal/geom"
	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/seed"
	"github.com/spatialbench/sbgen/internal/spatial"
)

// Pickup times span calendar year 2024.
const (
	tripEpochLo   = 1_704_067_200 // 2024-01-01 00:00:00 UTC
	tripYearSecs  = 366 * 86_400
	tripBaseCents = 250
)

type TripGen struct {
	count         int64
	customerCount int64
	driverCount   int64
	vehicleCount  int64

	pickupTime seed.Stream
	distance   seed.Stream
	speed      seed.Stream
	rate       seed.Stream
	tip        seed.Stream

	// pickup and dropoff are independently seeded so locations are only
	// correlated through shared trip fields, never through draws.
	pickup  *spatial.Generator
	dropoff *spatial.Generator

	ringA []geom.Point
	ringB []geom.Point
	wkt   []byte
}

func NewTrip(sf float64, runSeed int64, cfg *spatial.Config) *TripGen {
	t := string(scale.TableTrip)
	return &TripGen{
		count:         scale.RowCount(scale.TableTrip, sf),
		customerCount: scale.RowCount(scale.TableCustomer, sf),
		driverCount:   scale.RowCount(scale.TableDriver, sf),
		vehicleCount:  scale.RowCount(scale.TableVehicle, sf),
		pickupTime:    seed.NewStream(runSeed, t, "t_pickuptime"),
		distance:      seed.NewStream(runSeed, t, "t_distance"),
		speed:         seed.NewStream(runSeed, t, "t_speed"),
		rate:          seed.NewStream(runSeed, t, "t_rate"),
		tip:           seed.NewStream(runSeed, t, "t_tip"),
		pickup:        cfg.Generator(t, "pickup", runSeed),
		dropoff:       cfg.Generator(t, "dropoff", runSeed),
	}
}

func (g *TripGen) Table() scale.Table { return scale.TableTrip }
func (g *TripGen) RowCount() int64    { return g.count }

func (g *TripGen) Columns() []Column {
	return []Column{
		{"t_tripkey", TypeInt64},
		{"t_custkey", TypeInt64},
		{"t_driverkey", TypeInt64},
		{"t_vehiclekey", TypeInt64},
		{"t_pickuptime", TypeString},
		{"t_dropofftime", TypeString},
		{"t_distance", TypeString},
		{"t_fare", TypeString},
		{"t_tip", TypeString},
		{"t_totalamount", TypeString},
		{"t_pickuploc", TypeString},
		{"t_dropoffloc", TypeString},
	}
}

// fields computes the scalar trip fields; all integer arithmetic.
func (g *TripGen) fields(index int64) (pickupSec, dropoffSec, distanceM, fareCents, tipCents int64) {
	pickupSec = tripEpochLo + g.pickupTime.IntN(index, 0, tripYearSecs)
	distanceM = g.distance.Range(index, 0, 500, 50_000)
	mps := g.speed.Range(index, 0, 4, 16)
	dropoffSec = pickupSec + distanceM/mps
	rate := g.rate.Range(index, 0, 80, 150) // cents per km
	fareCents = tripBaseCents + distanceM*rate/1000
	tipCents = fareCents * g.tip.IntN(index, 0, 31) / 100
	return
}

func (g *TripGen) AppendText(dst []byte, index int64) ([]byte, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	pickupSec, dropoffSec, distanceM, fareCents, tipCents := g.fields(index)

	dst = strconv.AppendInt(dst, index+1, 10)
	dst = append(dst, sep)
	dst = strconv.AppendInt(dst, index%g.customerCount+1, 10)
	dst = append(dst, sep)
	dst = strconv.AppendInt(dst, index%g.driverCount+1, 10)
	dst = append(dst, sep)
	dst = strconv.AppendInt(dst, index%g.vehicleCount+1, 10)
	dst = append(dst, sep)
	dst = appendTimestamp(dst, pickupSec)
	dst = append(dst, sep)
	dst = appendTimestamp(dst, dropoffSec)
	dst = append(dst, sep)
	dst = geom.AppendFixed(dst, distanceM, 3) // meters rendered as km
	dst = append(dst, sep)
	dst = geom.AppendFixed(dst, fareCents, 2)
	dst = append(dst, sep)
	dst = geom.AppendFixed(dst, tipCents, 2)
	dst = append(dst, sep)
	dst = geom.AppendFixed(dst, fareCents+tipCents, 2)
	dst = append(dst, sep)

	var gg geom.Geometry
	gg, g.ringA = g.pickup.At(index, g.ringA)
	dst = geom.AppendWKT(dst, gg)
	dst = append(dst, sep)
	gg, g.ringB = g.dropoff.At(index, g.ringB)
	dst = geom.AppendWKT(dst, gg)
	return append(dst, sep), nil
}

func (g *TripGen) Values(dst []any, index int64) ([]any, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	pickupSec, dropoffSec, distanceM, fareCents, tipCents := g.fields(index)

	var gg geom.Geometry
	gg, g.ringA = g.pickup.At(index, g.ringA)
	g.wkt = geom.AppendWKT(g.wkt[:0], gg)
	pickupWKT := string(g.wkt)
	gg, g.ringB = g.dropoff.At(index, g.ringB)
	g.wkt = geom.AppendWKT(g.wkt[:0], gg)
	dropoffWKT := string(g.wkt)

	return append(dst,
		index+1,
		index%g.customerCount+1,
		index%g.driverCount+1,
		index%g.vehicleCount+1,
		timestampString(pickupSec),
		timestampString(dropoffSec),
		string(geom.AppendFixed(nil, distanceM, 3)),
		string(geom.AppendFixed(nil, fareCents, 2)),
		string(geom.AppendFixed(nil, tipCents, 2)),
		string(geom.AppendFixed(nil, fareCents+tipCents, 2)),
		pickupWKT,
		dropoffWKT,
	), nil
}
