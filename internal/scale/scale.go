// Package scale maps a scale factor to per-table row counts.
package scale

import (
	"errors"
	"fmt"
	"math"
)

type Table string

const (
	TableVehicle  Table = "vehicle"
	TableDriver   Table = "driver"
	TableCustomer Table = "customer"
	TableTrip     Table = "trip"
	TableBuilding Table = "building"
	TableZone     Table = "zone"
)

// All returns every table in generation order (referenced tables first).
func All() []Table {
	return []Table{TableVehicle, TableDriver, TableCustomer, TableTrip, TableBuilding, TableZone}
}

func Parse(name string) (Table, error) {
	switch Table(name) {
	case TableVehicle, TableDriver, TableCustomer, TableTrip, TableBuilding, TableZone:
		return Table(name), nil
	}
	return "", fmt.Errorf("unknown table: %q", name)
}

var ErrScaleFactor = errors.New("scale factor must be a positive number")

func Validate(sf float64) error {
	if math.IsNaN(sf) || math.IsInf(sf, 0) || sf <= 0 {
		return fmt.Errorf("%w: got %v", ErrScaleFactor, sf)
	}
	return nil
}

const (
	tripBase     = 6_000_000
	buildingBase = 20_000
	customerBase = 30_000
	driverBase   = 500
	vehicleBase  = 100
)

// RowCount returns the number of rows table t holds at scale factor sf.
// Every component that needs a row count must go through this function;
// foreign-key validity depends on all callers agreeing on the result.
// A table never sizes below one row.
func RowCount(t Table, sf float64) int64 {
	switch t {
	case TableTrip:
		return roundHalfUp(tripBase * sf)
	case TableBuilding:
		// Sublinear table: pinned to its SF=1 size below SF=1, matching the
		// zone pipeline's max(1.0, sf) handling of sublinear growth.
		s := math.Max(1, sf)
		return roundHalfUp(buildingBase * (1 + math.Log2(s)))
	case TableCustomer:
		return roundHalfUp(customerBase * sf)
	case TableDriver:
		return roundHalfUp(driverBase * sf)
	case TableVehicle:
		return roundHalfUp(vehicleBase * sf)
	case TableZone:
		return zoneRows(math.Max(1, sf))
	}
	return 0
}

// roundHalfUp is the single rounding convention for row-count formulas.
func roundHalfUp(x float64) int64 {
	n := int64(math.Floor(x + 0.5))
	if n < 1 {
		return 1
	}
	return n
}

// zoneRows follows the zone table's step function rather than a continuous
// formula: boundary sets come in fixed tiers by scale-factor range.
func zoneRows(sf float64) int64 {
	switch {
	case sf < 10:
		return 4_856
	case sf < 100:
		return 74_132
	case sf < 1000:
		return 198_401
	default:
		return 285_069
	}
}
