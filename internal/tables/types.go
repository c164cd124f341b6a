// Package tables implements the per-table row generators. Every generator is
// a pure function of (scale factor, run seed, spatial config, row index);
// rows materialize on demand and generators never hold row state.
package tables

import (
	"errors"
	"fmt"

	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/spatial"
)

type ColumnType string

const (
	TypeInt64  ColumnType = "int64"
	TypeString ColumnType = "string"
)

type Column struct {
	Name string
	Type ColumnType
}

// Generator yields the rows of one table at a fixed scale factor and seed.
// Generation methods are pure per index, but a Generator carries scratch
// buffers for geometry rings, so each worker needs its own instance.
type Generator interface {
	Table() scale.Table
	RowCount() int64
	Columns() []Column

	// AppendText renders the row at index as one pipe-delimited line with a
	// trailing separator and no newline. No heap allocation beyond growing
	// dst.
	AppendText(dst []byte, index int64) ([]byte, error)

	// Values appends one boxed value per column (int64 or string, matching
	// Columns), for structured sinks. Allocation here is acceptable; this is
	// the serialization boundary.
	Values(dst []any, index int64) ([]any, error)
}

var ErrIndex = errors.New("row index out of range")

func checkIndex(index, count int64) error {
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndex, index, count)
	}
	return nil
}

// Options configures generator construction. Spatial is required for tables
// with spatial columns; Feed overrides the zone boundary source (nil uses
// the deterministic synthetic feed).
type Options struct {
	ScaleFactor float64
	Seed        int64
	Spatial     *spatial.Config
	Feed        BoundaryFeed
}

// New builds the generator for a table.
func New(table scale.Table, opts Options) (Generator, error) {
	if err := scale.Validate(opts.ScaleFactor); err != nil {
		return nil, err
	}
	switch table {
	case scale.TableVehicle:
		return NewVehicle(opts.ScaleFactor, opts.Seed), nil
	case scale.TableDriver:
		return NewDriver(opts.ScaleFactor, opts.Seed), nil
	case scale.TableCustomer:
		return NewCustomer(opts.ScaleFactor, opts.Seed), nil
	case scale.TableTrip:
		if opts.Spatial == nil {
			return nil, fmt.Errorf("trip generator needs a spatial config")
		}
		return NewTrip(opts.ScaleFactor, opts.Seed, opts.Spatial), nil
	case scale.TableBuilding:
		if opts.Spatial == nil {
			return nil, fmt.Errorf("building generator needs a spatial config")
		}
		return NewBuilding(opts.ScaleFactor, opts.Seed, opts.Spatial), nil
	case scale.TableZone:
		feed := opts.Feed
		if feed == nil {
			if opts.Spatial == nil {
				return nil, fmt.Errorf("zone generator needs a spatial config or an explicit feed")
			}
			feed = NewSyntheticFeed(opts.ScaleFactor, opts.Seed, opts.Spatial)
		}
		return NewZone(feed), nil
	}
	return nil, fmt.Errorf("unknown table: %q", table)
}
