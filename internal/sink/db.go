package sink

import (
	"context"
	"fmt"

	"github.com/spatialbench/sbgen/internal/tables"
)

// Loader inserts generated rows into a SQL database. Implementations own
// connection lifecycle and dialect-specific DDL and placeholders.
type Loader interface {
	Connect(ctx context.Context) error
	Close() error
	EnsureTable(ctx context.Context, gen tables.Generator) error
	InsertBatch(ctx context.Context, table string, columns []tables.Column, rows [][]any) error
}

// Load drives a full partition through a Loader in batches. The table is
// created if missing; rows are inserted in partition index order.
func Load(ctx context.Context, loader Loader, gen tables.Generator, it *tables.Iterator, batchSize int) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batch size %d: must be positive", batchSize)
	}
	if err := loader.EnsureTable(ctx, gen); err != nil {
		return 0, err
	}

	cols := gen.Columns()
	batch := make([][]any, 0, batchSize)
	var total int64

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := loader.InsertBatch(ctx, string(gen.Table()), cols, batch); err != nil {
			return err
		}
		total += int64(len(batch))
		batch = batch[:0]
		return nil
	}

	for index, ok := it.Next(); ok; index, ok = it.Next() {
		row, err := gen.Values(nil, index)
		if err != nil {
			return total, err
		}
		batch = append(batch, row)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	return total, flush()
}

func columnDDL(cols []tables.Column, intType, textType string) string {
	ddl := ""
	for i, c := range cols {
		if i > 0 {
			ddl += ", "
		}
		switch c.Type {
		case tables.TypeInt64:
			ddl += c.Name + " " + intType
		default:
			ddl += c.Name + " " + textType
		}
	}
	return ddl
}
