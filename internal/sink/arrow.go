package sink

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/spatialbench/sbgen/internal/tables"
)

// Schema maps a generator's column layout to an Arrow schema. Decimal,
// timestamp and geometry columns travel as strings; the text rendering is
// the canonical bit-exact representation.
func Schema(gen tables.Generator) *arrow.Schema {
	cols := gen.Columns()
	fields := make([]arrow.Field, len(cols))
	for i, c := range cols {
		switch c.Type {
		case tables.TypeInt64:
			fields[i] = arrow.Field{Name: c.Name, Type: arrow.PrimitiveTypes.Int64}
		default:
			fields[i] = arrow.Field{Name: c.Name, Type: arrow.BinaryTypes.String}
		}
	}
	return arrow.NewSchema(fields, nil)
}

// nextRecord drains up to batchSize rows from the iterator into one Arrow
// record. Returns nil when the iterator is exhausted.
func nextRecord(builder *array.RecordBuilder, gen tables.Generator, it *tables.Iterator, batchSize int) (arrow.Record, error) {
	cols := gen.Columns()
	var row []any
	n := 0
	for n < batchSize {
		index, ok := it.Next()
		if !ok {
			break
		}
		var err error
		row, err = gen.Values(row[:0], index)
		if err != nil {
			return nil, err
		}
		for i, v := range row {
			switch cols[i].Type {
			case tables.TypeInt64:
				builder.Field(i).(*array.Int64Builder).Append(v.(int64))
			default:
				builder.Field(i).(*array.StringBuilder).Append(v.(string))
			}
		}
		n++
	}
	if n == 0 {
		return nil, nil
	}
	return builder.NewRecord(), nil
}

// WriteArrowIPC streams a table partition as an Arrow IPC file.
func WriteArrowIPC(w io.Writer, gen tables.Generator, it *tables.Iterator, batchSize int) (int64, error) {
	schema := Schema(gen)
	mem := memory.NewGoAllocator()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return 0, fmt.Errorf("create arrow writer: %w", err)
	}

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	var rows int64
	for {
		rec, err := nextRecord(builder, gen, it, batchSize)
		if err != nil {
			fw.Close()
			return rows, err
		}
		if rec == nil {
			break
		}
		rows += rec.NumRows()
		err = fw.Write(rec)
		rec.Release()
		if err != nil {
			fw.Close()
			return rows, fmt.Errorf("write arrow record: %w", err)
		}
	}
	return rows, fw.Close()
}
