package sink

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/spatialbench/sbgen/internal/tables"
)

// WriteParquet streams a table partition as a snappy-compressed Parquet
// file, one row group per record batch.
func WriteParquet(w io.Writer, gen tables.Generator, it *tables.Iterator, batchSize int) (int64, error) {
	schema := Schema(gen)
	mem := memory.NewGoAllocator()

	writeProps := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithDictionaryDefault(false),
	)
	fw, err := pqarrow.NewFileWriter(schema, w, writeProps, pqarrow.NewArrowWriterProperties())
	if err != nil {
		return 0, fmt.Errorf("create parquet writer: %w", err)
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
			return rows, fmt.Errorf("write parquet record: %w", err)
		}
	}
	return rows, fw.Close()
}
