// Package sink consumes generated rows in strict per-partition index order
// and writes them out: delimited text, Arrow IPC, Parquet, or straight into
// a SQL database. All allocation happens here, past the generation hot path.
package sink

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/spatialbench/sbgen/internal/tables"
)

// TextWriter streams one table partition as delimited text, one row per
// line. Tbl mode is pipe-separated with a trailing separator; CSV mode is
// comma-separated with a header row and quoting for fields that need it.
type TextWriter struct {
	bw  *bufio.Writer
	csv bool
	buf []byte
	row []any
}

func NewTblWriter(w io.Writer) *TextWriter {
	return &TextWriter{bw: bufio.NewWriterSize(w, 1<<20)}
}

func NewCSVWriter(w io.Writer) *TextWriter {
	return &TextWriter{bw: bufio.NewWriterSize(w, 1<<20), csv: true}
}

func (tw *TextWriter) WriteTable(gen tables.Generator, it *tables.Iterator) (int64, error) {
	if tw.csv {
		return tw.writeCSV(gen, it)
	}

	var rows int64
	for index, ok := it.Next(); ok; index, ok = it.Next() {
		var err error
		tw.buf, err = gen.AppendText(tw.buf[:0], index)
		if err != nil {
			return rows, err
		}
		if _, err := tw.bw.Write(tw.buf); err != nil {
			return rows, err
		}
		if err := tw.bw.WriteByte('\n'); err != nil {
			return rows, err
		}
		rows++
	}
	return rows, tw.bw.Flush()
}

func (tw *TextWriter) writeCSV(gen tables.Generator, it *tables.Iterator) (int64, error) {
	cols := gen.Columns()
	for i, c := range cols {
		if i > 0 {
			tw.bw.WriteByte(',')
		}
		tw.bw.WriteString(c.Name)
	}
	if err := tw.bw.WriteByte('\n'); err != nil {
		return 0, err
	}

	var rows int64
	for index, ok := it.Next(); ok; index, ok = it.Next() {
		var err error
		tw.row, err = gen.Values(tw.row[:0], index)
		if err != nil {
			return rows, err
		}
		for i, v := range tw.row {
			if i > 0 {
				tw.bw.WriteByte(',')
			}
			switch val := v.(type) {
			case int64:
				tw.buf = strconv.AppendInt(tw.buf[:0], val, 10)
				tw.bw.Write(tw.buf)
			case string:
				tw.writeCSVField(val)
			}
		}
		if err := tw.bw.WriteByte('\n'); err != nil {
			return rows, err
		}
		rows++
	}
	return rows, tw.bw.Flush()
}

func (tw *TextWriter) writeCSVField(s string) {
	if !strings.ContainsAny(s, ",\"\n") {
		tw.bw.WriteString(s)
		return
	}
	tw.bw.WriteByte('"')
	tw.bw.WriteString(strings.ReplaceAll(s, `"`, `""`))
	tw.bw.WriteByte('"')
}
