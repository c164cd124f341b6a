package sink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/tables"
)

func vehicleGen(t *testing.T) tables.Generator {
	t.Helper()
	gen, err := tables.New(scale.TableVehicle, tables.Options{ScaleFactor: 1, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return gen
}

func fullIterator(t *testing.T, gen tables.Generator) *tables.Iterator {
	t.Helper()
	it, err := tables.NewIterator(gen, tables.Partition{Part: 1, NumParts: 1})
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	return it
}

func TestTblWriter(t *testing.T) {
	gen := vehicleGen(t)
	var buf bytes.Buffer

	n, err := NewTblWriter(&buf).WriteTable(gen, fullIterator(t, gen))
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if n != gen.RowCount() {
		t.Fatalf("wrote %d rows, want %d", n, gen.RowCount())
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if int64(len(lines)) != gen.RowCount() {
		t.Fatalf("%d lines, want %d", len(lines), gen.RowCount())
	}
	for i, line := range lines {
		if !strings.HasSuffix(line, "|") {
			t.Fatalf("line %d missing trailing separator: %q", i, line)
		}
		if got := strings.Count(line, "|"); got != len(gen.Columns()) {
			t.Fatalf("line %d has %d separators, want %d: %q", i, got, len(gen.Columns()), line)
		}
	}
	if !strings.HasPrefix(lines[0], "1|") {
		t.Errorf("first row should carry key 1: %q", lines[0])
	}
}

func TestCSVWriter(t *testing.T) {
	gen := vehicleGen(t)
	var buf bytes.Buffer

	n, err := NewCSVWriter(&buf).WriteTable(gen, fullIterator(t, gen))
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if int64(len(lines)) != n+1 {
		t.Fatalf("%d lines, want %d rows plus header", len(lines), n)
	}

	wantHeader := make([]string, 0, len(gen.Columns()))
	for _, c := range gen.Columns() {
		wantHeader = append(wantHeader, c.Name)
	}
	if lines[0] != strings.Join(wantHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	tw := NewCSVWriter(&buf)
	tw.writeCSVField(`plain`)
	tw.bw.WriteByte(',')
	tw.writeCSVField(`has,comma`)
	tw.bw.WriteByte(',')
	tw.writeCSVField(`has"quote`)
	tw.bw.Flush()

	want := `plain,"has,comma","has""quote"`
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestArrowIPCRoundCount(t *testing.T) {
	gen := vehicleGen(t)
	var buf bytes.Buffer

	n, err := WriteArrowIPC(&buf, gen, fullIterator(t, gen), 32)
	if err != nil {
		t.Fatalf("WriteArrowIPC: %v", err)
	}
	if n != gen.RowCount() {
		t.Fatalf("wrote %d rows, want %d", n, gen.RowCount())
	}
	if buf.Len() == 0 {
		t.Fatal("empty arrow output")
	}
}

func TestParquetRoundCount(t *testing.T) {
	gen := vehicleGen(t)
	var buf bytes.Buffer

	n, err := WriteParquet(&buf, gen, fullIterator(t, gen), 32)
	if err != nil {
		t.Fatalf("WriteParquet: %v", err)
	}
	if n != gen.RowCount() {
		t.Fatalf("wrote %d rows, want %d", n, gen.RowCount())
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("PAR1")) {
		t.Error("missing parquet magic")
	}
}

func TestSQLiteLoad(t *testing.T) {
	gen := vehicleGen(t)
	ctx := context.Background()

	loader := NewSQLiteLoader(":memory:")
	if err := loader.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer loader.Close()

	n, err := Load(ctx, loader, gen, fullIterator(t, gen), 37)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != gen.RowCount() {
		t.Fatalf("loaded %d rows, want %d", n, gen.RowCount())
	}

	var count int64
	if err := loader.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vehicle").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != gen.RowCount() {
		t.Fatalf("table has %d rows, want %d", count, gen.RowCount())
	}

	var key int64
	var mk string
	if err := loader.db.QueryRowContext(ctx,
		"SELECT v_vehiclekey, v_make FROM vehicle WHERE v_vehiclekey = 1").Scan(&key, &mk); err != nil {
		t.Fatalf("select: %v", err)
	}
	if key != 1 || mk == "" {
		t.Errorf("row 1 = (%d, %q)", key, mk)
	}

	// Loading again into the same table appends; EnsureTable must not fail.
	if _, err := Load(ctx, loader, gen, fullIterator(t, gen), 37); err != nil {
		t.Fatalf("second Load: %v", err)
	}
}

func TestLoadRejectsBadBatchSize(t *testing.T) {
	gen := vehicleGen(t)
	if _, err := Load(context.Background(), NewSQLiteLoader(":memory:"), gen, fullIterator(t, gen), 0); err == nil {
		t.Fatal("expected error for batch size 0")
	}
}
