package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialbench/sbgen/internal/logging"
	"github.com/spatialbench/sbgen/internal/manifest"
	"github.com/spatialbench/sbgen/internal/scale"
)

func testLogger() *logging.Logger {
	return logging.NewLogger("error")
}

func TestRun_SinglePartTbl(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRunner(Options{
		ScaleFactor: 1,
		Seed:        7,
		Tables:      []string{"vehicle", "driver"},
		Format:      FormatTbl,
		OutputDir:   dir,
	}, testLogger())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	m, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vehicle.tbl"))
	if err != nil {
		t.Fatalf("read vehicle.tbl: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	wantRows := scale.RowCount(scale.TableVehicle, 1)
	if int64(len(lines)) != wantRows {
		t.Errorf("vehicle.tbl has %d rows, want %d", len(lines), wantRows)
	}

	if m.ResolvedCounts["driver"] != scale.RowCount(scale.TableDriver, 1) {
		t.Errorf("manifest driver count = %d", m.ResolvedCounts["driver"])
	}

	mf, err := os.ReadFile(filepath.Join(dir, manifest.FileName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var onDisk manifest.Manifest
	if err := json.Unmarshal(mf, &onDisk); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if onDisk.ConfigHash != m.ConfigHash {
		t.Errorf("manifest hash mismatch: %s vs %s", onDisk.ConfigHash, m.ConfigHash)
	}
}

func TestRun_MultiPartLayout(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRunner(Options{
		ScaleFactor: 1,
		Seed:        7,
		Tables:      []string{"vehicle"},
		NumParts:    3,
		Format:      FormatTbl,
		OutputDir:   dir,
		Workers:     2,
	}, testLogger())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var total int64
	for _, part := range []string{"vehicle.1.tbl", "vehicle.2.tbl", "vehicle.3.tbl"} {
		data, err := os.ReadFile(filepath.Join(dir, "vehicle", part))
		if err != nil {
			t.Fatalf("read %s: %v", part, err)
		}
		total += int64(strings.Count(string(data), "\n"))
	}
	if want := scale.RowCount(scale.TableVehicle, 1); total != want {
		t.Errorf("parts sum to %d rows, want %d", total, want)
	}
}

func TestRun_SinglePartSelection(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRunner(Options{
		ScaleFactor: 1,
		Seed:        7,
		Tables:      []string{"vehicle"},
		NumParts:    4,
		Part:        2,
		Format:      FormatTbl,
		OutputDir:   dir,
	}, testLogger())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "vehicle", "vehicle.2.tbl")); err != nil {
		t.Errorf("part file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "vehicle", "vehicle.1.tbl")); !os.IsNotExist(err) {
		t.Errorf("unselected part should not exist")
	}
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	read := func(dir string) string {
		t.Helper()
		r, err := NewRunner(Options{
			ScaleFactor: 0.02,
			Seed:        42,
			Tables:      []string{"trip"},
			Format:      FormatTbl,
			OutputDir:   dir,
			Workers:     4,
		}, testLogger())
		if err != nil {
			t.Fatalf("NewRunner: %v", err)
		}
		if _, err := r.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "trip.tbl"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return string(data)
	}

	a := read(t.TempDir())
	b := read(t.TempDir())
	if a != b {
		t.Fatal("same seed and scale produced different output")
	}
}

func TestNewRunner_Rejections(t *testing.T) {
	cases := []struct {
		name string
		opts Options
	}{
		{"zero scale", Options{ScaleFactor: 0}},
		{"bad format", Options{ScaleFactor: 1, Format: "xml"}},
		{"bad table", Options{ScaleFactor: 1, Tables: []string{"nope"}}},
		{"part out of range", Options{ScaleFactor: 1, NumParts: 2, Part: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewRunner(tc.opts, testLogger()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestResolveTables_DefaultsToAll(t *testing.T) {
	got, err := resolveTables(nil)
	if err != nil {
		t.Fatalf("resolveTables: %v", err)
	}
	if len(got) != len(scale.All()) {
		t.Errorf("got %d tables, want %d", len(got), len(scale.All()))
	}
}
