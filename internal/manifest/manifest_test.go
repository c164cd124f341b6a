package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_HashIgnoresRunIdentity(t *testing.T) {
	counts := map[string]int64{"vehicle": 100, "driver": 500}

	a, err := New(42, 1.0, []string{"vehicle", "driver"}, 2, "tbl", "builtin", counts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(42, 1.0, []string{"driver", "vehicle"}, 2, "tbl", "builtin", counts)
	if err != nil {
		t.Fatal(err)
	}

	if a.RunID == b.RunID {
		t.Fatal("expected distinct run ids")
	}
	if a.ConfigHash != b.ConfigHash {
		t.Fatalf("same config hashed differently: %s vs %s", a.ConfigHash, b.ConfigHash)
	}
}

func TestNew_HashCoversConfig(t *testing.T) {
	counts := map[string]int64{"vehicle": 100}
	base, err := New(42, 1.0, []string{"vehicle"}, 1, "tbl", "builtin", counts)
	if err != nil {
		t.Fatal(err)
	}

	variants := []*Manifest{}
	for _, mk := range []func() (*Manifest, error){
		func() (*Manifest, error) { return New(43, 1.0, []string{"vehicle"}, 1, "tbl", "builtin", counts) },
		func() (*Manifest, error) { return New(42, 2.0, []string{"vehicle"}, 1, "tbl", "builtin", counts) },
		func() (*Manifest, error) { return New(42, 1.0, []string{"vehicle"}, 4, "tbl", "builtin", counts) },
		func() (*Manifest, error) { return New(42, 1.0, []string{"vehicle"}, 1, "parquet", "builtin", counts) },
		func() (*Manifest, error) {
			return New(42, 1.0, []string{"vehicle"}, 1, "tbl", "builtin", map[string]int64{"vehicle": 200})
		},
	} {
		m, err := mk()
		if err != nil {
			t.Fatal(err)
		}
		variants = append(variants, m)
	}

	for i, v := range variants {
		if v.ConfigHash == base.ConfigHash {
			t.Errorf("variant %d did not change the config hash", i)
		}
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	m, err := New(1, 1.0, []string{"vehicle"}, 1, "tbl", "builtin", map[string]int64{"vehicle": 100})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Write(dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	var back Manifest
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.ConfigHash != m.ConfigHash || back.RunID != m.RunID {
		t.Fatal("written manifest does not round-trip")
	}
}
