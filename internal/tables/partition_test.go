package tables

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/spatialbench/sbgen/internal/scale"
)

func TestPartition_Validate(t *testing.T) {
	valid := []Partition{{1, 1}, {1, 4}, {4, 4}}
	for _, p := range valid {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v, want nil", p, err)
		}
	}
	invalid := []Partition{{0, 4}, {5, 4}, {1, 0}, {-1, 3}, {1, -1}}
	for _, p := range invalid {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", p)
		}
	}
}

func TestPartition_BoundsTileExactly(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("partitions tile [0,N) with no gap or overlap", prop.ForAll(
		func(total int64, parts int) bool {
			expectedLo := int64(0)
			for p := 1; p <= parts; p++ {
				lo, hi := (Partition{Part: p, NumParts: parts}).Bounds(total)
				if lo != expectedLo || hi < lo {
					return false
				}
				expectedLo = hi
			}
			return expectedLo == total
		},
		gen.Int64Range(0, 10_000_000),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}

func TestPartition_BoundsMatchFloorFormula(t *testing.T) {
	// Partition 2 of 3 over 10 rows covers [floor(10/3), floor(20/3)) = [3, 6).
	lo, hi := (Partition{Part: 2, NumParts: 3}).Bounds(10)
	if lo != 3 || hi != 6 {
		t.Fatalf("bounds = [%d, %d), want [3, 6)", lo, hi)
	}
}

func TestIterator_RestartYieldsSameSequence(t *testing.T) {
	gen, err := New(scale.TableDriver, testOptions(t, 0.1))
	if err != nil {
		t.Fatal(err)
	}
	it, err := NewIterator(gen, Partition{Part: 2, NumParts: 3})
	if err != nil {
		t.Fatal(err)
	}

	var first []int64
	for i, ok := it.Next(); ok; i, ok = it.Next() {
		first = append(first, i)
	}
	it.Reset()
	var second []int64
	for i, ok := it.Next(); ok; i, ok = it.Next() {
		second = append(second, i)
	}

	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("restart changed sequence length: %d vs %d", len(first), len(second))
	}
	for j := range first {
		if first[j] != second[j] {
			t.Fatalf("restart changed sequence at %d", j)
		}
	}
}

func TestIterator_RejectsInvalidPartition(t *testing.T) {
	gen, err := New(scale.TableDriver, testOptions(t, 0.1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewIterator(gen, Partition{Part: 0, NumParts: 2}); err == nil {
		t.Fatal("accepted part=0")
	}
	if _, err := NewIterator(gen, Partition{Part: 3, NumParts: 2}); err == nil {
		t.Fatal("accepted part > num_parts")
	}
}

// Concatenating all partitions must equal sequential generation, for every
// table and several partition counts.
func TestPartition_EquivalenceWithSequential(t *testing.T) {
	cases := []struct {
		table scale.Table
		sf    float64
	}{
		{scale.TableVehicle, 1},
		{scale.TableDriver, 1},
		{scale.TableCustomer, 0.02},
		{scale.TableTrip, 0.0005},
		{scale.TableZone, 1},
	}

	for _, c := range cases {
		seq, err := New(c.table, testOptions(t, c.sf))
		if err != nil {
			t.Fatal(err)
		}

		var sequential bytes.Buffer
		for i := int64(0); i < seq.RowCount(); i++ {
			line, err := seq.AppendText(nil, i)
			if err != nil {
				t.Fatal(err)
			}
			sequential.Write(line)
			sequential.WriteByte('\n')
		}

		for _, parts := range []int{1, 2, 3, 7} {
			var merged bytes.Buffer
			for p := 1; p <= parts; p++ {
				// Fresh generator per partition, as a parallel worker would use.
				worker, err := New(c.table, testOptions(t, c.sf))
				if err != nil {
					t.Fatal(err)
				}
				it, err := NewIterator(worker, Partition{Part: p, NumParts: parts})
				if err != nil {
					t.Fatal(err)
				}
				for i, ok := it.Next(); ok; i, ok = it.Next() {
					line, err := worker.AppendText(nil, i)
					if err != nil {
						t.Fatal(err)
					}
					merged.Write(line)
					merged.WriteByte('\n')
				}
			}
			if !bytes.Equal(sequential.Bytes(), merged.Bytes()) {
				t.Fatalf("%s: merged output of %d partitions differs from sequential", c.table, parts)
			}
		}
	}
}
