package scale

import (
	"math"
	"testing"
)

func TestRowCount_KnownSizes(t *testing.T) {
	cases := []struct {
		table Table
		sf    float64
		want  int64
	}{
		{TableTrip, 1, 6_000_000},
		{TableTrip, 0.5, 3_000_000},
		{TableCustomer, 1, 30_000},
		{TableCustomer, 2, 60_000},
		{TableDriver, 1, 500},
		{TableVehicle, 1, 100},
		{TableVehicle, 10, 1_000},
		{TableVehicle, 0.01, 1},
		{TableBuilding, 1, 20_000},
		{TableBuilding, 2, 40_000},
		{TableBuilding, 4, 60_000},
	}

	for _, c := range cases {
		if got := RowCount(c.table, c.sf); got != c.want {
			t.Errorf("RowCount(%s, %v) = %d, want %d", c.table, c.sf, got, c.want)
		}
	}
}

func TestRowCount_BuildingPinnedBelowSF1(t *testing.T) {
	if got := RowCount(TableBuilding, 0.1); got != 20_000 {
		t.Fatalf("building at SF=0.1 = %d, want 20000", got)
	}
}

func TestRowCount_ZoneTiers(t *testing.T) {
	cases := []struct {
		sf   float64
		want int64
	}{
		{0.5, 4_856},
		{1, 4_856},
		{9.99, 4_856},
		{10, 74_132},
		{100, 198_401},
		{1000, 285_069},
	}
	for _, c := range cases {
		if got := RowCount(TableZone, c.sf); got != c.want {
			t.Errorf("zone rows at SF=%v = %d, want %d", c.sf, got, c.want)
		}
	}
}

func TestRowCount_Monotonic(t *testing.T) {
	sfs := []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 50, 100, 500, 1000}
	for _, table := range All() {
		prev := int64(0)
		for _, sf := range sfs {
			n := RowCount(table, sf)
			if n < prev {
				t.Errorf("RowCount(%s, %v) = %d decreased from %d", table, sf, n, prev)
			}
			if n < 1 {
				t.Errorf("RowCount(%s, %v) = %d, want >= 1", table, sf, n)
			}
			prev = n
		}
	}
}

func TestValidate(t *testing.T) {
	for _, sf := range []float64{1, 0.001, 1000} {
		if err := Validate(sf); err != nil {
			t.Errorf("Validate(%v) = %v, want nil", sf, err)
		}
	}
	for _, sf := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := Validate(sf); err == nil {
			t.Errorf("Validate(%v) = nil, want error", sf)
		}
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse("trip"); err != nil {
		t.Fatal(err)
	}
	if _, err := Parse("orders"); err == nil {
		t.Fatal("expected error for unknown table")
	}
}
