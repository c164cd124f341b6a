package spatial

const (
	geomPoint   = "point"
	geomBox     = "box"
	geomPolygon = "polygon"
)

// defaultContinents are the built-in weighted world regions. Weights roughly
// track where trip-like activity concentrates.
func defaultContinents() []ContinentSpec {
	return []ContinentSpec{
		{Name: "north_america", BBox: []float64{-168, 7, -52, 72}, Weight: 3},
		{Name: "south_america", BBox: []float64{-82, -56, -34, 12}, Weight: 1.5},
		{Name: "europe", BBox: []float64{-10, 36, 40, 70}, Weight: 3},
		{Name: "africa", BBox: []float64{-17, -35, 51, 37}, Weight: 1.5},
		{Name: "asia", BBox: []float64{26, -10, 145, 55}, Weight: 4},
		{Name: "oceania", BBox: []float64{112, -47, 180, -10}, Weight: 0.8},
		{Name: "antarctica", BBox: []float64{-180, -90, 180, -60}, Weight: 0.2},
	}
}

func defaultDistributions() []DistributionSpec {
	return []DistributionSpec{
		{Type: "thomas", Weight: 0.5, Params: map[string]float64{"points_per_cluster": 200, "sigma": 0.02}},
		{Type: "uniform", Weight: 0.3},
		{Type: "normal", Weight: 0.2, Params: map[string]float64{"sigma": 0.15}},
	}
}

func defaultColumn(geomType string) ColumnConfig {
	cc := ColumnConfig{
		Distributions: defaultDistributions(),
		Continents:    defaultContinents(),
	}
	switch geomType {
	case geomPolygon:
		cc.GeomTypes = []GeomTypeSpec{{Type: geomPolygon, Weight: 1}}
	case geomBox:
		cc.GeomTypes = []GeomTypeSpec{{Type: geomBox, Weight: 1}}
	default:
		cc.GeomTypes = []GeomTypeSpec{{Type: geomPoint, Weight: 1}}
	}
	return cc
}

// Defaults is the built-in lowest-precedence config tier.
func Defaults() FileConfig {
	return FileConfig{
		Columns: map[string]ColumnConfig{
			"trip.pickup":       defaultColumn(geomPoint),
			"trip.dropoff":      defaultColumn(geomPoint),
			"building.boundary": defaultColumn(geomPolygon),
			"zone.boundary": {
				Distributions: defaultDistributions(),
				Continents:    defaultContinents(),
				GeomTypes: []GeomTypeSpec{{
					Type:   geomPolygon,
					Weight: 1,
					Params: map[string]float64{"vertices": 12, "radius": 0.04, "jitter": 0.4},
				}},
			},
		},
	}
}
