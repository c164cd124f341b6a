package tables

import (
	"strconv"

	"github.com/spatialbench/sbgen/internal/scale"
	"github.com/spatialbench/sbgen/internal/seed"
)

var vehicleMakes = []string{
	"Toyota", "Ford", "Honda", "Chevrolet", "Nissan", "Hyundai",
	"Volkswagen", "Kia", "Subaru", "Mazda", "Renault", "Skoda",
}

var vehicleModels = []string{
	"Aria", "Bolt", "Cadence", "Drift", "Echo", "Flux", "Glide", "Horizon",
	"Ion", "Junction", "Kite", "Lumen", "Meridian", "Nimbus", "Orbit", "Pulse",
}

type VehicleGen struct {
	count    int64
	make_    seed.Stream
	model    seed.Stream
	year     seed.Stream
	capacity seed.Stream
	plate    seed.Stream
}

func NewVehicle(sf float64, runSeed int64) *VehicleGen {
	t := string(scale.TableVehicle)
	return &VehicleGen{
		count:    scale.RowCount(scale.TableVehicle, sf),
		make_:    seed.NewStream(runSeed, t, "v_make"),
		model:    seed.NewStream(runSeed, t, "v_model"),
		year:     seed.NewStream(runSeed, t, "v_year"),
		capacity: seed.NewStream(runSeed, t, "v_capacity"),
		plate:    seed.NewStream(runSeed, t, "v_plate"),
	}
}

func (g *VehicleGen) Table() scale.Table { return scale.TableVehicle }
func (g *VehicleGen) RowCount() int64    { return g.count }

func (g *VehicleGen) Columns() []Column {
	return []Column{
		{"v_vehiclekey", TypeInt64},
		{"v_make", TypeString},
		{"v_model", TypeString},
		{"v_year", TypeInt64},
		{"v_capacity", TypeInt64},
		{"v_plate", TypeString},
	}
}

func (g *VehicleGen) AppendText(dst []byte, index int64) ([]byte, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	dst = strconv.AppendInt(dst, index+1, 10)
	dst = append(dst, sep)
	dst = append(dst, vehicleMakes[g.make_.IntN(index, 0, int64(len(vehicleMakes)))]...)
	dst = append(dst, sep)
	dst = append(dst, vehicleModels[g.model.IntN(index, 0, int64(len(vehicleModels)))]...)
	dst = append(dst, sep)
	dst = strconv.AppendInt(dst, g.year.Range(index, 0, 2005, 2024), 10)
	dst = append(dst, sep)
	dst = strconv.AppendInt(dst, g.capacity.Range(index, 0, 1, 6), 10)
	dst = append(dst, sep)
	dst = g.appendPlate(dst, index)
	return append(dst, sep), nil
}

func (g *VehicleGen) appendPlate(dst []byte, index int64) []byte {
	for k := uint64(0); k < 3; k++ {
		dst = append(dst, byte('A'+g.plate.IntN(index, k, 26)))
	}
	dst = append(dst, '-')
	for k := uint64(3); k < 7; k++ {
		dst = append(dst, byte('0'+g.plate.IntN(index, k, 10)))
	}
	return dst
}

func (g *VehicleGen) Values(dst []any, index int64) ([]any, error) {
	if err := checkIndex(index, g.count); err != nil {
		return dst, err
	}
	return append(dst,
		index+1,
		vehicleMakes[g.make_.IntN(index, 0, int64(len(vehicleMakes)))],
		vehicleModels[g.model.IntN(index, 0, int64(len(vehicleModels)))],
		g.year.Range(index, 0, 2005, 2024),
		g.capacity.Range(index, 0, 1, 6),
		string(g.appendPlate(nil, index)),
	), nil
}
