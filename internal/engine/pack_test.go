package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loadwise/trailerpack/internal/model"
)

func unit(sku string, l, w, h float64, origin int) BoxUnit {
	return BoxUnit{SKU: sku, Length: l, Width: w, Height: h, RotationAllowed: true, OriginIndex: origin}
}

func TestExpandUnits_QuantityAndOriginIndex(t *testing.T) {
	boxes := []model.Box{
		{SKU: "A", Length: 30, Width: 20, Height: 10, Quantity: 2, RotationAllowed: true},
		{SKU: "B", Length: 50, Width: 40, Height: 25, Quantity: 3, RotationAllowed: false},
	}

	units := ExpandUnits(boxes, true)

	require.Len(t, units, 5)
	for i, u := range units {
		assert.Equal(t, i, u.OriginIndex, "origin indices are strictly increasing")
	}
	assert.Equal(t, "A", units[0].SKU)
	assert.Equal(t, "B", units[2].SKU)
	assert.True(t, units[0].RotationAllowed)
	assert.False(t, units[2].RotationAllowed)
}

func TestExpandUnits_GlobalRotationOverridesBoxFlag(t *testing.T) {
	boxes := []model.Box{
		{SKU: "A", Length: 30, Width: 20, Height: 10, Quantity: 1, RotationAllowed: true},
	}

	units := ExpandUnits(boxes, false)

	require.Len(t, units, 1)
	assert.False(t, units[0].RotationAllowed, "global flag is AND-combined")
}

func TestPackFloor_SimplePacking(t *testing.T) {
	units := []BoxUnit{
		unit("A", 30, 20, 10, 0),
		unit("B", 30, 20, 10, 1),
	}

	placed, remaining := packFloor(100, 50, units)

	assert.Len(t, placed, 2)
	assert.Len(t, remaining, 0)
}

func TestPackFloor_OverflowReturnsRemaining(t *testing.T) {
	// Only one 60x60 footprint fits a 100x100 floor: the residual strips
	// are 40 and 100 wide, too narrow for another 60x60.
	units := []BoxUnit{
		unit("A", 60, 60, 10, 0),
		unit("A", 60, 60, 10, 1),
		unit("A", 60, 60, 10, 2),
	}

	placed, remaining := packFloor(100, 100, units)

	require.Len(t, placed, 1)
	require.Len(t, remaining, 2)
	assert.Equal(t, 0.0, placed[0].x)
	assert.Equal(t, 0.0, placed[0].y)
}

func TestPackLayers_SingleLayerWhenStackingDisabled(t *testing.T) {
	units := []BoxUnit{
		unit("A", 80, 80, 30, 0),
		unit("A", 80, 80, 30, 1),
		unit("A", 80, 80, 30, 2),
	}

	placed, remaining, layers := PackLayers(100, 100, 100, units, 3, false)

	require.Len(t, layers, 1, "stacking disabled caps the packing at one floor")
	assert.Len(t, placed, 1)
	assert.Len(t, remaining, 2)
	for _, p := range placed {
		assert.Equal(t, 1, p.Layer)
		assert.Equal(t, 0.0, p.Z)
	}
}

func TestPackLayers_StackingUsesMultipleLayers(t *testing.T) {
	var units []BoxUnit
	for i := 0; i < 6; i++ {
		units = append(units, unit("A", 80, 80, 30, i))
	}

	placed, remaining, layers := PackLayers(100, 100, 100, units, 3, true)

	// One 80x80 footprint per floor, three floors of height 30.
	require.Len(t, layers, 3)
	assert.Len(t, placed, 3)
	assert.Len(t, remaining, 3)

	seen := map[int]bool{}
	for _, p := range placed {
		seen[p.Layer] = true
	}
	assert.Len(t, seen, 3, "placements span multiple layers")
}

func TestPackLayers_ZBaseAccumulatesLayerHeights(t *testing.T) {
	var units []BoxUnit
	for i := 0; i < 3; i++ {
		units = append(units, unit("A", 80, 80, 30, i))
	}

	_, _, layers := PackLayers(100, 100, 100, units, 3, true)

	require.Len(t, layers, 3)
	z := 0.0
	for _, l := range layers {
		assert.Equal(t, z, l.ZBase)
		assert.Equal(t, 30.0, l.Height)
		z += l.Height
	}
}

func TestPackLayers_HeightConstraintStopsStacking(t *testing.T) {
	// One floor of height 60 leaves 40 in a 100-high trailer, too little
	// for another 60-high unit.
	var units []BoxUnit
	for i := 0; i < 3; i++ {
		units = append(units, unit("A", 80, 80, 60, i))
	}

	placed, remaining, layers := PackLayers(100, 100, 100, units, 3, true)

	require.Len(t, layers, 1)
	assert.Len(t, placed, 1)
	assert.Len(t, remaining, 2)
}

func TestPackLayers_LayerHeightIsMaxPlacedHeight(t *testing.T) {
	units := []BoxUnit{
		unit("TALL", 40, 40, 50, 0),
		unit("FLAT", 40, 40, 10, 1),
	}

	placed, _, layers := PackLayers(100, 100, 100, units, 3, true)

	require.Len(t, placed, 2)
	require.Len(t, layers, 1)
	assert.Equal(t, 50.0, layers[0].Height, "layer height follows the tallest unit")
}

func TestPackLayers_SortsByVolumeDescending(t *testing.T) {
	units := []BoxUnit{
		unit("SMALL", 20, 20, 20, 0),
		unit("BIG", 60, 60, 60, 1),
	}

	placed, _, _ := PackLayers(100, 100, 100, units, 3, true)

	require.Len(t, placed, 2)
	assert.Equal(t, "BIG", placed[0].SKU, "larger volume is offered first")
	assert.Equal(t, "SMALL", placed[1].SKU)
}

func TestPackLayers_RemovesUnitsByIdentityNotSKU(t *testing.T) {
	// Same SKU and dims: each floor fits exactly one, so placement must
	// consume one unit at a time, not every unit sharing the SKU.
	units := []BoxUnit{
		unit("DUP", 80, 80, 40, 0),
		unit("DUP", 80, 80, 40, 1),
	}

	placed, remaining, layers := PackLayers(100, 100, 100, units, 3, true)

	assert.Len(t, placed, 2)
	assert.Len(t, remaining, 0)
	assert.Len(t, layers, 2)
}

func TestPackLayers_Deterministic(t *testing.T) {
	var units []BoxUnit
	for i := 0; i < 10; i++ {
		units = append(units, unit("A", 30, 25, 20, i))
	}
	for i := 10; i < 16; i++ {
		units = append(units, unit("B", 45, 35, 30, i))
	}

	type key struct {
		sku     string
		x, y, z float64
		rotated bool
	}
	var runs [][]key
	for run := 0; run < 3; run++ {
		placed, _, _ := PackLayers(100, 100, 100, units, 3, true)
		var ks []key
		for _, p := range placed {
			ks = append(ks, key{p.SKU, p.X, p.Y, p.Z, p.Rotated})
		}
		runs = append(runs, ks)
	}

	assert.Equal(t, runs[0], runs[1])
	assert.Equal(t, runs[1], runs[2])
}

func TestPackLayers_RotatedFootprintSwapsLengthWidth(t *testing.T) {
	// An 80x30 footprint only fits a 50x100 floor when rotated.
	units := []BoxUnit{unit("A", 80, 30, 20, 0)}

	placed, remaining, _ := PackLayers(50, 100, 100, units, 1, true)

	require.Len(t, placed, 1)
	assert.Len(t, remaining, 0)
	assert.True(t, placed[0].Rotated)
	assert.Equal(t, 30.0, placed[0].Length)
	assert.Equal(t, 80.0, placed[0].Width)
	assert.Equal(t, 20.0, placed[0].Height, "height is never swapped")
}
