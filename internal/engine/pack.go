// Package engine implements the trailer loading heuristic: a 2D MaxRects
// packer per floor composed with a layer-by-layer vertical extension. The
// engine is synchronous and carries no state across calls; every Solve call
// owns its own unit pool, free lists and placement list.
package engine

import (
	"sort"

	"github.com/loadwise/trailerpack/internal/model"
)

// BoxUnit is one physical box instance produced by expansion. OriginIndex
// is assigned in expansion order, never reused, and only serves to break
// volume ties deterministically; SKUs alone are not unique.
type BoxUnit struct {
	SKU             string
	Length          float64
	Width           float64
	Height          float64
	RotationAllowed bool
	OriginIndex     int
}

// Volume returns the unit's volume.
func (b BoxUnit) Volume() float64 {
	return b.Length * b.Width * b.Height
}

// PlacedBox is a BoxUnit bound to a 3D position. Length and width are the
// placed footprint, swapped when rotated; height is never swapped.
type PlacedBox struct {
	SKU     string
	X       float64
	Y       float64
	Z       float64
	Length  float64
	Width   float64
	Height  float64
	Rotated bool
	Layer   int
}

// LayerRecord describes one floor's vertical extent. Layers are numbered
// consecutively from 1 and each ZBase equals the sum of the heights below.
type LayerRecord struct {
	Index  int
	ZBase  float64
	Height float64
}

// ExpandUnits turns box types with quantities into individually addressable
// units. The global rotation flag is AND-combined with each box's own flag.
func ExpandUnits(boxes []model.Box, globalRotation bool) []BoxUnit {
	var units []BoxUnit
	idx := 0
	for _, b := range boxes {
		for i := 0; i < b.Quantity; i++ {
			units = append(units, BoxUnit{
				SKU:             b.SKU,
				Length:          b.Length,
				Width:           b.Width,
				Height:          b.Height,
				RotationAllowed: b.RotationAllowed && globalRotation,
				OriginIndex:     idx,
			})
			idx++
		}
	}
	return units
}

// floorPlacement is one unit placed within a single floor's footprint.
type floorPlacement struct {
	unit    BoxUnit
	x, y    float64
	rotated bool
}

// packFloor runs one ranked pass of the 2D packer over units: each unit is
// offered to insert exactly once, in order, with its own rotation flag.
// Units that do not fit are returned as remaining.
func packFloor(floorLength, floorWidth float64, units []BoxUnit) ([]floorPlacement, []BoxUnit) {
	packer := newMaxRectsBSSF(floorLength, floorWidth)
	var placed []floorPlacement
	var remaining []BoxUnit

	for _, u := range units {
		pos, rotated, ok := packer.insert(u.Length, u.Width, u.RotationAllowed)
		if !ok {
			remaining = append(remaining, u)
			continue
		}
		placed = append(placed, floorPlacement{unit: u, x: pos.x, y: pos.y, rotated: rotated})
	}

	return placed, remaining
}

// unitKey identifies one physical unit. SKU alone is not enough: multiple
// units share a SKU.
type unitKey struct {
	sku    string
	origin int
}

// PackLayers packs units into the trailer floor by floor. Units are sorted
// once, descending by volume with origin index as tiebreaker, and that order
// is reused at every floor (first-fit-descending). Each floor gets exactly
// one ranked pass: a unit that fails by footprint stays in the pool and is
// reconsidered only when the next floor opens. The loop stops when the
// height budget is exhausted, no remaining unit fits the leftover height,
// a floor pass places nothing, or the layer cap is reached.
func PackLayers(trailerLength, trailerWidth, trailerHeight float64, units []BoxUnit, maxLayers int, stackingEnabled bool) ([]PlacedBox, []BoxUnit, []LayerRecord) {
	if !stackingEnabled {
		maxLayers = 1
	}

	sorted := make([]BoxUnit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].Volume(), sorted[j].Volume()
		if vi != vj {
			return vi > vj
		}
		return sorted[i].OriginIndex < sorted[j].OriginIndex
	})

	var placed []PlacedBox
	var layers []LayerRecord
	remaining := sorted
	currentZ := 0.0

	for layerIdx := 1; layerIdx <= maxLayers; layerIdx++ {
		if len(remaining) == 0 {
			break
		}

		availableHeight := trailerHeight - currentZ
		if availableHeight <= 0 {
			break
		}

		var candidates []BoxUnit
		for _, u := range remaining {
			if u.Height <= availableHeight {
				candidates = append(candidates, u)
			}
		}
		if len(candidates) == 0 {
			break
		}

		floorPlaced, _ := packFloor(trailerLength, trailerWidth, candidates)
		if len(floorPlaced) == 0 {
			break
		}

		// Rotation swaps the footprint only, so the layer height is the
		// tallest placed unit as-is.
		layerHeight := 0.0
		for _, fp := range floorPlaced {
			if fp.unit.Height > layerHeight {
				layerHeight = fp.unit.Height
			}
		}
		layers = append(layers, LayerRecord{Index: layerIdx, ZBase: currentZ, Height: layerHeight})

		placedKeys := make(map[unitKey]bool, len(floorPlaced))
		for _, fp := range floorPlaced {
			l, w := fp.unit.Length, fp.unit.Width
			if fp.rotated {
				l, w = w, l
			}
			placed = append(placed, PlacedBox{
				SKU:     fp.unit.SKU,
				X:       fp.x,
				Y:       fp.y,
				Z:       currentZ,
				Length:  l,
				Width:   w,
				Height:  fp.unit.Height,
				Rotated: fp.rotated,
				Layer:   layerIdx,
			})
			placedKeys[unitKey{fp.unit.SKU, fp.unit.OriginIndex}] = true
		}

		var next []BoxUnit
		for _, u := range remaining {
			if !placedKeys[unitKey{u.SKU, u.OriginIndex}] {
				next = append(next, u)
			}
		}
		remaining = next
		currentZ += layerHeight
	}

	return placed, remaining, layers
}
