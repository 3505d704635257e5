package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/model"
)

// Solve runs one full optimization: unit normalization to centimeters, the
// per-box oversize pre-check, expansion, layer-by-layer packing, the
// overlap/bounds post-checks and response assembly. Units left unplaced are
// a normal outcome (Fits=false), not an error.
func Solve(req model.OptimizeRequest) (model.OptimizeResult, error) {
	trailer := req.Trailer.ToCM()
	boxes := make([]model.Box, len(req.Boxes))
	for i, b := range req.Boxes {
		boxes[i] = b.ToCM(req.Trailer.Unit)
	}

	// A box that cannot fit in any allowed orientation is a hard input
	// error; the packer itself gives no feedback for impossible sizes.
	for _, b := range boxes {
		fitsNormal := b.Length <= trailer.Length &&
			b.Width <= trailer.Width &&
			b.Height <= trailer.Height
		fitsRotated := b.RotationAllowed && req.GlobalRotationAllowed &&
			b.Width <= trailer.Length &&
			b.Length <= trailer.Width &&
			b.Height <= trailer.Height
		if !fitsNormal && !fitsRotated {
			return model.OptimizeResult{}, apperrors.Inputf(
				"box %q (%gx%gx%g) is too large for trailer (%gx%gx%g)",
				b.SKU, b.Length, b.Width, b.Height,
				trailer.Length, trailer.Width, trailer.Height)
		}
	}

	units := ExpandUnits(boxes, req.GlobalRotationAllowed)
	if len(units) == 0 {
		return model.OptimizeResult{}, apperrors.Input("no boxes to place")
	}

	maxLayers := req.Stacking.MaxLayers
	if !req.Stacking.Enabled {
		maxLayers = 1
	}

	placed, remaining, layerInfo := PackLayers(
		trailer.Length, trailer.Width, trailer.Height,
		units, maxLayers, req.Stacking.Enabled)

	if err := CheckNoOverlap(placed); err != nil {
		return model.OptimizeResult{}, err
	}
	if err := CheckWithinBounds(placed, trailer.Length, trailer.Width, trailer.Height); err != nil {
		return model.OptimizeResult{}, err
	}

	return buildResult(trailer, placed, remaining, layerInfo), nil
}

// buildResult assembles the response: placements grouped per layer,
// aggregate statistics and the unplaced remainder counted per SKU. All
// numeric outputs are rounded here; the packer works on raw floats.
func buildResult(trailer model.Trailer, placed []PlacedBox, remaining []BoxUnit, layerInfo []LayerRecord) model.OptimizeResult {
	trailerVolume := trailer.Volume()
	usedVolume := 0.0
	for _, p := range placed {
		usedVolume += p.Length * p.Width * p.Height
	}
	fillRate := 0.0
	if trailerVolume > 0 {
		fillRate = usedVolume / trailerVolume
	}

	byLayer := make(map[int][]PlacedBox)
	for _, p := range placed {
		byLayer[p.Layer] = append(byLayer[p.Layer], p)
	}

	layers := make([]model.Layer, 0, len(layerInfo))
	for _, rec := range layerInfo {
		placements := make([]model.Placement, 0, len(byLayer[rec.Index]))
		for _, p := range byLayer[rec.Index] {
			placements = append(placements, model.Placement{
				SKU:     p.SKU,
				X:       round2(p.X),
				Y:       round2(p.Y),
				Z:       round2(p.Z),
				Length:  round2(p.Length),
				Width:   round2(p.Width),
				Height:  round2(p.Height),
				Rotated: p.Rotated,
			})
		}
		layers = append(layers, model.Layer{
			LayerIndex:  rec.Index,
			ZBase:       round2(rec.ZBase),
			LayerHeight: round2(rec.Height),
			Placements:  placements,
		})
	}

	unplacedCount := make(map[string]int)
	for _, u := range remaining {
		unplacedCount[u.SKU]++
	}
	skus := make([]string, 0, len(unplacedCount))
	for sku := range unplacedCount {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	unplaced := make([]model.UnplacedItem, 0, len(skus))
	for _, sku := range skus {
		unplaced = append(unplaced, model.UnplacedItem{SKU: sku, Qty: unplacedCount[sku]})
	}

	return model.OptimizeResult{
		Fits: len(remaining) == 0,
		Stats: model.Stats{
			TrailerVolume:    round2(trailerVolume),
			UsedVolume:       round2(usedVolume),
			FillRate:         roundTo(fillRate, 4),
			TotalBoxesPlaced: len(placed),
			LayersUsed:       len(layerInfo),
		},
		Layers:   layers,
		Unplaced: unplaced,
	}
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func round2(v float64) float64 {
	return roundTo(v, 2)
}
