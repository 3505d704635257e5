// Package model defines the request and response schema of the trailer
// loading optimizer. All engine work happens in a single canonical unit
// (centimeters); requests in meters are normalized before the engine runs.
package model

import (
	"github.com/loadwise/trailerpack/internal/apperrors"
)

// Unit is the unit of measurement for request dimensions.
type Unit string

const (
	UnitCM Unit = "cm"
	UnitM  Unit = "m"
)

// MaxLayers is the hard cap on stacking layers.
const MaxLayers = 3

// Trailer holds the container dimensions.
type Trailer struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   Unit    `json:"unit"`
}

// ToCM returns the trailer with all dimensions converted to centimeters.
func (t Trailer) ToCM() Trailer {
	if t.Unit == UnitM {
		return Trailer{
			Length: t.Length * 100,
			Width:  t.Width * 100,
			Height: t.Height * 100,
			Unit:   UnitCM,
		}
	}
	return t
}

// Volume returns the trailer volume in its current unit.
func (t Trailer) Volume() float64 {
	return t.Length * t.Width * t.Height
}

// Box is one box type with a quantity. SKUs are labels, not unique
// identifiers: two entries may share a SKU.
type Box struct {
	SKU             string  `json:"sku"`
	Length          float64 `json:"length"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Quantity        int     `json:"quantity"`
	RotationAllowed bool    `json:"rotation_allowed"`
}

// ToCM returns the box with dimensions converted from the given unit
// to centimeters.
func (b Box) ToCM(unit Unit) Box {
	if unit == UnitM {
		b.Length *= 100
		b.Width *= 100
		b.Height *= 100
	}
	return b
}

// Volume returns the volume of a single unit of this box type.
func (b Box) Volume() float64 {
	return b.Length * b.Width * b.Height
}

// StackingOptions controls the vertical layering of the packing.
type StackingOptions struct {
	Enabled   bool `json:"enabled"`
	MaxLayers int  `json:"max_layers"`
}

// DefaultStacking returns the default stacking configuration.
func DefaultStacking() StackingOptions {
	return StackingOptions{Enabled: true, MaxLayers: MaxLayers}
}

// OptimizeRequest is the input to one optimization call.
type OptimizeRequest struct {
	Trailer               Trailer         `json:"trailer"`
	Boxes                 []Box           `json:"boxes"`
	Stacking              StackingOptions `json:"stacking"`
	GlobalRotationAllowed bool            `json:"global_rotation_allowed"`
}

// Validate checks structural validity of the request: positive dimensions,
// non-empty SKUs, quantities, the layer cap. The oversize pre-check against
// the trailer is done by the engine after unit normalization.
func (r OptimizeRequest) Validate() error {
	if r.Trailer.Length <= 0 || r.Trailer.Width <= 0 || r.Trailer.Height <= 0 {
		return apperrors.Input("trailer dimensions must be positive")
	}
	if r.Trailer.Unit != "" && r.Trailer.Unit != UnitCM && r.Trailer.Unit != UnitM {
		return apperrors.Inputf("unknown unit %q", r.Trailer.Unit)
	}
	if len(r.Boxes) == 0 {
		return apperrors.Input("at least one box type is required")
	}
	for i, b := range r.Boxes {
		if b.SKU == "" {
			return apperrors.Inputf("box %d: sku must not be empty", i)
		}
		if b.Length <= 0 || b.Width <= 0 || b.Height <= 0 {
			return apperrors.Inputf("box %q: dimensions must be positive", b.SKU)
		}
		if b.Quantity < 1 {
			return apperrors.Inputf("box %q: quantity must be at least 1", b.SKU)
		}
	}
	if r.Stacking.MaxLayers < 1 || r.Stacking.MaxLayers > MaxLayers {
		return apperrors.Inputf("max_layers must be between 1 and %d", MaxLayers)
	}
	return nil
}

// Placement is one placed box unit in the solution. Length and width are
// the placed footprint, swapped when the unit was rotated.
type Placement struct {
	SKU     string  `json:"sku"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
	Length  float64 `json:"l"`
	Width   float64 `json:"w"`
	Height  float64 `json:"h"`
	Rotated bool    `json:"rotated"`
}

// Layer is one horizontal slab of the solution with its placements.
type Layer struct {
	LayerIndex  int         `json:"layer_index"`
	ZBase       float64     `json:"z_base"`
	LayerHeight float64     `json:"layer_height"`
	Placements  []Placement `json:"placements"`
}

// UnplacedItem reports how many units of a SKU could not be placed.
type UnplacedItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

// Stats summarizes the solution.
type Stats struct {
	TrailerVolume    float64 `json:"trailer_volume"`
	UsedVolume       float64 `json:"used_volume"`
	FillRate         float64 `json:"fill_rate"`
	TotalBoxesPlaced int     `json:"total_boxes_placed"`
	LayersUsed       int     `json:"layers_used"`
}

// OptimizeResult is the full solution for one optimization call.
type OptimizeResult struct {
	Fits     bool           `json:"fits"`
	Stats    Stats          `json:"stats"`
	Layers   []Layer        `json:"layers"`
	Unplaced []UnplacedItem `json:"unplaced"`
}

// PlacedCount returns the number of placements across all layers.
func (r OptimizeResult) PlacedCount() int {
	n := 0
	for _, l := range r.Layers {
		n += len(l.Placements)
	}
	return n
}

// UnplacedCount returns the number of units left unplaced.
func (r OptimizeResult) UnplacedCount() int {
	n := 0
	for _, u := range r.Unplaced {
		n += u.Qty
	}
	return n
}
