package scenario

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/model"
)

// HCL scenario format:
//
//	name = "Small load"
//	global_rotation_allowed = true
//
//	trailer {
//	  length = 200
//	  width  = 150
//	  height = 150
//	  unit   = "cm"
//	}
//
//	box "BOX-A" {
//	  length   = 40
//	  width    = 30
//	  height   = 30
//	  quantity = 5
//	}
//
//	stacking {
//	  enabled    = true
//	  max_layers = 3
//	}
type hclScenario struct {
	Name                  string       `hcl:"name,optional"`
	GlobalRotationAllowed *bool        `hcl:"global_rotation_allowed,optional"`
	Trailer               hclTrailer   `hcl:"trailer,block"`
	Boxes                 []hclBox     `hcl:"box,block"`
	Stacking              *hclStacking `hcl:"stacking,block"`
}

type hclTrailer struct {
	Length float64 `hcl:"length"`
	Width  float64 `hcl:"width"`
	Height float64 `hcl:"height"`
	Unit   string  `hcl:"unit,optional"`
}

type hclBox struct {
	SKU             string  `hcl:"sku,label"`
	Length          float64 `hcl:"length"`
	Width           float64 `hcl:"width"`
	Height          float64 `hcl:"height"`
	Quantity        int     `hcl:"quantity"`
	RotationAllowed *bool   `hcl:"rotation_allowed,optional"`
}

type hclStacking struct {
	Enabled   *bool `hcl:"enabled,optional"`
	MaxLayers *int  `hcl:"max_layers,optional"`
}

// LoadHCL reads a scenario from an HCL file. Omitted flags default the same
// way the JSON request does: rotation allowed, stacking enabled with the
// full layer cap, unit centimeters.
func LoadHCL(path string) (Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Scenario{}, apperrors.Wrap(apperrors.TypeInput, "invalid HCL scenario "+path, diags)
	}
	return decodeHCL(file.Body)
}

// ParseHCL reads a scenario from HCL source text; filename is used only in
// diagnostics.
func ParseHCL(src []byte, filename string) (Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Scenario{}, apperrors.Wrap(apperrors.TypeInput, "invalid HCL scenario "+filename, diags)
	}
	return decodeHCL(file.Body)
}

func decodeHCL(body hcl.Body) (Scenario, error) {
	var raw hclScenario
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return Scenario{}, apperrors.Wrap(apperrors.TypeInput, "invalid HCL scenario", diags)
	}

	unit := model.UnitCM
	if raw.Trailer.Unit != "" {
		unit = model.Unit(raw.Trailer.Unit)
	}

	boxes := make([]model.Box, 0, len(raw.Boxes))
	for _, b := range raw.Boxes {
		rotation := true
		if b.RotationAllowed != nil {
			rotation = *b.RotationAllowed
		}
		boxes = append(boxes, model.Box{
			SKU:             b.SKU,
			Length:          b.Length,
			Width:           b.Width,
			Height:          b.Height,
			Quantity:        b.Quantity,
			RotationAllowed: rotation,
		})
	}

	stacking := model.DefaultStacking()
	if raw.Stacking != nil {
		if raw.Stacking.Enabled != nil {
			stacking.Enabled = *raw.Stacking.Enabled
		}
		if raw.Stacking.MaxLayers != nil {
			stacking.MaxLayers = *raw.Stacking.MaxLayers
		}
	}

	globalRotation := true
	if raw.GlobalRotationAllowed != nil {
		globalRotation = *raw.GlobalRotationAllowed
	}

	return Scenario{
		Name: raw.Name,
		OptimizeRequest: model.OptimizeRequest{
			Trailer: model.Trailer{
				Length: raw.Trailer.Length,
				Width:  raw.Trailer.Width,
				Height: raw.Trailer.Height,
				Unit:   unit,
			},
			Boxes:                 boxes,
			Stacking:              stacking,
			GlobalRotationAllowed: globalRotation,
		},
	}, nil
}
