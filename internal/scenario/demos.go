package scenario

import "github.com/loadwise/trailerpack/internal/model"

// Demos returns the built-in demo scenarios keyed by id.
func Demos() map[string]Scenario {
	return map[string]Scenario{
		"small": {
			ID:   "small",
			Name: "Petit chargement",
			OptimizeRequest: model.OptimizeRequest{
				Trailer: model.Trailer{Length: 200, Width: 150, Height: 150, Unit: model.UnitCM},
				Boxes: []model.Box{
					{SKU: "BOX-A", Length: 40, Width: 30, Height: 30, Quantity: 5, RotationAllowed: true},
					{SKU: "BOX-B", Length: 50, Width: 40, Height: 25, Quantity: 3, RotationAllowed: true},
				},
				Stacking:              model.StackingOptions{Enabled: true, MaxLayers: 3},
				GlobalRotationAllowed: true,
			},
		},
		"medium": {
			ID:   "medium",
			Name: "Chargement moyen",
			OptimizeRequest: model.OptimizeRequest{
				Trailer: model.Trailer{Length: 600, Width: 240, Height: 250, Unit: model.UnitCM},
				Boxes: []model.Box{
					{SKU: "PALLET-A", Length: 120, Width: 80, Height: 100, Quantity: 8, RotationAllowed: true},
					{SKU: "PALLET-B", Length: 100, Width: 100, Height: 80, Quantity: 6, RotationAllowed: true},
					{SKU: "CRATE-S", Length: 60, Width: 40, Height: 50, Quantity: 10, RotationAllowed: true},
				},
				Stacking:              model.StackingOptions{Enabled: true, MaxLayers: 2},
				GlobalRotationAllowed: true,
			},
		},
		"impossible": {
			ID:   "impossible",
			Name: "Chargement impossible",
			OptimizeRequest: model.OptimizeRequest{
				Trailer: model.Trailer{Length: 300, Width: 200, Height: 200, Unit: model.UnitCM},
				Boxes: []model.Box{
					{SKU: "LARGE-1", Length: 100, Width: 80, Height: 100, Quantity: 10, RotationAllowed: true},
					{SKU: "LARGE-2", Length: 90, Width: 70, Height: 90, Quantity: 8, RotationAllowed: true},
					{SKU: "MEDIUM", Length: 60, Width: 50, Height: 60, Quantity: 15, RotationAllowed: true},
				},
				Stacking:              model.StackingOptions{Enabled: true, MaxLayers: 3},
				GlobalRotationAllowed: true,
			},
		},
	}
}

// Demo returns a single demo scenario by id.
func Demo(id string) (Scenario, bool) {
	s, ok := Demos()[id]
	return s, ok
}

// DemoIDs returns the demo ids in a stable order.
func DemoIDs() []string {
	return []string{"small", "medium", "impossible"}
}
