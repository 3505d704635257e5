package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/loadwise/trailerpack/internal/model"
)

// ExportManifest writes an Excel loading manifest: a summary sheet with the
// aggregate statistics and unplaced items, plus one sheet per layer listing
// its placements in load order.
func ExportManifest(path string, trailer model.Trailer, result model.OptimizeResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	fits := "NO"
	if result.Fits {
		fits = "YES"
	}

	summaryRows := [][]interface{}{
		{"Trailer loading manifest"},
		{},
		{"Trailer length (cm)", trailer.Length},
		{"Trailer width (cm)", trailer.Width},
		{"Trailer height (cm)", trailer.Height},
		{},
		{"Everything fits", fits},
		{"Boxes placed", result.Stats.TotalBoxesPlaced},
		{"Layers used", result.Stats.LayersUsed},
		{"Trailer volume (cm3)", result.Stats.TrailerVolume},
		{"Used volume (cm3)", result.Stats.UsedVolume},
		{"Fill rate", result.Stats.FillRate},
	}

	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}

	if len(result.Unplaced) > 0 {
		base := len(summaryRows) + 2
		header := []interface{}{"Unplaced SKU", "Qty"}
		cell, _ := excelize.CoordinatesToCellName(1, base)
		if err := f.SetSheetRow(summary, cell, &header); err != nil {
			return err
		}
		for i, u := range result.Unplaced {
			row := []interface{}{u.SKU, u.Qty}
			cell, _ := excelize.CoordinatesToCellName(1, base+1+i)
			if err := f.SetSheetRow(summary, cell, &row); err != nil {
				return err
			}
		}
	}

	for _, layer := range result.Layers {
		name := fmt.Sprintf("Layer %d", layer.LayerIndex)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}

		header := []interface{}{"#", "SKU", "X (cm)", "Y (cm)", "Z (cm)", "Length (cm)", "Width (cm)", "Height (cm)", "Rotated"}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
		for i, p := range layer.Placements {
			row := []interface{}{i + 1, p.SKU, p.X, p.Y, p.Z, p.Length, p.Width, p.Height, p.Rotated}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return err
			}
		}
	}

	idx, err := f.GetSheetIndex(summary)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	return f.SaveAs(path)
}
