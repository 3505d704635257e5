package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/loadwise/trailerpack/internal/model"
)

// LabelInfo holds the data encoded into each box label's QR code.
type LabelInfo struct {
	SKU     string  `json:"sku"`
	Layer   int     `json:"layer"`
	X       float64 `json:"x_cm"`
	Y       float64 `json:"y_cm"`
	Z       float64 `json:"z_cm"`
	Length  float64 `json:"l_cm"`
	Width   float64 `json:"w_cm"`
	Height  float64 `json:"h_cm"`
	Rotated bool    `json:"rotated"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10
// rows per page). Each label cell is approximately 66.7mm x 25.4mm on US
// Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded handling labels, one per placed
// unit. Each label carries the SKU, layer and position, with the full
// placement encoded in the QR code as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows).
func ExportLabels(path string, result model.OptimizeResult) error {
	var labels []LabelInfo
	for _, layer := range result.Layers {
		for _, p := range layer.Placements {
			labels = append(labels, LabelInfo{
				SKU:     p.SKU,
				Layer:   layer.LayerIndex,
				X:       p.X,
				Y:       p.Y,
				Z:       p.Z,
				Length:  p.Length,
				Width:   p.Width,
				Height:  p.Height,
				Rotated: p.Rotated,
			})
		}
	}

	if len(labels) == 0 {
		return fmt.Errorf("no placed boxes to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.SKU, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text block on the left
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4, info.SKU, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Layer %d", info.Layer), "", 0, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Pos %.0f / %.0f / %.0f", info.X, info.Y, info.Z), "", 0, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+13)
	dims := fmt.Sprintf("%.0fx%.0fx%.0f cm", info.Length, info.Width, info.Height)
	if info.Rotated {
		dims += " (R)"
	}
	pdf.CellFormat(textW, 3.5, dims, "", 0, "L", false, 0, "")

	return nil
}
