// Package export provides functionality for exporting loading plans to
// various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/loadwise/trailerpack/internal/model"
)

// skuColor represents an RGB color for a placed box.
type skuColor struct {
	R, G, B int
}

// skuColors is the palette cycled through per SKU, in order of first
// appearance in the plan.
var skuColors = []skuColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF loading plan. Each layer is rendered on its own
// page as a scaled top-view diagram of the trailer floor, followed by a
// summary page with the aggregate statistics and the unplaced remainder.
func ExportPDF(path string, trailer model.Trailer, result model.OptimizeResult) error {
	if len(result.Layers) == 0 {
		return fmt.Errorf("no layers to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	colors := buildColorMap(result)

	for _, layer := range result.Layers {
		pdf.AddPage()
		renderLayerPage(pdf, trailer, layer, colors)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, trailer, result)

	return pdf.OutputFileAndClose(path)
}

// buildColorMap assigns each SKU a palette color by first appearance.
func buildColorMap(result model.OptimizeResult) map[string]skuColor {
	colors := make(map[string]skuColor)
	for _, layer := range result.Layers {
		for _, p := range layer.Placements {
			if _, ok := colors[p.SKU]; !ok {
				colors[p.SKU] = skuColors[len(colors)%len(skuColors)]
			}
		}
	}
	return colors
}

// renderLayerPage draws a single layer's floor plan on the current page.
// The trailer length runs along the page's x axis, the width along y.
func renderLayerPage(pdf *fpdf.Fpdf, trailer model.Trailer, layer model.Layer, colors map[string]skuColor) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Layer %d: z = %.0f cm, height %.0f cm",
		layer.LayerIndex, layer.ZBase, layer.LayerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Trailer floor: %.0f x %.0f cm",
		len(layer.Placements), trailer.Length, trailer.Width)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scaleX := drawWidth / trailer.Length
	scaleY := drawHeight / trailer.Width
	scale := math.Min(scaleX, scaleY)

	canvasW := trailer.Length * scale
	canvasH := trailer.Width * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Trailer floor background
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range layer.Placements {
		col := colors[p.SKU]
		pw := p.Length * scale
		ph := p.Width * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// SKU label, only when the rectangle is large enough
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.SKU
			if p.Rotated {
				label += " (R)"
			}
			dims := fmt.Sprintf("%.0fx%.0f", p.Length, p.Width)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, trailer, scale, offsetX, offsetY, canvasW, canvasH)
}

// labelFontSize picks a font size that fits the rectangle.
func labelFontSize(w, h float64) float64 {
	size := math.Min(w, h) / 4
	if size < 5 {
		return 5
	}
	if size > 9 {
		return 9
	}
	return size
}

// drawDimensionAnnotations adds length and width labels outside the floor
// rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, trailer model.Trailer, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.0f cm", trailer.Length)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%.0f cm", trailer.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-wLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the aggregate statistics and unplaced items.
func renderSummaryPage(pdf *fpdf.Fpdf, trailer model.Trailer, result model.OptimizeResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Loading Plan Summary", "", 0, "L", false, 0, "")

	y := marginTop + headerHeight + 8

	fitsText := "NO - some items left unplaced"
	if result.Fits {
		fitsText = "YES - all items placed"
	}

	lines := []string{
		fmt.Sprintf("Trailer: %.0f x %.0f x %.0f cm", trailer.Length, trailer.Width, trailer.Height),
		fmt.Sprintf("Everything fits: %s", fitsText),
		fmt.Sprintf("Boxes placed: %d", result.Stats.TotalBoxesPlaced),
		fmt.Sprintf("Layers used: %d", result.Stats.LayersUsed),
		fmt.Sprintf("Trailer volume: %.2f cm3", result.Stats.TrailerVolume),
		fmt.Sprintf("Used volume: %.2f cm3", result.Stats.UsedVolume),
		fmt.Sprintf("Fill rate: %.1f%%", result.Stats.FillRate*100),
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 0, "L", false, 0, "")
		y += 7
	}

	if len(result.Unplaced) > 0 {
		y += 4
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, "Unplaced items", "", 0, "L", false, 0, "")
		y += 7

		pdf.SetFont("Helvetica", "", 11)
		for _, u := range result.Unplaced {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight, 6,
				fmt.Sprintf("%s: %d unit(s)", u.SKU, u.Qty), "", 0, "L", false, 0, "")
			y += 6
		}
	}
}
