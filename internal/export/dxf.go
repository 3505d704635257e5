package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/loadwise/trailerpack/internal/model"
)

// ExportDXF writes the loading plan as a DXF drawing: the trailer floor
// outline on its own layer plus one DXF layer per packing layer with a
// rectangle for every placement. Positions are 2D top views; the z
// coordinate is carried by the DXF layer name.
func ExportDXF(path string, trailer model.Trailer, result model.OptimizeResult) error {
	if len(result.Layers) == 0 {
		return fmt.Errorf("no layers to export")
	}

	d := dxf.NewDrawing()

	d.AddLayer("TRAILER", dxf.DefaultColor, dxf.DefaultLineType, true)
	drawRect(d, 0, 0, trailer.Length, trailer.Width)

	for _, layer := range result.Layers {
		name := fmt.Sprintf("LAYER_%d_Z%.0f", layer.LayerIndex, layer.ZBase)
		if _, err := d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add DXF layer %q: %w", name, err)
		}
		for _, p := range layer.Placements {
			drawRect(d, p.X, p.Y, p.Length, p.Width)
		}
	}

	return d.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four lines on the current
// DXF layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}
