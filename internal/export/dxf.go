package export

import (
	"fmt"

	"github.com/piwi3910/RectSelect/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// ExportDXF writes the problem to a DXF drawing: unselected input
// rectangles on an "input" layer and the selected subset on a "selected"
// layer, each as a closed LWPOLYLINE in original coordinates.
func ExportDXF(path string, problem model.Problem, result model.SolveResult) error {
	if len(problem.Rects) == 0 {
		return fmt.Errorf("no rectangles to export")
	}

	selected := make(map[int]bool, len(result.Selected))
	for _, r := range result.Selected {
		selected[r.Index] = true
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("input", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add input layer: %w", err)
	}
	for _, r := range problem.Rects {
		if selected[r.Index] {
			continue
		}
		if err := addRect(d, r); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer("selected", color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add selected layer: %w", err)
	}
	for _, r := range result.Selected {
		if err := addRect(d, r); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

func addRect(d *drawing.Drawing, r model.Rect) error {
	_, err := d.LwPolyline(true,
		[]float64{float64(r.XL), float64(r.YB)},
		[]float64{float64(r.XR), float64(r.YB)},
		[]float64{float64(r.XR), float64(r.YT)},
		[]float64{float64(r.XL), float64(r.YT)},
	)
	if err != nil {
		return fmt.Errorf("failed to write rectangle %d: %w", r.Index, err)
	}
	return nil
}
