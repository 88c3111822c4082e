package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RectSelect/internal/model"
)

// rectColor represents an RGB color for a selected rectangle.
type rectColor struct {
	R, G, B int
}

var rectColors = []rectColor{
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
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders the problem and its solution on a single page: every
// input rectangle is drawn in outline, the selected subset is filled with
// the color palette, and a stats line summarizes the result. Coordinates
// are flipped so y grows upward as in the input, not downward as in PDF.
func ExportPDF(path string, problem model.Problem, result model.SolveResult) error {
	xl, yb, xr, yt, ok := problem.Bounds()
	if !ok {
		return fmt.Errorf("no rectangles to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Guillotine Selection: %s", problem.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Input: %d rectangles | Selected: %d | Selected area: %d | Grid: %dx%d",
		len(problem.Rects), result.Count, result.SelectedArea(), result.GridX, result.GridY)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area and scale to fit the bounding box
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	boxW := float64(xr - xl)
	boxH := float64(yt - yb)
	scale := math.Min(drawWidth/boxW, drawHeight/boxH)

	canvasW := boxW * scale
	canvasH := boxH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop + (drawHeight-canvasH)/2

	// toPage converts input coordinates to page coordinates of the
	// rectangle's top-left corner.
	toPage := func(r model.Rect) (px, py, pw, ph float64) {
		pw = float64(r.Width()) * scale
		ph = float64(r.Height()) * scale
		px = offsetX + float64(r.XL-xl)*scale
		py = offsetY + float64(yt-r.YT)*scale
		return px, py, pw, ph
	}

	// Bounding box background
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	selected := make(map[int]bool, len(result.Selected))
	for _, r := range result.Selected {
		selected[r.Index] = true
	}

	// Unselected input rectangles first, outline only, so selected fills
	// draw on top of them.
	pdf.SetDrawColor(170, 170, 170)
	pdf.SetLineWidth(0.2)
	for _, r := range problem.Rects {
		if selected[r.Index] {
			continue
		}
		px, py, pw, ph := toPage(r)
		pdf.Rect(px, py, pw, ph, "D")
	}

	// Selected rectangles, filled
	for i, r := range result.Selected {
		col := rectColors[i%len(rectColors)]
		px, py, pw, ph := toPage(r)

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Index label, only if the rectangle is large enough
		if pw > 8 && ph > 6 {
			label := fmt.Sprintf("%d", r.Index)
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetTextColor(0, 0, 0)
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	drawLegend(pdf, result, offsetY+canvasH+3)

	return pdf.OutputFileAndClose(path)
}

// drawLegend lists the selected rectangles with their original coordinates
// below the drawing.
func drawLegend(pdf *fpdf.Fpdf, result model.SolveResult, y float64) {
	if len(result.Selected) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(60, 60, 60)

	x := marginLeft
	for i, r := range result.Selected {
		col := rectColors[i%len(rectColors)]
		entry := fmt.Sprintf("%d: (%d,%d)-(%d,%d)", r.Index, r.XL, r.YB, r.XR, r.YT)
		entryW := pdf.GetStringWidth(entry) + 8

		if x+entryW > pageWidth-marginRight {
			// Legend overflow: stop rather than spill off the page
			break
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(x, y, 3, 3, "F")
		pdf.SetXY(x+4, y-0.5)
		pdf.CellFormat(entryW-4, 4, entry, "", 0, "L", false, 0, "")
		x += entryW
	}
}
