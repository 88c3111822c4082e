package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RectSelect/internal/model"
)

func testProblem() (model.Problem, model.SolveResult) {
	rects := []model.Rect{
		model.NewRect(0, 0, 0, 4, 2),
		model.NewRect(1, 5, 0, 8, 3),
		model.NewRect(2, 1, 1, 6, 4),
	}
	problem := model.Problem{Name: "test", Rects: rects}
	result := model.SolveResult{
		Count:    2,
		Selected: []model.Rect{rects[0], rects[1]},
		GridX:    6,
		GridY:    5,
	}
	return problem, result
}

func TestExportPDF(t *testing.T) {
	problem, result := testProblem()
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, problem, result); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("exported PDF is empty")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("exported file does not start with a PDF header")
	}
}

func TestExportPDFNoRects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := ExportPDF(path, model.Problem{Name: "empty"}, model.SolveResult{})
	if err == nil {
		t.Error("expected error for a problem without rectangles")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written on error")
	}
}

func TestExportPDFEmptySelection(t *testing.T) {
	problem, _ := testProblem()
	path := filepath.Join(t.TempDir(), "noselection.pdf")

	// A valid problem with nothing selected still renders the inputs.
	if err := ExportPDF(path, problem, model.SolveResult{}); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}
