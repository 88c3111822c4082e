// Package export renders solve results as text reports, PDF layout plots,
// DXF drawings, and QR-coded label sheets.
package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/RectSelect/internal/model"
)

// WriteReport writes the selected count and each selected rectangle's input
// index and original (pre-compression) coordinates to w.
func WriteReport(w io.Writer, result model.SolveResult) error {
	if _, err := fmt.Fprintf(w, "=== Best Guillotine-Separable Independent Set ===\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rectangles selected: %d\n", result.Count); err != nil {
		return err
	}
	for _, r := range result.Selected {
		if _, err := fmt.Fprintf(w, "Rect %d: (%d,%d)-(%d,%d)\n", r.Index, r.XL, r.YB, r.XR, r.YT); err != nil {
			return err
		}
	}
	return nil
}
