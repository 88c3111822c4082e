package model

import "github.com/google/uuid"

// Rect is an axis-aligned rectangle in original input coordinates.
// Corners satisfy XL<XR and YB<YT; Index is the zero-based position in the
// input set and identifies the rectangle in reports and exports.
type Rect struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
	XL    int64  `json:"xl"`
	YB    int64  `json:"yb"`
	XR    int64  `json:"xr"`
	YT    int64  `json:"yt"`
}

func NewRect(index int, xl, yb, xr, yt int64) Rect {
	return Rect{
		ID:    uuid.New().String()[:8],
		Index: index,
		XL:    xl,
		YB:    yb,
		XR:    xr,
		YT:    yt,
	}
}

// Valid reports whether the corners are strictly ordered on both axes.
func (r Rect) Valid() bool {
	return r.XL < r.XR && r.YB < r.YT
}

func (r Rect) Width() int64 {
	return r.XR - r.XL
}

func (r Rect) Height() int64 {
	return r.YT - r.YB
}

func (r Rect) Area() int64 {
	return r.Width() * r.Height()
}

// Overlaps reports whether two rectangles share interior area.
// Touching edges do not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.XL < o.XR && o.XL < r.XR && r.YB < o.YT && o.YB < r.YT
}

// Contains reports whether r fully contains o. Shared edges are allowed.
func (r Rect) Contains(o Rect) bool {
	return r.XL <= o.XL && o.XR <= r.XR && r.YB <= o.YB && o.YT <= r.YT
}

// Problem is a named rectangle set to solve.
type Problem struct {
	Name  string `json:"name"`
	Rects []Rect `json:"rects"`
}

// Bounds returns the bounding box of all rectangles in the problem.
// ok is false when the problem is empty.
func (p Problem) Bounds() (xl, yb, xr, yt int64, ok bool) {
	if len(p.Rects) == 0 {
		return 0, 0, 0, 0, false
	}
	first := p.Rects[0]
	xl, yb, xr, yt = first.XL, first.YB, first.XR, first.YT
	for _, r := range p.Rects[1:] {
		if r.XL < xl {
			xl = r.XL
		}
		if r.YB < yb {
			yb = r.YB
		}
		if r.XR > xr {
			xr = r.XR
		}
		if r.YT > yt {
			yt = r.YT
		}
	}
	return xl, yb, xr, yt, true
}

// TotalArea returns the summed area of all rectangles. Overlapping regions
// are counted once per rectangle.
func (p Problem) TotalArea() int64 {
	var total int64
	for _, r := range p.Rects {
		total += r.Area()
	}
	return total
}

// SolveSettings holds solver configuration.
type SolveSettings struct {
	// MaxNodes caps the number of DP windows the solver may expand.
	// The window count is polynomial but with a large constant, so a
	// budget keeps pathological inputs bounded. 0 = unlimited.
	MaxNodes int64 `json:"max_nodes"`
}

func DefaultSettings() SolveSettings {
	return SolveSettings{
		MaxNodes: 0,
	}
}

// SolveResult holds the selected guillotine-separable subset.
//
// Count is optimal under the guillotine restriction only. The true
// (unrestricted) maximum independent set of rectangles can be strictly
// larger, so this must never be presented as the global MISR optimum.
type SolveResult struct {
	Count         int    `json:"count"`
	Selected      []Rect `json:"selected"`
	NodesExpanded int64  `json:"nodes_expanded"`
	GridX         int    `json:"grid_x"` // distinct x coordinates
	GridY         int    `json:"grid_y"` // distinct y coordinates
}

// SelectedArea returns the total area covered by the selected rectangles.
// Selected rectangles never overlap, so no region is counted twice.
func (sr SolveResult) SelectedArea() int64 {
	var total int64
	for _, r := range sr.Selected {
		total += r.Area()
	}
	return total
}

// Project ties everything together for save/load.
type Project struct {
	Name     string        `json:"name"`
	Rects    []Rect        `json:"rects"`
	Settings SolveSettings `json:"settings"`
	Result   *SolveResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Rects:    []Rect{},
		Settings: DefaultSettings(),
	}
}
