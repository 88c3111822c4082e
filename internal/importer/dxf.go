package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/RectSelect/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a 2D coordinate in drawing units.
type point struct {
	x, y float64
}

// segment represents a line segment between two points, used for chaining
// disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

const coordTolerance = 1e-6

// ImportDXF imports rectangles from a DXF file. Each closed axis-aligned
// quad (LWPOLYLINE or chain of connected LINEs) with integer corners
// becomes a rectangle; anything else produces a warning and is skipped.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := make([]point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, point{x: v[0], y: v[1]})
			}
			outlines = append(outlines, outline)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{x: e.Start[0], y: e.Start[1]},
				end:   point{x: e.End[0], y: e.End[1]},
			})

		default:
			// Curved and unsupported entity types cannot be axis-aligned rectangles
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		rect, reason := outlineToRect(outline, len(result.Rects))
		if reason != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped shape %d: %s", i+1, reason))
			continue
		}
		result.Rects = append(result.Rects, rect)
	}

	if len(result.Rects) == 0 {
		result.Errors = append(result.Errors, "No axis-aligned rectangles found in DXF file")
	}
	return result
}

// outlineToRect validates that an outline is an axis-aligned rectangle with
// integer corners and converts it. reason is "" on success.
func outlineToRect(outline []point, index int) (model.Rect, string) {
	// Drop a duplicated closing vertex
	if len(outline) > 1 && pointsClose(outline[0], outline[len(outline)-1], coordTolerance) {
		outline = outline[:len(outline)-1]
	}
	if len(outline) != 4 {
		return model.Rect{}, fmt.Sprintf("not a quad (%d vertices)", len(outline))
	}

	// Consecutive vertices must share an x or y coordinate
	for i := range outline {
		a := outline[i]
		b := outline[(i+1)%4]
		if math.Abs(a.x-b.x) > coordTolerance && math.Abs(a.y-b.y) > coordTolerance {
			return model.Rect{}, "edges are not axis-aligned"
		}
	}

	minX, minY := outline[0].x, outline[0].y
	maxX, maxY := minX, minY
	for _, p := range outline[1:] {
		minX = math.Min(minX, p.x)
		minY = math.Min(minY, p.y)
		maxX = math.Max(maxX, p.x)
		maxY = math.Max(maxY, p.y)
	}

	corners := [4]float64{minX, minY, maxX, maxY}
	var vals [4]int64
	for i, c := range corners {
		rounded := math.Round(c)
		if math.Abs(c-rounded) > coordTolerance {
			return model.Rect{}, fmt.Sprintf("corner %g is not an integer coordinate", c)
		}
		vals[i] = int64(rounded)
	}

	rect := model.NewRect(index, vals[0], vals[1], vals[2], vals[3])
	if !rect.Valid() {
		return model.Rect{}, "degenerate rectangle"
	}
	return rect, ""
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them
// connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Keep only closed chains
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	dx := a.x - b.x
	dy := a.y - b.y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}
