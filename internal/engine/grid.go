package engine

import (
	"sort"

	"github.com/piwi3910/RectSelect/internal/model"
)

// grid holds the sorted, duplicate-free x and y coordinates occurring among
// rectangle corners. Any guillotine cut that matters can be slid onto one of
// these lines without changing feasibility, so the plane reduces to an index
// grid of at most 2n lines per axis.
type grid struct {
	xs []int64
	ys []int64
}

func newGrid(rects []model.Rect) grid {
	xs := make([]int64, 0, 2*len(rects))
	ys := make([]int64, 0, 2*len(rects))
	for _, r := range rects {
		xs = append(xs, r.XL, r.XR)
		ys = append(ys, r.YB, r.YT)
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })
	return grid{xs: dedupe(xs), ys: dedupe(ys)}
}

// dedupe compacts a sorted slice in place.
func dedupe(v []int64) []int64 {
	out := v[:0]
	for i, x := range v {
		if i == 0 || x != v[i-1] {
			out = append(out, x)
		}
	}
	return out
}

// xIndex returns the grid index of x via lower-bound search. x must be a
// corner coordinate of some input rectangle.
func (g grid) xIndex(x int64) int {
	return sort.Search(len(g.xs), func(i int) bool { return g.xs[i] >= x })
}

func (g grid) yIndex(y int64) int {
	return sort.Search(len(g.ys), func(i int) bool { return g.ys[i] >= y })
}

// gridRect is a rectangle re-expressed as a half-open index window on the
// grid: it spans columns [xl,xr) and rows [yb,yt).
type gridRect struct {
	xl, xr, yb, yt int
}

// compress maps each rectangle to its grid index window.
func (g grid) compress(rects []model.Rect) []gridRect {
	boxes := make([]gridRect, len(rects))
	for i, r := range rects {
		boxes[i] = gridRect{
			xl: g.xIndex(r.XL),
			xr: g.xIndex(r.XR),
			yb: g.yIndex(r.YB),
			yt: g.yIndex(r.YT),
		}
	}
	return boxes
}

// inside reports whether the rectangle lies fully within the window.
func (b gridRect) inside(w window) bool {
	return b.xl >= w.xi && b.xr <= w.xj && b.yb >= w.yk && b.yt <= w.yl
}

// matches reports whether the rectangle exactly fills the window.
func (b gridRect) matches(w window) bool {
	return b.xl == w.xi && b.xr == w.xj && b.yb == w.yk && b.yt == w.yl
}
