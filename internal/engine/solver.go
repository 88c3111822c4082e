// Package engine implements the guillotine dynamic program: it selects the
// largest subset of axis-aligned rectangles that can be isolated from each
// other by a recursive sequence of edge-to-edge cuts.
//
// The guillotine restriction makes the problem polynomial (the unrestricted
// maximum independent set of rectangles is NP-hard), but it also means the
// computed count can be strictly smaller than the true MISR optimum. The
// result is exact for guillotine-separable subsets and a lower bound
// otherwise.
package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/RectSelect/internal/model"
)

// ErrNodeBudget is returned when the solver expands more DP windows than
// SolveSettings.MaxNodes allows.
var ErrNodeBudget = errors.New("node budget exhausted")

// window is a DP state: the sub-rectangle of the grid spanning columns
// xi..xj and rows yk..yl.
type window struct {
	xi, xj, yk, yl int
}

type cutKind int

const (
	cutNone       cutKind = iota // no rectangle fits in the window
	cutLeaf                      // the window exactly equals one input rectangle
	cutVertical                  // split at a grid column
	cutHorizontal                // split at a grid row
)

// decision records the choice that achieves a window's best count.
// at is the rectangle index for cutLeaf and the grid line for cuts.
type decision struct {
	kind cutKind
	at   int
}

type answer struct {
	count int
	dec   decision
}

// Solver computes the largest guillotine-separable subset of a rectangle
// set. A Solver is single-threaded; the memo table grows monotonically
// during a run and is reset on each Solve call.
type Solver struct {
	Settings model.SolveSettings

	rects []model.Rect
	grid  grid
	boxes []gridRect
	memo  map[window]answer
	nodes int64
}

func New(settings model.SolveSettings) *Solver {
	return &Solver{Settings: settings}
}

// Solve runs the dynamic program over the full bounding window and
// reconstructs the selected subset from the recorded decisions.
func (s *Solver) Solve(rects []model.Rect) (model.SolveResult, error) {
	if len(rects) == 0 {
		return model.SolveResult{}, errors.New("no rectangles to solve")
	}
	for _, r := range rects {
		if !r.Valid() {
			return model.SolveResult{}, fmt.Errorf("rectangle %d must satisfy xl<xr and yb<yt", r.Index)
		}
	}

	s.rects = rects
	s.grid = newGrid(rects)
	s.boxes = s.grid.compress(rects)
	s.memo = make(map[window]answer)
	s.nodes = 0

	root := window{xi: 0, xj: len(s.grid.xs) - 1, yk: 0, yl: len(s.grid.ys) - 1}
	best, err := s.solve(root)
	if err != nil {
		return model.SolveResult{}, err
	}

	var selected []model.Rect
	s.reconstruct(root, &selected)

	return model.SolveResult{
		Count:         best.count,
		Selected:      selected,
		NodesExpanded: s.nodes,
		GridX:         len(s.grid.xs),
		GridY:         len(s.grid.ys),
	}, nil
}

// solve returns the best count achievable inside w and the decision that
// achieves it. Each distinct window is expanded at most once.
func (s *Solver) solve(w window) (answer, error) {
	// Degenerate windows occur only as sub-call boundaries; not worth caching.
	if w.xi >= w.xj || w.yk >= w.yl {
		return answer{}, nil
	}
	if a, ok := s.memo[w]; ok {
		return a, nil
	}

	s.nodes++
	if s.Settings.MaxNodes > 0 && s.nodes > s.Settings.MaxNodes {
		return answer{}, fmt.Errorf("%w after %d windows", ErrNodeBudget, s.Settings.MaxNodes)
	}

	// A window with no fully contained rectangle stays empty no matter how
	// it is cut.
	if !s.hasAnyRect(w) {
		a := answer{}
		s.memo[w] = a
		return a, nil
	}

	var best answer

	// Leaf option: the window exactly equals some rectangle. This seeds the
	// best value but must not stop the search; a cut through this window can
	// still beat a lone leaf when smaller disjoint rectangles fit inside it.
	for i, b := range s.boxes {
		if b.matches(w) {
			best = answer{count: 1, dec: decision{kind: cutLeaf, at: i}}
			break
		}
	}

	// All vertical cuts xi < c < xj. Rectangles crossed by the cut line fit
	// in neither sub-window, so they are discarded implicitly.
	for c := w.xi + 1; c <= w.xj-1; c++ {
		left, err := s.solve(window{w.xi, c, w.yk, w.yl})
		if err != nil {
			return answer{}, err
		}
		right, err := s.solve(window{c, w.xj, w.yk, w.yl})
		if err != nil {
			return answer{}, err
		}
		if v := left.count + right.count; v > best.count {
			best = answer{count: v, dec: decision{kind: cutVertical, at: c}}
		}
	}

	// All horizontal cuts yk < c < yl.
	for c := w.yk + 1; c <= w.yl-1; c++ {
		bottom, err := s.solve(window{w.xi, w.xj, w.yk, c})
		if err != nil {
			return answer{}, err
		}
		top, err := s.solve(window{w.xi, w.xj, c, w.yl})
		if err != nil {
			return answer{}, err
		}
		if v := bottom.count + top.count; v > best.count {
			best = answer{count: v, dec: decision{kind: cutHorizontal, at: c}}
		}
	}

	s.memo[w] = best
	return best, nil
}

func (s *Solver) hasAnyRect(w window) bool {
	for _, b := range s.boxes {
		if b.inside(w) {
			return true
		}
	}
	return false
}

// reconstruct replays the recorded decisions from w down to the leaves,
// emitting selected rectangles left/bottom sub-window first so the output
// order is deterministic.
func (s *Solver) reconstruct(w window, out *[]model.Rect) {
	a, ok := s.memo[w]
	if !ok || a.count == 0 {
		return
	}
	switch a.dec.kind {
	case cutLeaf:
		*out = append(*out, s.rects[a.dec.at])
	case cutVertical:
		s.reconstruct(window{w.xi, a.dec.at, w.yk, w.yl}, out)
		s.reconstruct(window{a.dec.at, w.xj, w.yk, w.yl}, out)
	case cutHorizontal:
		s.reconstruct(window{w.xi, w.xj, w.yk, a.dec.at}, out)
		s.reconstruct(window{w.xi, w.xj, a.dec.at, w.yl}, out)
	}
}
