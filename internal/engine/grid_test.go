package engine

import (
	"testing"

	"github.com/piwi3910/RectSelect/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_SortedDeduplicated(t *testing.T) {
	rects := []model.Rect{
		model.NewRect(0, 4, 1, 9, 6),
		model.NewRect(1, 0, 1, 4, 3), // shares x=4 and y=1 with rect 0
	}
	g := newGrid(rects)

	assert.Equal(t, []int64{0, 4, 9}, g.xs)
	assert.Equal(t, []int64{1, 3, 6}, g.ys)

	// Never more than two lines per rectangle per axis.
	assert.LessOrEqual(t, len(g.xs), 2*len(rects))
	assert.LessOrEqual(t, len(g.ys), 2*len(rects))
}

func TestCompress_RoundTrips(t *testing.T) {
	rects := []model.Rect{
		model.NewRect(0, -5, 0, 2, 7),
		model.NewRect(1, 2, 3, 10, 7),
		model.NewRect(2, -5, -2, 10, 0),
	}
	g := newGrid(rects)
	boxes := g.compress(rects)
	require.Len(t, boxes, len(rects))

	// Every compressed window maps back to the original corners.
	for i, b := range boxes {
		assert.Equal(t, rects[i].XL, g.xs[b.xl], "rect %d xl", i)
		assert.Equal(t, rects[i].XR, g.xs[b.xr], "rect %d xr", i)
		assert.Equal(t, rects[i].YB, g.ys[b.yb], "rect %d yb", i)
		assert.Equal(t, rects[i].YT, g.ys[b.yt], "rect %d yt", i)
		assert.Less(t, b.xl, b.xr, "rect %d window must be non-degenerate", i)
		assert.Less(t, b.yb, b.yt, "rect %d window must be non-degenerate", i)
	}
}

func TestGridRect_InsideAndMatches(t *testing.T) {
	b := gridRect{xl: 1, xr: 3, yb: 0, yt: 2}

	assert.True(t, b.inside(window{0, 4, 0, 3}))
	assert.True(t, b.inside(window{1, 3, 0, 2}), "a rectangle is inside its own window")
	assert.False(t, b.inside(window{2, 4, 0, 3}), "window starting right of xl")
	assert.False(t, b.inside(window{0, 4, 1, 3}), "window starting above yb")

	assert.True(t, b.matches(window{1, 3, 0, 2}))
	assert.False(t, b.matches(window{0, 3, 0, 2}))
}
