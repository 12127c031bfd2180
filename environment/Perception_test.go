package environment

import "testing"

func TestGridHorizon(t *testing.T) {
	g := NewGrid(12)
	if r, c := g.Dims(); r != 12 || c != GridCols {
		t.Errorf("dims: want (12, %d), have (%d, %d)", GridCols, r, c)
	}
	if len(g.Horizon(HorizonRows)) != HorizonRows {
		t.Errorf("horizon: want %d rows, have %d", HorizonRows,
			len(g.Horizon(HorizonRows)))
	}

	short := NewGrid(3)
	if len(short.Horizon(HorizonRows)) != 3 {
		t.Errorf("horizon: want 3 rows, have %d", len(short.Horizon(HorizonRows)))
	}
}

func TestGridHorizonRows(t *testing.T) {
	g := NewGrid(12)
	g[0][1] = Opponent
	g[5][2] = Self

	for rows := 0; rows <= 12; rows++ {
		h := g.Horizon(rows)
		if len(h) != rows {
			t.Errorf("horizon(%d): want %d rows, have %d", rows, rows, len(h))
		}
	}
	if h := g.Horizon(20); len(h) != 12 {
		t.Errorf("horizon(20): want all 12 rows, have %d", len(h))
	}

	// The horizon shares cells with the grid
	if h := g.Horizon(6); h[5][2] != Self || h[0][1] != Opponent {
		t.Errorf("horizon: want cells of the grid, have %v", h)
	}
}
