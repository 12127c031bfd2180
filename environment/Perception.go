package environment

import (
	"image"

	"gonum.org/v1/gonum/spatial/r2"
)

// Occupancy grid cell values
const (
	Empty    int = 0
	Opponent int = 1
	Self     int = 2
)

const (
	// GridCols is the number of lanes in an occupancy grid
	GridCols int = 10

	// HorizonRows is the number of rows, counted from row 0, which make
	// up the agent's forward field of view
	HorizonRows int = 5
)

// Box is the pixel bounding box of a car. X and Y give the top-left
// corner in screen coordinates, with Y growing downwards.
type Box struct {
	X, Y, W, H float64
}

// Position returns the reference point of the box, its top-left corner
func (b Box) Position() r2.Vec {
	return r2.Vec{X: b.X, Y: b.Y}
}

// Cars holds the bounding boxes of the agent's car and of every other
// car visible on screen. Others may be empty.
type Cars struct {
	Self   Box
	Others []Box
}

// Grid is an occupancy grid with GridCols columns. Each cell is one of
// Empty, Opponent, or Self.
type Grid [][]int

// NewGrid returns an empty grid with the given number of rows
func NewGrid(rows int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]int, GridCols)
	}
	return g
}

// Dims returns the number of rows and columns in the grid
func (g Grid) Dims() (r, c int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Horizon returns the first rows of the grid, which make up the field
// of view. If the grid has fewer rows, all rows are returned.
func (g Grid) Horizon(rows int) Grid {
	if len(g) < rows {
		return g
	}
	return g[:rows]
}

// Perception is everything the Extractor perceives in a single frame
type Perception struct {
	// Road contains points along the road edges in pixel coordinates
	Road []r2.Vec

	Cars Cars
	Grid Grid

	// Image is a debug rendering of the perception, nil unless drawing
	// was requested
	Image image.Image
}
