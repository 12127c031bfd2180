package lanes

import (
	"github.com/samuelfneumann/enduro/environment"
	"gonum.org/v1/gonum/spatial/r2"
)

// Pixel geometry of the road. Screen coordinates have y growing
// downwards, with the agent's car in the bottom row.
const (
	LaneWidth float64 = 20
	RowHeight float64 = 16
	RoadLeft  float64 = 8
	CarWidth  float64 = 12
	CarHeight float64 = 10
)

// Width returns the width of the screen in pixels
func Width() float64 {
	return 2*RoadLeft + float64(environment.GridCols)*LaneWidth
}

// Height returns the height of the screen in pixels for a road with
// the given number of rows
func Height(rows int) float64 {
	return float64(rows) * RowHeight
}

// box returns the bounding box of a car in a lane, pos rows ahead of
// the agent
func (l *Lanes) box(lane int, pos float64) environment.Box {
	return environment.Box{
		X: RoadLeft + float64(lane)*LaneWidth + (LaneWidth-CarWidth)/2,
		Y: Height(l.rows) - (pos+1)*RowHeight + (RowHeight-CarHeight)/2,
		W: CarWidth,
		H: CarHeight,
	}
}

// road returns points along the left and right road edges, one per row
func (l *Lanes) road() []r2.Vec {
	right := RoadLeft + float64(environment.GridCols)*LaneWidth
	points := make([]r2.Vec, 0, 2*l.rows)
	for row := 0; row < l.rows; row++ {
		y := Height(l.rows) - (float64(row)+0.5)*RowHeight
		points = append(points, r2.Vec{X: RoadLeft, Y: y},
			r2.Vec{X: right, Y: y})
	}
	return points
}
