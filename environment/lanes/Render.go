package lanes

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/enduro/environment"
)

var (
	grassColour    = color.RGBA{R: 40, G: 120, B: 40, A: 255}
	roadColour     = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	lineColour     = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	opponentColour = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	selfColour     = color.RGBA{R: 40, G: 80, B: 220, A: 255}
	cellColour     = color.RGBA{R: 255, G: 200, B: 0, A: 90}
)

// render draws the road, the occupied grid cells, and every car
func render(p environment.Perception, rows int, scale float64) image.Image {
	w, h := Width(), Height(rows)
	dc := gg.NewContext(int(w*scale), int(h*scale))
	dc.Scale(scale, scale)

	// Draw grass and road
	dc.SetColor(grassColour)
	dc.Clear()
	right := RoadLeft + float64(environment.GridCols)*LaneWidth
	dc.DrawRectangle(RoadLeft, 0, right-RoadLeft, h)
	dc.SetColor(roadColour)
	dc.Fill()

	// Lane lines
	dc.SetColor(lineColour)
	dc.SetLineWidth(1.0)
	for lane := 0; lane <= environment.GridCols; lane++ {
		x := RoadLeft + float64(lane)*LaneWidth
		dc.DrawLine(x, 0, x, h)
	}
	dc.Stroke()

	// Occupied grid cells
	dc.SetColor(cellColour)
	for row, cells := range p.Grid {
		for col, cell := range cells {
			if cell == environment.Empty {
				continue
			}
			y := h - float64(row+1)*RowHeight
			dc.DrawRectangle(RoadLeft+float64(col)*LaneWidth, y, LaneWidth,
				RowHeight)
		}
	}
	dc.Fill()

	// Cars
	dc.SetColor(opponentColour)
	for _, b := range p.Cars.Others {
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
	}
	dc.Fill()
	dc.SetColor(selfColour)
	self := p.Cars.Self
	dc.DrawRectangle(self.X, self.Y, self.W, self.H)
	dc.Fill()

	return dc.Image()
}
