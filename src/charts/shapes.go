package charts

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/overlay"
	"github.com/lutogin/listingcharts/src/palette"
)

// ShapeFunc draws one marker centred on (x, y). It is the per-point drawing callback the
// scatter series invokes for every record.
type ShapeFunc func(r chart.Renderer, x, y float64, l listings.Listing)

func px(v float64) int { return int(math.Round(v)) }

func circle(r chart.Renderer, x, y, radius float64, fill, stroke drawing.Color, width float64) {
	r.SetFillColor(fill)
	r.SetStrokeColor(stroke)
	r.SetStrokeWidth(width)
	r.SetStrokeDashArray(nil)
	r.Circle(radius, px(x), px(y))
	r.FillStroke()
}

// openCircle is the original-price marker: status-colored ring, transparent inside.
func openCircle(radius float64) ShapeFunc {
	return func(r chart.Renderer, x, y float64, l listings.Listing) {
		circle(r, x, y, radius, palette.Transparent, palette.ColorByStatus(l.Status), 2)
	}
}

// filledCircle is the current-price / comparable marker.
func filledCircle(radius float64) ShapeFunc {
	return func(r chart.Renderer, x, y float64, l listings.Listing) {
		c := palette.ColorByStatus(l.Status)
		circle(r, x, y, radius, c, c, 0)
	}
}

// housePath is a pentagon (peak, roof slopes, walls, base) in a 24x24 box.
var housePath = []overlay.Vec{{X: 12, Y: 4}, {X: 2, Y: 12}, {X: 2, Y: 20}, {X: 22, Y: 20}, {X: 22, Y: 12}}

// drawHouse fills the house icon scaled to size with its box's top-left at (x, y).
func drawHouse(r chart.Renderer, x, y, size float64, c drawing.Color) {
	s := size / 24
	r.SetFillColor(c)
	r.SetStrokeColor(palette.Transparent)
	r.SetStrokeWidth(0)
	for i, p := range housePath {
		if i == 0 {
			r.MoveTo(px(x+p.X*s), px(y+p.Y*s))
			continue
		}
		r.LineTo(px(x+p.X*s), px(y+p.Y*s))
	}
	r.Close()
	r.Fill()
}

// subjectShape is a white disc with a blue border and the house icon inside.
func subjectShape(radius float64) ShapeFunc {
	return func(r chart.Renderer, x, y float64, _ listings.Listing) {
		circle(r, x, y, radius, palette.LandBackground, palette.SubjectBorder, 2.5)
		drawHouse(r, x-6, y-6, 12, palette.Title)
	}
}

func strokeSegment(r chart.Renderer, s overlay.Segment, width float64, dash []float64) {
	r.SetStrokeColor(s.Color)
	r.SetStrokeWidth(width)
	r.SetStrokeDashArray(dash)
	r.MoveTo(px(s.X1), px(s.Y1))
	r.LineTo(px(s.X2), px(s.Y2))
	r.Stroke()
}

func fillPolygon(r chart.Renderer, p overlay.Polygon, c drawing.Color) {
	if len(p) == 0 {
		return
	}
	r.SetFillColor(c)
	r.SetStrokeColor(palette.Transparent)
	r.SetStrokeWidth(0)
	r.MoveTo(px(p[0].X), px(p[0].Y))
	for _, v := range p[1:] {
		r.LineTo(px(v.X), px(v.Y))
	}
	r.Close()
	r.Fill()
}
