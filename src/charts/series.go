package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lutogin/listingcharts/src/geometry"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/overlay"
)

// geometryOf converts what the library hands a series into plain plot geometry.
func geometryOf(canvasBox chart.Box, xrange, yrange chart.Range) geometry.PlotGeometry {
	return geometry.PlotGeometry{
		Area: geometry.Rect{
			X:      float64(canvasBox.Left),
			Y:      float64(canvasBox.Top),
			Width:  float64(canvasBox.Width()),
			Height: float64(canvasBox.Height()),
		},
		X: geometry.Domain{Min: xrange.GetMin(), Max: xrange.GetMax()},
		Y: geometry.Domain{Min: yrange.GetMin(), Max: yrange.GetMax()},
	}
}

// overlaySeries runs draw inside the chart's series pass. It carries no values, so the
// axes must have explicit ranges.
type overlaySeries struct {
	name string
	draw func(r chart.Renderer, g geometry.PlotGeometry)
}

var _ chart.Series = overlaySeries{}

func (s overlaySeries) GetName() string           { return s.name }
func (s overlaySeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s overlaySeries) GetStyle() chart.Style     { return chart.Style{} }
func (s overlaySeries) Validate() error           { return nil }
func (s overlaySeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	s.draw(r, geometryOf(canvasBox, xrange, yrange))
}

// scatterSeries draws one marker per record through shape and records it in the frame.
func scatterSeries(name string, records []listings.Listing, xOf, yOf func(listings.Listing) float64,
	shape ShapeFunc, kind MarkerKind, radius float64, fr *Frame) overlaySeries {
	return overlaySeries{name: name, draw: func(r chart.Renderer, g geometry.PlotGeometry) {
		fr.Geometry = g
		if !g.Valid() {
			return
		}
		for _, l := range records {
			x, y := g.ToX(xOf(l)), g.ToY(yOf(l))
			shape(r, x, y, l)
			fr.Markers = append(fr.Markers, Marker{Listing: l, Kind: kind, X: x, Y: y, Radius: radius})
		}
	}}
}

// gridSeries strokes grid lines at the declared tick values.
func gridSeries(xTicks, yTicks []float64, c drawing.Color, dash []float64) overlaySeries {
	return overlaySeries{name: "grid", draw: func(r chart.Renderer, g geometry.PlotGeometry) {
		if !g.Valid() {
			return
		}
		top, bottom := g.Area.Y, g.Area.Y+g.Area.Height
		left, right := g.Area.X, g.Area.X+g.Area.Width
		for _, v := range xTicks {
			x := g.ToX(v)
			strokeSegment(r, overlay.Segment{X1: x, Y1: top, X2: x, Y2: bottom, Color: c}, 1, dash)
		}
		for _, v := range yTicks {
			y := g.ToY(v)
			strokeSegment(r, overlay.Segment{X1: left, Y1: y, X2: right, Y2: y, Color: c}, 1, dash)
		}
		r.SetStrokeDashArray(nil)
	}}
}

// ticks labels values and pins the domain ends with blank ticks. go-chart narrows an
// axis range to the extent of its explicit ticks, so the ends keep the declared domain.
func ticks(d geometry.Domain, values []float64, label func(float64) string) []chart.Tick {
	out := make([]chart.Tick, 0, len(values)+2)
	if len(values) == 0 || values[0] != d.Min {
		out = append(out, chart.Tick{Value: d.Min})
	}
	for _, v := range values {
		out = append(out, chart.Tick{Value: v, Label: label(v)})
	}
	if len(values) == 0 || values[len(values)-1] != d.Max {
		out = append(out, chart.Tick{Value: d.Max})
	}
	return out
}
