// Package geometry maps domain-space values (days, dollars, acres) onto the
// pixel rectangle a chart reserves for plotting.
package geometry

import "math"

// Rect is the drawable plot area in pixels. Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Domain is the closed [Min, Max] interval of values mapped onto an axis.
type Domain struct {
	Min, Max float64
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Contains reports whether v lies within the closed interval.
func (d Domain) Contains(v float64) bool { return v >= d.Min && v <= d.Max }

// PlotGeometry is what the chart reports for one render: the plot rectangle and the
// domain currently mapped onto each axis.
type PlotGeometry struct {
	Area Rect
	X    Domain
	Y    Domain
}

func positiveFinite(v float64) bool { return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) }

// Valid reports whether mapping is defined: positive finite width, height and spans.
// Overlays must skip drawing when this is false.
func (g PlotGeometry) Valid() bool {
	return positiveFinite(g.Area.Width) && positiveFinite(g.Area.Height) &&
		positiveFinite(g.X.Span()) && positiveFinite(g.Y.Span())
}

// ToX maps a domain value to a pixel column.
func (g PlotGeometry) ToX(v float64) float64 {
	return g.Area.X + (v-g.X.Min)/g.X.Span()*g.Area.Width
}

// ToY maps a domain value to a pixel row; larger values sit higher on screen.
func (g PlotGeometry) ToY(v float64) float64 {
	return g.Area.Y + g.Area.Height - (v-g.Y.Min)/g.Y.Span()*g.Area.Height
}

// FromX is the inverse of ToX.
func (g PlotGeometry) FromX(px float64) float64 {
	return g.X.Min + (px-g.Area.X)/g.Area.Width*g.X.Span()
}

// FromY is the inverse of ToY.
func (g PlotGeometry) FromY(py float64) float64 {
	return g.Y.Min + (g.Area.Y+g.Area.Height-py)/g.Area.Height*g.Y.Span()
}

// InArea reports whether a pixel lies inside the plot rectangle.
func (g PlotGeometry) InArea(px, py float64) bool {
	return px >= g.Area.X && px <= g.Area.X+g.Area.Width &&
		py >= g.Area.Y && py <= g.Area.Y+g.Area.Height
}
