// Package overlay turns listing records and the chart's reported geometry into the
// vector shapes drawn above the library's own markers: the vertical price-change
// segments and the trend line with its band.
//
// Everything here is recomputed from the arguments on every call.
package overlay

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lutogin/listingcharts/src/geometry"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/palette"
	"github.com/lutogin/listingcharts/src/regression"
)

// Vec is a pixel-space point.
type Vec struct {
	X, Y float64
}

// Segment is a straight stroke between two pixel points.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  drawing.Color
	ID     int // listing id, 0 for non-record segments
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// PathData renders the segment as SVG path data.
func (s Segment) PathData() string {
	return "M " + num(s.X1) + " " + num(s.Y1) + " L " + num(s.X2) + " " + num(s.Y2)
}

// Polygon is a closed pixel-space outline.
type Polygon []Vec

// PathData renders the polygon as closed SVG path data.
func (p Polygon) PathData() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range p {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(num(v.X))
		b.WriteByte(' ')
		b.WriteString(num(v.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ConnectingSegments returns one vertical segment per record, from the contour of the
// original-price marker toward the current-price marker. The start is pushed radius
// pixels away from the original centre in the direction of the current point; when both
// prices land on the same pixel row the offset is zero. Nil when g is not Valid.
func ConnectingSegments(records []listings.Listing, g geometry.PlotGeometry, radius float64) []Segment {
	if !g.Valid() {
		return nil
	}
	out := make([]Segment, 0, len(records))
	for _, r := range records {
		x := g.ToX(r.Days)
		yOrig := g.ToY(r.OriginalPrice)
		yCur := g.ToY(r.CurrentPrice)
		dir := sign(yCur - yOrig)
		out = append(out, Segment{
			X1: x, Y1: yOrig + dir*radius,
			X2: x, Y2: yCur,
			Color: palette.ColorByStatus(r.Status),
			ID:    r.ID,
		})
	}
	return out
}

// Trend is the fitted line across the full x domain plus the band around it, in pixels.
type Trend struct {
	Fit  regression.Line
	Band regression.Band
	Line Segment
	// Quad corners: upper-left, upper-right, lower-right, lower-left.
	Quad Polygon
}

// TrendAndBand fits points and projects the line and its band onto g. ok is false, and
// nothing should be drawn, when g is not Valid or the fit is degenerate.
func TrendAndBand(points []regression.Point, g geometry.PlotGeometry) (Trend, bool) {
	if !g.Valid() {
		return Trend{}, false
	}
	fit, err := regression.Fit(points)
	if err != nil {
		return Trend{}, false
	}
	band := regression.NewBand(fit, g.Y)
	xl, xr := g.X.Min, g.X.Max
	return Trend{
		Fit:  fit,
		Band: band,
		Line: Segment{
			X1: g.ToX(xl), Y1: g.ToY(fit.At(xl)),
			X2: g.ToX(xr), Y2: g.ToY(fit.At(xr)),
			Color: palette.Trendline,
		},
		Quad: Polygon{
			{g.ToX(xl), g.ToY(band.Upper(xl))},
			{g.ToX(xr), g.ToY(band.Upper(xr))},
			{g.ToX(xr), g.ToY(band.Lower(xr))},
			{g.ToX(xl), g.ToY(band.Lower(xl))},
		},
	}, true
}

// String is used in debug logging.
func (t Trend) String() string {
	return fmt.Sprintf("trend a=%.1f b=%.1f n=%d margin=%.0f", t.Fit.A, t.Fit.B, t.Fit.N, t.Band.Margin)
}
