// Package regression fits y = A + B*x by ordinary least squares in closed form and
// builds the fixed-width band drawn around the fitted line.
package regression

import (
	"errors"
	"math"

	"github.com/lutogin/listingcharts/src/geometry"
)

// BandFraction is the band half-height as a share of the y-axis span.
const BandFraction = 0.30

var (
	// ErrTooFewPoints is returned when fewer than two points are supplied.
	ErrTooFewPoints = errors.New("regression: need at least two points")
	// ErrZeroVariance is returned when every x value is identical.
	ErrZeroVariance = errors.New("regression: x values have zero variance")
)

// Point is one (x, y) observation in domain space.
type Point struct {
	X, Y float64
}

// Line is y = A + B*x.
type Line struct {
	A     float64 // intercept
	B     float64 // slope
	MeanX float64
	N     int
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 { return l.A + l.B*x }

// Fit returns the least-squares line through points.
func Fit(points []Point) (Line, error) {
	n := len(points)
	if n < 2 {
		return Line{}, ErrTooFewPoints
	}
	var sumX, sumY, sumXY, sumX2 float64
	minX, maxX := points[0].X, points[0].X
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumX2 += p.X * p.X
	}
	fn := float64(n)
	den := fn*sumX2 - sumX*sumX
	// rounding can leave a tiny non-zero den for repeated fractional x, so compare the range too
	if minX == maxX || den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return Line{}, ErrZeroVariance
	}
	b := (fn*sumXY - sumX*sumY) / den
	a := (sumY - b*sumX) / fn
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Line{}, ErrZeroVariance
	}
	return Line{A: a, B: b, MeanX: sumX / fn, N: n}, nil
}

// Band is the fitted line offset by ±Margin.
type Band struct {
	Line   Line
	Margin float64
}

// NewBand builds the band for a y-axis domain using BandFraction of its span.
func NewBand(l Line, y geometry.Domain) Band {
	return Band{Line: l, Margin: BandFraction * y.Span()}
}

// Upper returns the top edge of the band at x.
func (b Band) Upper(x float64) float64 { return b.Line.At(x) + b.Margin }

// Lower returns the bottom edge of the band at x.
func (b Band) Lower(x float64) float64 { return b.Line.At(x) - b.Margin }
