package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lutogin/listingcharts/src/geometry"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/logging"
	"github.com/lutogin/listingcharts/src/overlay"
	"github.com/lutogin/listingcharts/src/palette"
	"github.com/lutogin/listingcharts/src/regression"
)

const (
	comparableRadius = 6.0
	subjectRadius    = 10.0

	// AveragePricePerAcre is the published header figure. It is a fixed market number,
	// not derived from the plotted rows.
	AveragePricePerAcre = 29_569_003

	// DefaultSubjectAcres places the reference line when the dataset has no subject.
	DefaultSubjectAcres = 0.038

	landHeaderHeight = 64
	landLegendHeight = 40
)

var (
	LandPriceXDomain = geometry.Domain{Min: 0.02, Max: 0.06}
	LandPriceYDomain = geometry.Domain{Min: 720_000, Max: 1_200_000}
	LandPriceXTicks  = []float64{0.025, 0.035, 0.045, 0.055}
	LandPriceYTicks  = []float64{760_000, 898_000, 1_040_000, 1_180_000}

	gridDash = []float64{4, 4}
)

// Toggles are the land chart's visibility switches. They live with whoever shows the
// chart (a window, a request) and are never stored.
type Toggles struct {
	ShowSubject   bool
	ShowTrendline bool
}

// DefaultToggles shows everything.
func DefaultToggles() Toggles { return Toggles{ShowSubject: true, ShowTrendline: true} }

// LandPriceView plots price against acreage for the comparables, the subject property,
// and a fitted trend line with a fixed-width band.
type LandPriceView struct {
	Records []listings.Listing
	Width   int
	Height  int
	Toggles Toggles
	// Header draws the average price per acre above the plot.
	Header bool
	// Legend draws the toggle states and captions below the plot. Interactive hosts
	// render their own controls and leave it off.
	Legend bool
}

// NewLandPriceView returns the view over the fixed dataset with header and legend.
func NewLandPriceView(width, height int, t Toggles) *LandPriceView {
	return &LandPriceView{Records: listings.Mock(), Width: width, Height: height, Toggles: t, Header: true, Legend: true}
}

func (v *LandPriceView) Name() string { return "land-price" }

func (v *LandPriceView) Tooltip(m Marker) Tooltip { return LandPriceTooltip(m.Listing) }

func (v *LandPriceView) Chart(fr *Frame) chart.Chart {
	acres := func(l listings.Listing) float64 { return l.Acres }
	price := func(l listings.Listing) float64 { return l.Price }
	comparables := listings.Comparables(v.Records)
	subject, hasSubject := listings.Subject(v.Records)

	top, bottom, height := 16, 32, v.Height
	var elements []chart.Renderable
	if v.Header {
		top += landHeaderHeight
		height += landHeaderHeight
		elements = append(elements, landPriceHeader)
	}
	if v.Legend {
		bottom += landLegendHeight
		height += landLegendHeight
		elements = append(elements, landPriceLegend(height-landLegendHeight, v.Toggles))
	}

	series := []chart.Series{gridSeries(LandPriceXTicks, LandPriceYTicks, palette.Grid, gridDash)}
	if v.Toggles.ShowSubject {
		refAcres := DefaultSubjectAcres
		if hasSubject {
			refAcres = subject.Acres
		}
		series = append(series, referenceSeries(refAcres, fr))
	}
	if v.Toggles.ShowTrendline {
		series = append(series, trendSeries(comparables, fr))
	}
	series = append(series, scatterSeries("comparables", comparables, acres, price,
		filledCircle(comparableRadius), MarkerComparable, comparableRadius, fr))
	if v.Toggles.ShowSubject && hasSubject {
		series = append(series, scatterSeries("subject", []listings.Listing{subject}, acres, price,
			subjectShape(subjectRadius), MarkerSubject, subjectRadius, fr))
	}

	axisText := chart.Style{FontColor: palette.Text, FontSize: 9, StrokeColor: palette.Transparent}
	return chart.Chart{
		Width:  v.Width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.LandBackground,
			Padding:   chart.Box{Top: top, Left: 16, Right: 16, Bottom: bottom},
		},
		Canvas: chart.Style{FillColor: palette.LandBackground},
		XAxis: chart.XAxis{
			Name:      "Acres",
			NameStyle: chart.Style{FontColor: palette.Text, FontSize: 9},
			Style:     axisText,
			Range:     &chart.ContinuousRange{Min: LandPriceXDomain.Min, Max: LandPriceXDomain.Max},
			Ticks:     ticks(LandPriceXDomain, LandPriceXTicks, formatNumber),
		},
		YAxis: chart.YAxis{
			Style: axisText,
			Range: &chart.ContinuousRange{Min: LandPriceYDomain.Min, Max: LandPriceYDomain.Max},
			Ticks: ticks(LandPriceYDomain, LandPriceYTicks, FormatPrice),
		},
		Series:   series,
		Elements: elements,
	}
}

// referenceSeries draws the dashed vertical line at the subject's acreage.
func referenceSeries(acres float64, fr *Frame) overlaySeries {
	return overlaySeries{name: "reference", draw: func(r chart.Renderer, g geometry.PlotGeometry) {
		if !g.Valid() {
			return
		}
		x := g.ToX(acres)
		seg := overlay.Segment{X1: x, Y1: g.Area.Y, X2: x, Y2: g.Area.Y + g.Area.Height, Color: palette.Neutral}
		strokeSegment(r, seg, 1, gridDash)
		r.SetStrokeDashArray(nil)
		fr.Reference = &seg
	}}
}

// trendSeries fills the band and strokes the fitted line over it.
func trendSeries(comparables []listings.Listing, fr *Frame) overlaySeries {
	points := make([]regression.Point, len(comparables))
	for i, l := range comparables {
		points[i] = regression.Point{X: l.Acres, Y: l.Price}
	}
	return overlaySeries{name: "trend", draw: func(r chart.Renderer, g geometry.PlotGeometry) {
		t, ok := overlay.TrendAndBand(points, g)
		if !ok {
			logging.Debugf("[charts] land-price: no trend for this frame (points=%d)", len(points))
			return
		}
		fillPolygon(r, t.Quad, palette.ConfidenceBand)
		strokeSegment(r, t.Line, 1.5, nil)
		fr.Trend = &t
		logging.Debugf("[charts] land-price: %s", t)
	}}
}

func landPriceHeader(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
	avg := FormatDollars(AveragePricePerAcre)
	x := canvasBox.Left
	next := drawText(r, defaults, avg, x, 34, 20, palette.Title)
	drawText(r, defaults, " / Acre", next, 34, 13, palette.Text)

	next = drawText(r, defaults, "Comparable land sold for an average of ", x, 58, 10, palette.Text)
	next = drawText(r, defaults, avg, next, 58, 10, palette.Title)
	drawText(r, defaults, " / acre.", next, 58, 10, palette.Text)

	// info badge
	cx := float64(canvasBox.Right) - 10
	circle(r, cx, 20, 10, palette.Grid, palette.Grid, 0)
	textStyle(r, defaults, 9, palette.Neutral)
	w := r.MeasureText("i").Width()
	r.Text("i", px(cx)-w/2, 24)
}

// landPriceLegend mirrors the two toggles as check boxes with their captions.
func landPriceLegend(top int, t Toggles) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		y := top + 24
		x := canvasBox.Left
		checkBox(r, x, y, t.ShowSubject)
		drawHouse(r, float64(x+22), float64(y-10), 16, palette.Title)
		x = drawText(r, defaults, "Subject Property", x+44, y+4, 10, palette.Text) + 24

		checkBox(r, x, y, t.ShowTrendline)
		strokeSegment(r, overlay.Segment{X1: float64(x + 22), Y1: float64(y + 3), X2: float64(x + 42), Y2: float64(y - 3), Color: palette.Trendline}, 1.5, nil)
		drawText(r, defaults, "Trendline represents average price per acre of SOLD listings.", x+50, y+4, 10, palette.Text)
	}
}

func checkBox(r chart.Renderer, x, y int, checked bool) {
	fill, border := palette.White, palette.Neutral
	if checked {
		fill, border = palette.SubjectBorder, palette.SubjectBorder
	}
	box := overlay.Polygon{
		{X: float64(x), Y: float64(y - 7)}, {X: float64(x + 14), Y: float64(y - 7)},
		{X: float64(x + 14), Y: float64(y + 7)}, {X: float64(x), Y: float64(y + 7)},
	}
	fillPolygon(r, box, fill)
	outline(r, box, border)
	if checked {
		tick := palette.White
		strokeSegment(r, overlay.Segment{X1: float64(x + 3), Y1: float64(y), X2: float64(x + 6), Y2: float64(y + 4), Color: tick}, 2, nil)
		strokeSegment(r, overlay.Segment{X1: float64(x + 6), Y1: float64(y + 4), X2: float64(x + 11), Y2: float64(y - 4), Color: tick}, 2, nil)
	}
}

func outline(r chart.Renderer, p overlay.Polygon, c drawing.Color) {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		strokeSegment(r, overlay.Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Color: c}, 1, nil)
	}
}
