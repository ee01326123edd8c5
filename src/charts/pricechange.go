package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lutogin/listingcharts/src/geometry"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/overlay"
	"github.com/lutogin/listingcharts/src/palette"
)

const (
	markerRadius       = 10.0
	legendMarkerRadius = 7.0
	priceLegendHeight  = 72
)

var (
	PriceChangeXDomain = geometry.Domain{Min: 0, Max: 240}
	PriceChangeYDomain = geometry.Domain{Min: 760_000, Max: 1_250_000}
	PriceChangeXTicks  = []float64{1, 72, 144, 215}
	PriceChangeYTicks  = []float64{760_000, 923_000, 1_090_000, 1_250_000}
)

// PriceChangeView plots original and current price against days on market, one pair of
// markers per record joined by a vertical segment.
type PriceChangeView struct {
	Records []listings.Listing
	Width   int
	Height  int
	// Legend appends the two-row marker legend below the plot.
	Legend bool
}

// NewPriceChangeView returns the view over the fixed dataset.
func NewPriceChangeView(width, height int) *PriceChangeView {
	return &PriceChangeView{Records: listings.Mock(), Width: width, Height: height, Legend: true}
}

func (v *PriceChangeView) Name() string { return "price-change" }

// Tooltip ignores the marker kind: both markers of a record describe the same listing.
func (v *PriceChangeView) Tooltip(m Marker) Tooltip { return PriceChangeTooltip(m.Listing) }

func (v *PriceChangeView) Chart(fr *Frame) chart.Chart {
	days := func(l listings.Listing) float64 { return l.Days }
	original := func(l listings.Listing) float64 { return l.OriginalPrice }
	current := func(l listings.Listing) float64 { return l.CurrentPrice }

	bottom := 40
	height := v.Height
	var elements []chart.Renderable
	if v.Legend {
		bottom += priceLegendHeight
		height += priceLegendHeight
		elements = append(elements, priceChangeLegend(v.Height))
	}
	axisText := chart.Style{FontColor: palette.Neutral, FontSize: 10, StrokeColor: palette.Transparent}

	return chart.Chart{
		Width:  v.Width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.PriceBackground,
			Padding:   chart.Box{Top: 20, Left: 40, Right: 20, Bottom: bottom},
		},
		Canvas: chart.Style{FillColor: palette.PriceBackground},
		XAxis: chart.XAxis{
			Name:      "Days on market",
			NameStyle: chart.Style{FontColor: palette.Neutral, FontSize: 10},
			Style:     axisText,
			Range:     &chart.ContinuousRange{Min: PriceChangeXDomain.Min, Max: PriceChangeXDomain.Max},
			Ticks:     ticks(PriceChangeXDomain, PriceChangeXTicks, formatNumber),
		},
		YAxis: chart.YAxis{
			Style: axisText,
			Range: &chart.ContinuousRange{Min: PriceChangeYDomain.Min, Max: PriceChangeYDomain.Max},
			Ticks: ticks(PriceChangeYDomain, PriceChangeYTicks, FormatPrice),
		},
		Series: []chart.Series{
			gridSeries(nil, PriceChangeYTicks, palette.Grid, nil),
			connectingSeries(v.Records, fr),
			scatterSeries("original", v.Records, days, original, openCircle(markerRadius-1), MarkerOriginal, markerRadius-1, fr),
			scatterSeries("current", v.Records, days, current, filledCircle(markerRadius), MarkerCurrent, markerRadius, fr),
		},
		Elements: elements,
	}
}

func connectingSeries(records []listings.Listing, fr *Frame) overlaySeries {
	return overlaySeries{name: "connecting", draw: func(r chart.Renderer, g geometry.PlotGeometry) {
		segs := overlay.ConnectingSegments(records, g, markerRadius)
		for _, s := range segs {
			strokeSegment(r, s, 2, nil)
		}
		fr.Segments = segs
	}}
}

// priceChangeLegend draws the vertical, left-aligned marker legend in the strip that
// starts at top, below the axis labels.
func priceChangeLegend(top int) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		drawPriceChangeLegend(r, canvasBox.Left+8, top+22, defaults)
	}
}

func drawPriceChangeLegend(r chart.Renderer, x, y int, defaults chart.Style) {
	circle(r, float64(x)+legendMarkerRadius, float64(y), legendMarkerRadius-1, palette.Transparent, palette.Neutral, 2)
	drawText(r, defaults, "Original list price", x+2*int(legendMarkerRadius)+10, y+4, 10, palette.Neutral)

	y += 26
	circle(r, float64(x)+legendMarkerRadius, float64(y), legendMarkerRadius, palette.Neutral, palette.Neutral, 0)
	drawText(r, defaults, "Most recent price or sold price", x+2*int(legendMarkerRadius)+10, y+4, 10, palette.Neutral)
}
