package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutogin/listingcharts/src/geometry"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/palette"
	"github.com/lutogin/listingcharts/src/regression"
)

func priceGeometry() geometry.PlotGeometry {
	return geometry.PlotGeometry{
		Area: geometry.Rect{X: 40, Y: 20, Width: 800, Height: 490},
		X:    geometry.Domain{Min: 0, Max: 240},
		Y:    geometry.Domain{Min: 760_000, Max: 1_250_000},
	}
}

func TestConnectingSegmentsStartOnContour(t *testing.T) {
	g := priceGeometry()
	recs := []listings.Listing{
		{ID: 1, Status: listings.StatusSold, Days: 100, OriginalPrice: 1_000_000, CurrentPrice: 900_000},  // drop: current below
		{ID: 2, Status: listings.StatusActive, Days: 50, OriginalPrice: 900_000, CurrentPrice: 1_100_000}, // rise: current above
	}
	segs := ConnectingSegments(recs, g, 10)
	require.Len(t, segs, 2)

	drop := segs[0]
	assert.Equal(t, drop.X1, drop.X2, "segments are vertical")
	assert.InDelta(t, g.ToX(100), drop.X1, 1e-9)
	assert.InDelta(t, g.ToY(1_000_000)+10, drop.Y1, 1e-9, "price drop moves the start down by the radius")
	assert.InDelta(t, g.ToY(900_000), drop.Y2, 1e-9)
	assert.Equal(t, palette.Sold, drop.Color)
	assert.Equal(t, 1, drop.ID)

	rise := segs[1]
	assert.InDelta(t, g.ToY(900_000)-10, rise.Y1, 1e-9, "price rise moves the start up by the radius")
	assert.InDelta(t, g.ToY(1_100_000), rise.Y2, 1e-9)
	assert.Equal(t, palette.Active, rise.Color)
}

func TestConnectingSegmentsUnchangedPriceDegeneratesToCentre(t *testing.T) {
	g := priceGeometry()
	segs := ConnectingSegments([]listings.Listing{{ID: 9, Status: listings.StatusPending, Days: 78, OriginalPrice: 1_080_000, CurrentPrice: 1_080_000}}, g, 10)
	require.Len(t, segs, 1)
	assert.Equal(t, segs[0].Y1, segs[0].Y2)
	assert.Zero(t, segs[0].Length())
}

func TestConnectingSegmentsUnknownStatusUsesNeutral(t *testing.T) {
	segs := ConnectingSegments([]listings.Listing{{ID: 3, Status: "", Days: 1, OriginalPrice: 800_000, CurrentPrice: 810_000}}, priceGeometry(), 10)
	require.Len(t, segs, 1)
	assert.Equal(t, palette.Neutral, segs[0].Color)
}

func TestConnectingSegmentsSkipInvalidGeometry(t *testing.T) {
	g := priceGeometry()
	g.Y = geometry.Domain{Min: 1, Max: 1}
	assert.Nil(t, ConnectingSegments(listings.Mock(), g, 10))
	assert.Nil(t, ConnectingSegments(listings.Mock(), geometry.PlotGeometry{}, 10))
}

func TestConnectingSegmentsWholeDataset(t *testing.T) {
	segs := ConnectingSegments(listings.Mock(), priceGeometry(), 10)
	assert.Len(t, segs, 24)
	for _, s := range segs {
		assert.LessOrEqual(t, s.Length(), 490.0)
	}
}

func landGeometry() geometry.PlotGeometry {
	return geometry.PlotGeometry{
		Area: geometry.Rect{X: 16, Y: 16, Width: 760, Height: 372},
		X:    geometry.Domain{Min: 0.02, Max: 0.06},
		Y:    geometry.Domain{Min: 720_000, Max: 1_200_000},
	}
}

func TestTrendAndBandCorners(t *testing.T) {
	g := landGeometry()
	pts := []regression.Point{{X: 0.02, Y: 800_000}, {X: 0.04, Y: 900_000}, {X: 0.06, Y: 1_000_000}}
	tr, ok := TrendAndBand(pts, g)
	require.True(t, ok)
	assert.InEpsilon(t, 5_000_000, tr.Fit.B, 1e-9)
	assert.InEpsilon(t, 700_000, tr.Fit.A, 1e-9)

	margin := 0.30 * 480_000
	assert.InDelta(t, margin, tr.Band.Margin, 1e-9)

	assert.InDelta(t, g.Area.X, tr.Line.X1, 1e-9, "trend spans the full x domain")
	assert.InDelta(t, g.Area.X+g.Area.Width, tr.Line.X2, 1e-9)
	assert.InDelta(t, g.ToY(800_000), tr.Line.Y1, 1e-6)
	assert.InDelta(t, g.ToY(1_000_000), tr.Line.Y2, 1e-6)

	require.Len(t, tr.Quad, 4)
	assert.InDelta(t, g.ToY(800_000+margin), tr.Quad[0].Y, 1e-6)
	assert.InDelta(t, g.ToY(1_000_000+margin), tr.Quad[1].Y, 1e-6)
	assert.InDelta(t, g.ToY(1_000_000-margin), tr.Quad[2].Y, 1e-6)
	assert.InDelta(t, g.ToY(800_000-margin), tr.Quad[3].Y, 1e-6)
	assert.Equal(t, tr.Quad[0].X, tr.Quad[3].X)
	assert.Equal(t, tr.Quad[1].X, tr.Quad[2].X)
}

func TestTrendAndBandSkips(t *testing.T) {
	g := landGeometry()
	_, ok := TrendAndBand([]regression.Point{{X: 0.03, Y: 1}}, g)
	assert.False(t, ok, "single point")
	_, ok = TrendAndBand(nil, g)
	assert.False(t, ok, "no points")
	_, ok = TrendAndBand([]regression.Point{{X: 0.05, Y: 1}, {X: 0.05, Y: 2}, {X: 0.05, Y: 3}}, g)
	assert.False(t, ok, "zero variance")
	bad := g
	bad.Area.Width = 0
	_, ok = TrendAndBand([]regression.Point{{X: 0.02, Y: 1}, {X: 0.03, Y: 2}}, bad)
	assert.False(t, ok, "invalid geometry")
}

func TestPathData(t *testing.T) {
	s := Segment{X1: 1, Y1: 2.5, X2: 3, Y2: 4}
	assert.Equal(t, "M 1.00 2.50 L 3.00 4.00", s.PathData())
	p := Polygon{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	d := p.PathData()
	assert.True(t, strings.HasPrefix(d, "M 0.00 0.00 L 10.00 0.00"))
	assert.True(t, strings.HasSuffix(d, " Z"))
	assert.Empty(t, Polygon(nil).PathData())
}
