package charts

import (
	"bytes"
	"io"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/regression"
)

func renderFrame(t *testing.T, v View, f Format) (Frame, []byte) {
	t.Helper()
	var buf bytes.Buffer
	fr, err := Render(v, f, &buf)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())
	return fr, buf.Bytes()
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestPriceChangeFrame(t *testing.T) {
	v := NewPriceChangeView(900, 480)
	fr, out := renderFrame(t, v, FormatPNG)
	assert.Equal(t, []byte("\x89PNG"), out[:4])

	require.True(t, fr.Geometry.Valid())
	assert.Equal(t, PriceChangeXDomain, fr.Geometry.X, "x range follows the declared domain, not the tick extent")
	assert.Equal(t, PriceChangeYDomain, fr.Geometry.Y)

	n := len(v.Records)
	require.Len(t, fr.Markers, 2*n, "one open and one filled marker per record")
	require.Len(t, fr.Segments, n)

	origByID := map[int]Marker{}
	for _, m := range fr.Markers {
		if m.Kind == MarkerOriginal {
			origByID[m.Listing.ID] = m
		}
	}
	for _, s := range fr.Segments {
		o, ok := origByID[s.ID]
		require.True(t, ok)
		assert.InDelta(t, o.X, s.X1, 1e-9)
		if o.Listing.PriceChange() == 0 {
			assert.InDelta(t, o.Y, s.Y1, 1e-9)
			continue
		}
		assert.InDelta(t, markerRadius, math.Abs(s.Y1-o.Y), 1e-9, "listing %d starts on the contour", s.ID)
	}
	assert.Nil(t, fr.Trend)
	assert.Nil(t, fr.Reference)
}

func TestPriceChangeSVG(t *testing.T) {
	_, out := renderFrame(t, NewPriceChangeView(900, 480), FormatSVG)
	assert.Contains(t, string(out), "<svg")
	assert.Contains(t, string(out), "Days on market")
	assert.Contains(t, string(out), "$1.09M")
}

func TestLandPriceTogglesAreIndependent(t *testing.T) {
	comparables := 23

	all, _ := renderFrame(t, NewLandPriceView(900, 420, DefaultToggles()), FormatPNG)
	assert.Len(t, all.Markers, comparables+1)
	assert.NotNil(t, all.Reference)
	require.NotNil(t, all.Trend)
	assert.Len(t, all.Trend.Quad, 4)

	noSubject, _ := renderFrame(t, NewLandPriceView(900, 420, Toggles{ShowTrendline: true}), FormatPNG)
	assert.Len(t, noSubject.Markers, comparables)
	assert.Nil(t, noSubject.Reference, "hiding the subject hides its reference line")
	assert.NotNil(t, noSubject.Trend, "trend does not depend on the subject toggle")
	for _, m := range noSubject.Markers {
		assert.NotEqual(t, MarkerSubject, m.Kind)
	}

	noTrend, _ := renderFrame(t, NewLandPriceView(900, 420, Toggles{ShowSubject: true}), FormatPNG)
	assert.Len(t, noTrend.Markers, comparables+1)
	assert.NotNil(t, noTrend.Reference)
	assert.Nil(t, noTrend.Trend)

	none, _ := renderFrame(t, NewLandPriceView(900, 420, Toggles{}), FormatSVG)
	assert.Len(t, none.Markers, comparables)
	assert.Nil(t, none.Reference)
	assert.Nil(t, none.Trend)
}

func TestLandPriceTrendFitsComparables(t *testing.T) {
	v := NewLandPriceView(900, 420, DefaultToggles())
	fr, _ := renderFrame(t, v, FormatPNG)
	require.NotNil(t, fr.Trend)

	var pts []regression.Point
	for _, l := range listings.Comparables(v.Records) {
		pts = append(pts, regression.Point{X: l.Acres, Y: l.Price})
	}
	want, err := regression.Fit(pts)
	require.NoError(t, err)
	assert.Equal(t, want, fr.Trend.Fit)

	g := fr.Geometry
	assert.Equal(t, LandPriceXDomain, g.X)
	assert.Equal(t, LandPriceYDomain, g.Y)
	assert.InDelta(t, g.ToX(LandPriceXDomain.Min), fr.Trend.Line.X1, 1e-9)
	assert.InDelta(t, g.ToX(LandPriceXDomain.Max), fr.Trend.Line.X2, 1e-9)

	subject, _ := listings.Subject(v.Records)
	require.NotNil(t, fr.Reference)
	assert.InDelta(t, g.ToX(subject.Acres), fr.Reference.X1, 1e-9)
	assert.InDelta(t, g.Area.Y, fr.Reference.Y1, 1e-9)
	assert.InDelta(t, g.Area.Y+g.Area.Height, fr.Reference.Y2, 1e-9)
}

func TestLandPriceWithoutSubjectUsesDefaultReference(t *testing.T) {
	v := NewLandPriceView(900, 420, DefaultToggles())
	v.Records = listings.Comparables(v.Records)
	fr, _ := renderFrame(t, v, FormatPNG)
	require.NotNil(t, fr.Reference)
	assert.InDelta(t, fr.Geometry.ToX(DefaultSubjectAcres), fr.Reference.X1, 1e-9)
	assert.Len(t, fr.Markers, 23)
}

func TestHitTestPicksMarker(t *testing.T) {
	v := NewLandPriceView(900, 420, DefaultToggles())
	fr, _ := renderFrame(t, v, FormatPNG)

	var subject Marker
	for _, m := range fr.Markers {
		if m.Kind == MarkerSubject {
			subject = m
		}
	}
	require.Equal(t, 1, subject.Listing.ID)

	got, ok := fr.HitTest(subject.X+2, subject.Y-1)
	require.True(t, ok)
	assert.Equal(t, MarkerSubject, got.Kind)
	assert.Equal(t, "Subject Property", v.Tooltip(got).Title)

	_, ok = fr.HitTest(1, 1)
	assert.False(t, ok)
}

func TestHitTestPrefersClosest(t *testing.T) {
	fr := Frame{Markers: []Marker{
		{Listing: listings.Listing{ID: 1}, X: 100, Y: 100, Radius: 10},
		{Listing: listings.Listing{ID: 2}, X: 108, Y: 100, Radius: 10},
	}}
	m, ok := fr.HitTest(101, 100)
	require.True(t, ok)
	assert.Equal(t, 1, m.Listing.ID)

	m, ok = fr.HitTest(104, 100)
	require.True(t, ok)
	assert.Equal(t, 2, m.Listing.ID, "ties go to the marker drawn last")
}

func TestImageMatchesChartSize(t *testing.T) {
	img, fr, err := Image(NewPriceChangeView(640, 360))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 360+priceLegendHeight, img.Bounds().Dy())
	assert.Equal(t, img.Bounds().Dy(), fr.Height)
}

func TestConcurrentRendersShareNothing(t *testing.T) {
	views := []View{
		NewPriceChangeView(600, 320),
		NewLandPriceView(600, 280, DefaultToggles()),
	}
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		for _, v := range views {
			wg.Add(1)
			go func(v View, f Format) {
				defer wg.Done()
				fr, err := Render(v, f, io.Discard)
				if err == nil && len(fr.Markers) == 0 {
					err = assert.AnError
				}
				errs <- err
			}(v, []Format{FormatPNG, FormatSVG}[i%2])
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
