package main

import (
	"image"
	"testing"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/config"
)

func newTestState(t *testing.T) *uiState {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	s := newUIState(config.Default())
	s.widthOverride = 900
	s.land = newChartPane("land-price")
	s.price = newChartPane("price-change")
	return s
}

func TestRedrawCharts_FillsFrames(t *testing.T) {
	s := newTestState(t)
	redrawCharts(s)
	if n := len(s.land.frame.Markers); n != 24 {
		t.Fatalf("land markers %d want 24", n)
	}
	if s.land.frame.Trend == nil || s.land.frame.Reference == nil {
		t.Fatalf("land overlays missing: %+v", s.land.frame)
	}
	if n := len(s.price.frame.Markers); n != 48 {
		t.Fatalf("price markers %d want 48", n)
	}
	if b := s.land.img.Image.Bounds(); b.Dx() != 900 {
		t.Fatalf("land image width %d want 900", b.Dx())
	}
}

func TestSetToggles_RedrawsLandOnly(t *testing.T) {
	s := newTestState(t)
	redrawCharts(s)
	priceImg := s.price.img.Image

	s.setToggles(charts.Toggles{ShowSubject: false, ShowTrendline: true})
	if n := len(s.land.frame.Markers); n != 23 {
		t.Fatalf("hiding the subject should leave 23 markers, got %d", n)
	}
	if s.land.frame.Reference != nil {
		t.Fatalf("reference line should be hidden with the subject")
	}
	if s.land.frame.Trend == nil {
		t.Fatalf("trend should stay visible")
	}
	if s.price.img.Image != priceImg {
		t.Fatalf("price chart should not be redrawn by land toggles")
	}

	s.setToggles(charts.Toggles{ShowSubject: false, ShowTrendline: false})
	if s.land.frame.Trend != nil {
		t.Fatalf("trend should be hidden")
	}
}

func TestHoverOverlay_PicksMarkerThroughContainScaling(t *testing.T) {
	s := newTestState(t)
	redrawCharts(s)

	var subject charts.Marker
	for _, m := range s.land.frame.Markers {
		if m.Kind == charts.MarkerSubject {
			subject = m
		}
	}
	if subject.Listing.ID != 1 {
		t.Fatalf("subject marker not found")
	}

	b := s.land.img.Image.Bounds()
	// view twice as wide as the image: scale 1, image centred horizontally
	size := fyne.NewSize(float32(2*b.Dx()), float32(b.Dy()))
	pos := fyne.NewPos(float32(b.Dx())/2+float32(subject.X), float32(subject.Y))
	m, _, ok := s.land.overlay.pick(pos, size)
	if !ok || m.Kind != charts.MarkerSubject {
		t.Fatalf("expected subject under cursor, got ok=%v %+v", ok, m)
	}
	if tip := s.land.view.Tooltip(m); tip.Title != "Subject Property" {
		t.Fatalf("tooltip title %q", tip.Title)
	}

	// letterbox area is outside the image
	if _, _, ok := s.land.overlay.pick(fyne.NewPos(2, 2), size); ok {
		t.Fatalf("letterbox must not pick a marker")
	}
}

func TestDrawHint_KeepsSize(t *testing.T) {
	img := drawHint(blank(320, 120), "chart unavailable")
	if img.Bounds() != image.Rect(0, 0, 320, 120) {
		t.Fatalf("bounds changed: %v", img.Bounds())
	}
	if drawHint(img, "  ") != img {
		t.Fatalf("empty hint should return the input")
	}
}
