// Package charts composes the price-change and land-price scatter charts on top of
// go-chart. The library lays out the canvas, axes and tick labels; everything inside the
// plot area (grid, markers, connecting segments, trend line, band) is drawn by custom
// series that receive the plot rectangle and axis ranges from the library each render.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lutogin/listingcharts/src/geometry"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/logging"
	"github.com/lutogin/listingcharts/src/overlay"
)

// Format selects the output encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts png or svg in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unknown chart format %q", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// MarkerKind tells which marker of a record was drawn.
type MarkerKind int

const (
	MarkerOriginal MarkerKind = iota
	MarkerCurrent
	MarkerComparable
	MarkerSubject
)

// Marker is a drawn point in image pixel space.
type Marker struct {
	Listing listings.Listing
	Kind    MarkerKind
	X, Y    float64
	Radius  float64
}

// Frame is what one render produced: the geometry the library reported and every
// overlay element actually drawn. It is rebuilt from scratch on each Render.
type Frame struct {
	Width, Height int
	Geometry      geometry.PlotGeometry
	Markers       []Marker
	Segments      []overlay.Segment
	Trend         *overlay.Trend
	Reference     *overlay.Segment
}

// hoverSlop widens the hit circle so small markers are easy to pick.
const hoverSlop = 3.0

// HitTest returns the marker under (x, y). Later markers are drawn on top, so on overlap
// the closest of the topmost candidates wins.
func (f Frame) HitTest(x, y float64) (Marker, bool) {
	best := -1
	bestD := math.MaxFloat64
	for i := len(f.Markers) - 1; i >= 0; i-- {
		m := f.Markers[i]
		d := math.Hypot(m.X-x, m.Y-y)
		if d <= m.Radius+hoverSlop && d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return Marker{}, false
	}
	return f.Markers[best], true
}

// View is one chart: it builds the go-chart definition for a frame and knows how to
// describe a hovered marker.
type View interface {
	Name() string
	Chart(f *Frame) chart.Chart
	Tooltip(m Marker) Tooltip
}

// Render draws v in the given format and returns the frame it produced.
func Render(v View, format Format, w io.Writer) (Frame, error) {
	defer logging.TimeTrack(time.Now(), "render "+v.Name())
	font, err := defaultFont()
	if err != nil {
		return Frame{}, fmt.Errorf("load chart font: %w", err)
	}
	var fr Frame
	c := v.Chart(&fr)
	c.Font = font
	fr.Width, fr.Height = c.Width, c.Height
	var rp chart.RendererProvider = chart.PNG
	if format == FormatSVG {
		rp = chart.SVG
	}
	if err := c.Render(rp, w); err != nil {
		return Frame{}, fmt.Errorf("render %s chart: %w", v.Name(), err)
	}
	logging.Debugf("[charts] %s: markers=%d segments=%d trend=%t reference=%t",
		v.Name(), len(fr.Markers), len(fr.Segments), fr.Trend != nil, fr.Reference != nil)
	return fr, nil
}

// Image renders v as PNG and decodes it for display.
func Image(v View) (image.Image, Frame, error) {
	var buf bytes.Buffer
	fr, err := Render(v, FormatPNG, &buf)
	if err != nil {
		return nil, Frame{}, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, Frame{}, fmt.Errorf("decode %s chart: %w", v.Name(), err)
	}
	return img, fr, nil
}
