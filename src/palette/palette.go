// Package palette holds the chart colors shared by the renderers, the desktop viewer and the
// HTML host page.
package palette

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lutogin/listingcharts/src/listings"
)

var (
	Sold    = drawing.ColorFromHex("c45850") // muted brownish-red
	Active  = drawing.ColorFromHex("4aba70") // muted green
	Pending = drawing.ColorFromHex("5bc4be") // muted turquoise
	Neutral = drawing.ColorFromHex("6b7280")

	PriceBackground = drawing.ColorFromHex("fafafa")
	LandBackground  = drawing.ColorFromHex("ffffff")
	Grid            = drawing.ColorFromHex("e5e7eb")
	Title           = drawing.ColorFromHex("1e3a8a")
	Text            = drawing.ColorFromHex("4b5563")
	SubjectBorder   = drawing.ColorFromHex("2563eb")
	ConfidenceBand  = drawing.Color{R: 147, G: 197, B: 253, A: 89} // 35% alpha
	Trendline       = drawing.ColorFromHex("d1d5db")
	TooltipBorder   = Grid
	White           = drawing.ColorFromHex("ffffff")
	// zero-valued colors mean "use the default" to go-chart styles, so keep white at 0 alpha
	Transparent = drawing.Color{R: 255, G: 255, B: 255, A: 0}
)

// ColorByStatus returns the marker color for a status; anything unrecognized gets Neutral.
func ColorByStatus(s listings.Status) drawing.Color {
	switch s {
	case listings.StatusSold:
		return Sold
	case listings.StatusActive:
		return Active
	case listings.StatusPending:
		return Pending
	default:
		return Neutral
	}
}

// Hex formats c as #rrggbb, or rgba(...) when it is not fully opaque.
func Hex(c drawing.Color) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, float64(c.A)/255)
}
