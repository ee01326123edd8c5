package charts

import (
	"sync"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// defaultFont parses the bundled font once. go-chart's own lazy load is not safe for
// concurrent renders.
var defaultFont = sync.OnceValues(chart.GetDefaultFont)

// textStyle sets font, size and color on r. Elements receive the chart font through
// defaults; fall back to the library's bundled font when it is unset.
func textStyle(r chart.Renderer, defaults chart.Style, size float64, c drawing.Color) {
	font := defaults.Font
	if font == nil {
		font, _ = defaultFont()
	}
	if font != nil {
		r.SetFont(font)
	}
	r.SetFontSize(size)
	r.SetFontColor(c)
}

// drawText writes s with its baseline at y and returns the x just past it.
func drawText(r chart.Renderer, defaults chart.Style, s string, x, y int, size float64, c drawing.Color) int {
	textStyle(r, defaults, size, c)
	r.Text(s, x, y)
	return x + r.MeasureText(s).Width()
}
