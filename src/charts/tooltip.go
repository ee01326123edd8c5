package charts

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/palette"
)

// TooltipLine is one "Label: value" row.
type TooltipLine struct {
	Label string
	Value string
}

func (l TooltipLine) String() string { return l.Label + ": " + l.Value }

// Tooltip is the summary panel shown for a hovered marker.
type Tooltip struct {
	Title      string
	TitleColor drawing.Color
	Lines      []TooltipLine
	// Note is a muted trailing line; empty means omitted.
	Note string
}

// Text returns the panel as plain lines, title first.
func (t Tooltip) Text() []string {
	out := make([]string, 0, len(t.Lines)+2)
	out = append(out, t.Title)
	for _, l := range t.Lines {
		out = append(out, l.String())
	}
	if t.Note != "" {
		out = append(out, t.Note)
	}
	return out
}

func (t Tooltip) String() string { return strings.Join(t.Text(), "\n") }

// PriceChangeTooltip summarizes a listing for the price-change chart. The price change
// line is dropped when the price did not move.
func PriceChangeTooltip(l listings.Listing) Tooltip {
	t := Tooltip{
		Title:      l.Status.Label() + " Listing",
		TitleColor: palette.ColorByStatus(l.Status),
		Lines: []TooltipLine{
			{"Days on market", formatNumber(l.Days)},
			{"Original price", FormatPrice(l.OriginalPrice)},
			{"Current price", FormatPrice(l.CurrentPrice)},
		},
	}
	if d := l.PriceChange(); d != 0 {
		t.Note = "Price change: " + FormatDelta(d, l.OriginalPrice)
	}
	return t
}

// LandPriceTooltip summarizes a listing for the land-price chart.
func LandPriceTooltip(l listings.Listing) Tooltip {
	t := Tooltip{
		Lines: []TooltipLine{
			{"Acres", formatAcres(l.Acres)},
			{"Price", FormatPrice(l.Price)},
			{"Price per acre", FormatDollars(l.PricePerAcre())},
		},
	}
	switch {
	case l.IsSubject:
		t.Title, t.TitleColor = "Subject Property", palette.SubjectBorder
	case l.Status.Known():
		t.Title, t.TitleColor = l.Status.Label()+" Listing", palette.ColorByStatus(l.Status)
	default:
		t.Title, t.TitleColor = "Comparable Property", palette.Neutral
	}
	return t
}
