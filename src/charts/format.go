package charts

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var grouping = message.NewPrinter(language.English)

// FormatPrice renders axis/tooltip prices: $1.09M from one million up, $920K below.
// Negative values carry the sign before the dollar.
func FormatPrice(v float64) string {
	if v < 0 {
		return "-" + FormatPrice(-v)
	}
	if v >= 1_000_000 {
		return fmt.Sprintf("$%.2fM", v/1_000_000)
	}
	return fmt.Sprintf("$%.0fK", v/1000)
}

// FormatDelta renders a signed change against a base, e.g. "+$100K (+10.0%)".
// Zero deltas have no sign.
func FormatDelta(delta, base float64) string {
	sign := ""
	if delta > 0 {
		sign = "+"
	}
	pct := 0.0
	if base != 0 {
		pct = delta / base * 100
	}
	return fmt.Sprintf("%s%s (%s%.1f%%)", sign, FormatPrice(delta), sign, pct)
}

// FormatDollars renders a rounded dollar amount with thousands separators: $26,842,105.
func FormatDollars(v float64) string {
	return grouping.Sprintf("$%d", int64(math.Round(v)))
}

// formatNumber prints v without trailing zeros (3, 0.5, 38).
func formatNumber(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// formatAcres keeps three decimals like the axis ticks.
func formatAcres(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
