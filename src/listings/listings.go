// Package listings holds the fixed comparable-listing dataset rendered by both charts.
//
// The table is a hand-authored constant. Mock returns a copy so callers can filter
// or reorder freely without touching the shared rows.
package listings

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the listing status category used for colors and labels.
type Status string

const (
	StatusSold    Status = "sold"
	StatusActive  Status = "active"
	StatusPending Status = "pending"
)

// Known reports whether s is one of the three recognized categories.
func (s Status) Known() bool {
	switch s {
	case StatusSold, StatusActive, StatusPending:
		return true
	}
	return false
}

// Label returns the capitalized status ("Sold") or "Unknown" for empty/unrecognized values.
func (s Status) Label() string {
	if !s.Known() {
		return "Unknown"
	}
	v := string(s)
	return strings.ToUpper(v[:1]) + v[1:]
}

// Listing is one comparable record. Days/OriginalPrice/CurrentPrice feed the price-change
// chart; Acres/Price feed the land-price chart.
type Listing struct {
	ID            int     `json:"id"`
	Status        Status  `json:"listing_status"`
	Days          float64 `json:"days"`
	OriginalPrice float64 `json:"original_price"`
	CurrentPrice  float64 `json:"current_price"`
	Acres         float64 `json:"acres"`
	Price         float64 `json:"price"`
	IsSubject     bool    `json:"is_subject,omitempty"`
}

// PriceChange returns CurrentPrice - OriginalPrice.
func (l Listing) PriceChange() float64 { return l.CurrentPrice - l.OriginalPrice }

// PricePerAcre returns Price / Acres; 0 when acreage is not positive.
func (l Listing) PricePerAcre() float64 {
	if l.Acres <= 0 {
		return 0
	}
	return l.Price / l.Acres
}

var mockListings = [...]Listing{
	// Left edge (day 1-12); id 1 is the subject property for the land chart
	{ID: 1, Days: 3, OriginalPrice: 1_090_000, CurrentPrice: 1_090_000, Status: StatusPending, Acres: 0.038, Price: 1_020_000, IsSubject: true},
	{ID: 2, Days: 5, OriginalPrice: 1_020_000, CurrentPrice: 1_020_000, Status: StatusPending, Acres: 0.024, Price: 850_000},
	{ID: 3, Days: 18, OriginalPrice: 1_000_000, CurrentPrice: 1_030_000, Status: StatusActive, Acres: 0.027, Price: 920_000},
	{ID: 4, Days: 6, OriginalPrice: 970_000, CurrentPrice: 940_000, Status: StatusSold, Acres: 0.025, Price: 760_000},
	{ID: 5, Days: 8, OriginalPrice: 950_000, CurrentPrice: 920_000, Status: StatusSold, Acres: 0.028, Price: 890_000},
	{ID: 6, Days: 11, OriginalPrice: 870_000, CurrentPrice: 840_000, Status: StatusSold, Acres: 0.029, Price: 930_000},

	// Day ~35
	{ID: 7, Days: 38, OriginalPrice: 820_000, CurrentPrice: 790_000, Status: StatusSold, Acres: 0.030, Price: 870_000},

	// Days 72-100
	{ID: 8, Days: 72, OriginalPrice: 1_150_000, CurrentPrice: 1_050_000, Status: StatusPending, Acres: 0.031, Price: 910_000},
	{ID: 9, Days: 78, OriginalPrice: 1_080_000, CurrentPrice: 1_080_000, Status: StatusPending, Acres: 0.033, Price: 950_000},
	{ID: 10, Days: 82, OriginalPrice: 1_080_000, CurrentPrice: 980_000, Status: StatusSold, Acres: 0.034, Price: 830_000},
	{ID: 11, Days: 85, OriginalPrice: 1_000_000, CurrentPrice: 960_000, Status: StatusSold, Acres: 0.035, Price: 1_170_000},
	{ID: 12, Days: 88, OriginalPrice: 980_000, CurrentPrice: 1_000_000, Status: StatusActive, Acres: 0.039, Price: 980_000},
	{ID: 13, Days: 92, OriginalPrice: 960_000, CurrentPrice: 940_000, Status: StatusSold, Acres: 0.044, Price: 1_000_000},
	{ID: 14, Days: 95, OriginalPrice: 940_000, CurrentPrice: 960_000, Status: StatusActive, Acres: 0.045, Price: 1_100_000},

	// Day ~125
	{ID: 15, Days: 125, OriginalPrice: 1_010_000, CurrentPrice: 920_000, Status: StatusSold, Acres: 0.046, Price: 1_040_000},

	// Days 135-155
	{ID: 16, Days: 135, OriginalPrice: 930_000, CurrentPrice: 930_000, Status: StatusPending, Acres: 0.047, Price: 1_080_000},
	{ID: 17, Days: 148, OriginalPrice: 790_000, CurrentPrice: 760_000, Status: StatusSold, Acres: 0.048, Price: 1_020_000},
	{ID: 18, Days: 155, OriginalPrice: 880_000, CurrentPrice: 850_000, Status: StatusSold, Acres: 0.052, Price: 810_000},

	// Day ~170
	{ID: 19, Days: 170, OriginalPrice: 1_000_000, CurrentPrice: 920_000, Status: StatusSold, Acres: 0.057, Price: 1_180_000},

	// Right edge (215-225)
	{ID: 20, Days: 215, OriginalPrice: 990_000, CurrentPrice: 960_000, Status: StatusSold, Acres: 0.024, Price: 850_000},
	{ID: 21, Days: 218, OriginalPrice: 920_000, CurrentPrice: 960_000, Status: StatusActive, Acres: 0.028, Price: 890_000},
	{ID: 22, Days: 220, OriginalPrice: 1_000_000, CurrentPrice: 1_000_000, Status: StatusPending, Acres: 0.032, Price: 940_000},
	{ID: 23, Days: 222, OriginalPrice: 920_000, CurrentPrice: 960_000, Status: StatusActive, Acres: 0.036, Price: 990_000},
	{ID: 24, Days: 225, OriginalPrice: 1_250_000, CurrentPrice: 1_150_000, Status: StatusSold, Acres: 0.042, Price: 1_050_000},
}

// Mock returns a copy of the fixed dataset in its authored order.
func Mock() []Listing {
	out := make([]Listing, len(mockListings))
	copy(out, mockListings[:])
	return out
}

// Subject returns the first record flagged as the subject property.
func Subject(ls []Listing) (Listing, bool) {
	for _, l := range ls {
		if l.IsSubject {
			return l, true
		}
	}
	return Listing{}, false
}

// Comparables returns all non-subject records, preserving order.
func Comparables(ls []Listing) []Listing {
	out := make([]Listing, 0, len(ls))
	for _, l := range ls {
		if !l.IsSubject {
			out = append(out, l)
		}
	}
	return out
}

// CountByStatus tallies records per status; unknown statuses are counted under "".
func CountByStatus(ls []Listing) map[Status]int {
	out := map[Status]int{}
	for _, l := range ls {
		k := l.Status
		if !k.Known() {
			k = ""
		}
		out[k]++
	}
	return out
}

var ErrMultipleSubjects = errors.New("more than one subject listing")

// Validate checks the dataset invariants: unique ids, at most one subject,
// non-negative days and positive prices/acreage.
func Validate(ls []Listing) error {
	seen := make(map[int]struct{}, len(ls))
	subjects := 0
	var errs []error
	for _, l := range ls {
		if _, dup := seen[l.ID]; dup {
			errs = append(errs, fmt.Errorf("listing %d: duplicate id", l.ID))
		}
		seen[l.ID] = struct{}{}
		if l.IsSubject {
			subjects++
		}
		if l.Days < 0 {
			errs = append(errs, fmt.Errorf("listing %d: negative days on market %v", l.ID, l.Days))
		}
		if l.OriginalPrice <= 0 || l.CurrentPrice <= 0 || l.Price <= 0 {
			errs = append(errs, fmt.Errorf("listing %d: prices must be positive", l.ID))
		}
		if l.Acres <= 0 {
			errs = append(errs, fmt.Errorf("listing %d: acreage must be positive", l.ID))
		}
	}
	if subjects > 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrMultipleSubjects, subjects))
	}
	return errors.Join(errs...)
}
