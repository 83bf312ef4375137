package cleaner

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// dateFormats lists the accepted order_date layouts, tried in order.
// ISO first so that "2025-09-01" never matches the day-first layouts.
var dateFormats = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"02/01/2006",
}

// ParseOrderDate parses an order_date under the accepted input formats
// and returns it as a calendar date. Timestamps from exports that append
// a time portion are accepted and truncated to the date.
func ParseOrderDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return civil.DateOf(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return civil.DateOf(t), nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return civil.DateOf(t), nil
	}
	return civil.Date{}, fmt.Errorf("unrecognized date %q", s)
}
