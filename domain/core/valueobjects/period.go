package valueobjects

import (
	"encoding/json"
	"strings"
	"time"
)

// DayLayout is the day-precision layout used for overlap windows
const DayLayout = "2006-01-02"

var periodLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DayLayout,
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// PeriodDate is an experience boundary date. The raw text is kept so that
// entries with unparseable dates can still be displayed.
type PeriodDate struct {
	raw string
	t   time.Time
	ok  bool
}

// ParsePeriodDate parses the first matching layout; failures keep only the raw text.
// A timestamp keeps its own offset so that Day reports the date as written.
func ParsePeriodDate(raw string) PeriodDate {
	raw = strings.TrimSpace(raw)
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return PeriodDate{raw: raw, t: t, ok: true}
		}
	}
	return PeriodDate{raw: raw}
}

// Raw returns the text as read from the dataset
func (d PeriodDate) Raw() string {
	return d.raw
}

// Time returns the parsed instant and whether parsing succeeded
func (d PeriodDate) Time() (time.Time, bool) {
	return d.t, d.ok
}

// Valid reports whether the date was parsed
func (d PeriodDate) Valid() bool {
	return d.ok
}

// Day truncates to day precision, dropping any time of day
func (d PeriodDate) Day() string {
	if !d.ok {
		return ""
	}
	return d.t.Format(DayLayout)
}

// MarshalJSON implements json.Marshaler
func (d PeriodDate) MarshalJSON() ([]byte, error) {
	if d.ok {
		return json.Marshal(d.Day())
	}
	if d.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.raw)
}

// Later returns the later of two parsed dates
func Later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// Earlier returns the earlier of two parsed dates
func Earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
