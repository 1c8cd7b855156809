package valueobjects

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AllotmentYear is the numeric allotment year of an officer.
// A year that could not be parsed is missing and never equals another year.
type AllotmentYear struct {
	value float64
	valid bool
}

// NewAllotmentYear creates a present year
func NewAllotmentYear(year float64) AllotmentYear {
	return AllotmentYear{value: year, valid: true}
}

// MissingAllotmentYear returns the missing year
func MissingAllotmentYear() AllotmentYear {
	return AllotmentYear{}
}

// ParseAllotmentYear coerces raw text to a year; non-numeric text is missing.
func ParseAllotmentYear(raw string) AllotmentYear {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AllotmentYear{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return AllotmentYear{}
	}
	return AllotmentYear{value: v, valid: true}
}

// Value returns the numeric year and whether it is present
func (y AllotmentYear) Value() (float64, bool) {
	return y.value, y.valid
}

// IsMissing reports whether the year is absent
func (y AllotmentYear) IsMissing() bool {
	return !y.valid
}

// Equals compares two present years
func (y AllotmentYear) Equals(other AllotmentYear) bool {
	return y.valid && other.valid && y.value == other.value
}

// String renders whole years without a fractional part
func (y AllotmentYear) String() string {
	if !y.valid {
		return ""
	}
	if y.value == math.Trunc(y.value) {
		return strconv.FormatInt(int64(y.value), 10)
	}
	return strconv.FormatFloat(y.value, 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler
func (y AllotmentYear) MarshalJSON() ([]byte, error) {
	if !y.valid {
		return []byte("null"), nil
	}
	return json.Marshal(y.value)
}
