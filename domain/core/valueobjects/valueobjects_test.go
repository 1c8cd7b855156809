package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllotmentYear(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		missing bool
	}{
		{raw: "1998", want: "1998"},
		{raw: " 2001 ", want: "2001"},
		{raw: "1998.0", want: "1998"},
		{raw: "Unknown", missing: true},
		{raw: "", missing: true},
		{raw: "NaN", missing: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			year := ParseAllotmentYear(tt.raw)
			assert.Equal(t, tt.missing, year.IsMissing())
			assert.Equal(t, tt.want, year.String())
		})
	}
}

func TestAllotmentYear_Equals(t *testing.T) {
	assert.True(t, NewAllotmentYear(1998).Equals(ParseAllotmentYear("1998")))
	assert.False(t, NewAllotmentYear(1998).Equals(NewAllotmentYear(1999)))
	assert.False(t, MissingAllotmentYear().Equals(MissingAllotmentYear()), "missing years never match")
}

func TestParsePeriodDate(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		day   string
		valid bool
	}{
		{name: "day", raw: "2003-01-01", day: "2003-01-01", valid: true},
		{name: "timestamp", raw: "2003-01-01T10:30:00", day: "2003-01-01", valid: true},
		{name: "rfc3339", raw: "2003-01-01T23:30:00Z", day: "2003-01-01", valid: true},
		{name: "offset ahead of utc", raw: "2003-01-01T01:00:00+05:30", day: "2003-01-01", valid: true},
		{name: "offset behind utc", raw: "2004-12-31T22:00:00-05:00", day: "2004-12-31", valid: true},
		{name: "day first", raw: "15/08/1999", day: "1999-08-15", valid: true},
		{name: "unparseable", raw: "Till date", valid: false},
		{name: "empty", raw: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParsePeriodDate(tt.raw)
			assert.Equal(t, tt.valid, d.Valid())
			assert.Equal(t, tt.day, d.Day())
			assert.Equal(t, tt.raw, d.Raw())
		})
	}
}

func TestPeriodDate_MarshalJSON(t *testing.T) {
	data, err := ParsePeriodDate("2003-01-01T10:30:00").MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"2003-01-01"`, string(data))

	data, err = ParsePeriodDate("Till date").MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"Till date"`, string(data))

	data, err = ParsePeriodDate("").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestPeriodDate_TimeKeepsOffset(t *testing.T) {
	ist := ParsePeriodDate("2003-01-01T01:00:00+05:30")
	utc := ParsePeriodDate("2002-12-31T19:30:00Z")

	a, ok := ist.Time()
	require.True(t, ok)
	b, ok := utc.Time()
	require.True(t, ok)

	assert.True(t, a.Equal(b), "same instant")
	assert.Equal(t, "2003-01-01", ist.Day())
	assert.Equal(t, "2002-12-31", utc.Day())
}

func TestLaterEarlier(t *testing.T) {
	a := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, b, Later(a, b))
	assert.Equal(t, b, Later(b, a))
	assert.Equal(t, a, Earlier(a, b))
	assert.Equal(t, a, Earlier(b, a))
}

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		raw     string
		want    Attribute
		wantErr bool
	}{
		{raw: "", want: AttributeAllotmentYear},
		{raw: "allotment_year", want: AttributeAllotmentYear},
		{raw: "Allotment Year", want: AttributeAllotmentYear},
		{raw: "domicile_place", want: AttributeDomicilePlace},
		{raw: "Place of Domicile", want: AttributeDomicilePlace},
		{raw: "cadre", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAttribute(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "Allotment Year", AttributeAllotmentYear.Label())
	assert.Equal(t, "Place of Domicile", AttributeDomicilePlace.Label())
}
