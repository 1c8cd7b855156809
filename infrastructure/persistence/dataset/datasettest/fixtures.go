// Package datasettest builds small career datasets for tests.
package datasettest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"careergraph/domain/config"
	"careergraph/infrastructure/persistence/dataset"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Header is the column order written by CSV
var Header = []string{
	dataset.ColumnIdentityNo,
	dataset.ColumnName,
	dataset.ColumnYear,
	dataset.ColumnDomicile,
	dataset.ColumnEducation,
	dataset.ColumnExperience,
}

// Posting is one experience entry. An empty Inferred writes a null inferred ministry.
type Posting struct {
	Designation string
	Ministry    string
	Inferred    string
	From        string
	To          string
}

// Officer is one dataset row
type Officer struct {
	IdentityNo string
	Name       string
	Year       string
	Domicile   string
	Education  string
	Postings   []Posting

	// RawExperience overrides the experience cell when set
	RawExperience string
}

// Row returns the cells of o in Header order
func (o Officer) Row() []string {
	experience := o.RawExperience
	if experience == "" {
		experience = ExperienceJSON(o.Postings...)
	}
	education := o.Education
	if education == "" {
		education = `[{"degree":"BA","institute":"Delhi University","subject":"History","division":"I"}]`
	}
	return []string{o.IdentityNo, o.Name, o.Year, o.Domicile, education, experience}
}

// ExperienceJSON encodes postings the way the dataset stores them
func ExperienceJSON(postings ...Posting) string {
	type inferred struct {
		Ministry string `json:"ministry"`
	}
	type entry struct {
		Designation      string    `json:"designation"`
		Level            string    `json:"level"`
		Organisation     string    `json:"organisation"`
		ExperienceMajor  string    `json:"experience_major"`
		ExperienceMinor  string    `json:"experience_minor"`
		Ministry         string    `json:"ministry"`
		InferredMinistry *inferred `json:"inferred_ministry"`
		PeriodFrom       string    `json:"period_from"`
		PeriodTo         string    `json:"period_to"`
	}

	entries := make([]entry, 0, len(postings))
	for _, p := range postings {
		e := entry{
			Designation:  p.Designation,
			Level:        "Secretary",
			Organisation: "Government of India",
			Ministry:     p.Ministry,
			PeriodFrom:   p.From,
			PeriodTo:     p.To,
		}
		if p.Inferred != "" {
			e.InferredMinistry = &inferred{Ministry: p.Inferred}
		}
		entries = append(entries, e)
	}
	data, _ := json.Marshal(entries)
	return string(data)
}

// CSV renders a dataset with the standard header
func CSV(officers ...Officer) string {
	rows := make([][]string, 0, len(officers))
	for _, o := range officers {
		rows = append(rows, o.Row())
	}
	return Table(Header, rows...)
}

// Table renders arbitrary rows under header
func Table(header []string, rows ...[]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	return buf.String()
}

// Snapshot parses officers into a snapshot
func Snapshot(t testing.TB, officers ...Officer) *dataset.Snapshot {
	t.Helper()
	snap, err := dataset.Parse(strings.NewReader(CSV(officers...)), "fixture.csv", config.DefaultDomainConfig())
	require.NoError(t, err)
	return snap
}

// Store serves officers from a fixed snapshot
func Store(t testing.TB, officers ...Officer) *dataset.Store {
	t.Helper()
	return dataset.NewStoreFromSnapshot(Snapshot(t, officers...), zap.NewNop())
}

// FinanceOfficers is the two-officer overlap example: A at Finance from 2001
// to 2005 and B at Finance from 2003 to 2007.
func FinanceOfficers() []Officer {
	return []Officer{
		{
			IdentityNo: "IAS-001",
			Name:       "A",
			Year:       "1998",
			Domicile:   "Kerala",
			Postings: []Posting{
				{Designation: "Joint Secretary", Ministry: "Ministry of Finance", Inferred: "Finance", From: "2001-01-01", To: "2005-01-01"},
			},
		},
		{
			IdentityNo: "IAS-002",
			Name:       "B",
			Year:       "1998",
			Domicile:   "Punjab",
			Postings: []Posting{
				{Designation: "Director", Ministry: "Ministry of Finance", Inferred: "Finance", From: "2003-01-01", To: "2007-01-01"},
			},
		},
	}
}
