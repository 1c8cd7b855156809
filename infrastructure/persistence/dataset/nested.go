package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"careergraph/domain/core/entities"
	"careergraph/domain/core/valueobjects"
)

// text accepts a JSON string, number, bool or null as plain text
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = text(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = text(strconv.FormatBool(b))
		return nil
	}
	return fmt.Errorf("unsupported value %s", string(data))
}

type rawEducation struct {
	Degree    text `json:"degree"`
	Institute text `json:"institute"`
	Subject   text `json:"subject"`
	Division  text `json:"division"`
}

type rawInferredMinistry struct {
	Ministry text `json:"ministry"`
}

type rawExperience struct {
	Designation      text                 `json:"designation"`
	Level            text                 `json:"level"`
	Organisation     text                 `json:"organisation"`
	ExperienceMajor  text                 `json:"experience_major"`
	ExperienceMinor  text                 `json:"experience_minor"`
	Ministry         text                 `json:"ministry"`
	InferredMinistry *rawInferredMinistry `json:"inferred_ministry"`
	PeriodFrom       text                 `json:"period_from"`
	PeriodTo         text                 `json:"period_to"`
}

// isEmptyList reports whether a nested cell carries no list at all
func isEmptyList(cell, missing string) bool {
	cell = strings.TrimSpace(cell)
	return cell == "" || cell == missing
}

func parseEducation(cell, missing string) ([]entities.Education, error) {
	if isEmptyList(cell, missing) {
		return []entities.Education{}, nil
	}
	var raw []rawEducation
	if err := json.Unmarshal([]byte(cell), &raw); err != nil {
		return []entities.Education{}, err
	}
	out := make([]entities.Education, 0, len(raw))
	for _, e := range raw {
		out = append(out, entities.Education{
			Degree:    string(e.Degree),
			Institute: string(e.Institute),
			Subject:   string(e.Subject),
			Division:  string(e.Division),
		})
	}
	return out, nil
}

func parseExperience(cell, missing string) ([]entities.Experience, error) {
	if isEmptyList(cell, missing) {
		return []entities.Experience{}, nil
	}
	var raw []rawExperience
	if err := json.Unmarshal([]byte(cell), &raw); err != nil {
		return []entities.Experience{}, err
	}
	out := make([]entities.Experience, 0, len(raw))
	for _, e := range raw {
		exp := entities.Experience{
			Designation:     string(e.Designation),
			Level:           string(e.Level),
			Organisation:    string(e.Organisation),
			ExperienceMajor: string(e.ExperienceMajor),
			ExperienceMinor: string(e.ExperienceMinor),
			Ministry:        string(e.Ministry),
			PeriodFrom:      valueobjects.ParsePeriodDate(string(e.PeriodFrom)),
			PeriodTo:        valueobjects.ParsePeriodDate(string(e.PeriodTo)),
		}
		if e.InferredMinistry != nil && strings.TrimSpace(string(e.InferredMinistry.Ministry)) != "" {
			exp.InferredMinistry = &entities.InferredMinistry{
				Ministry: strings.TrimSpace(string(e.InferredMinistry.Ministry)),
			}
		}
		out = append(out, exp)
	}
	return out, nil
}

// toRecord builds the record for a row as read. It must run before clean,
// which rewrites the same cell maps.
func toRecord(r row, missing string) *entities.Officer {
	return toOfficer(row{
		cells: r.cells,
		year:  valueobjects.ParseAllotmentYear(r.cells[ColumnYear]),
	}, missing)
}

// toOfficer builds the record for a cleaned row. Malformed nested columns
// leave the list empty and attach a warning.
func toOfficer(r row, missing string) *entities.Officer {
	officer := &entities.Officer{
		IdentityNo:    r.cells[ColumnIdentityNo],
		Name:          r.cells[ColumnName],
		AllotmentYear: r.year,
		Domicile:      r.cells[ColumnDomicile],
	}

	education, err := parseEducation(r.cells[ColumnEducation], missing)
	if err != nil {
		officer.Warnings = append(officer.Warnings, fmt.Sprintf("education qualifications could not be parsed: %v", err))
	}
	officer.Education = education

	experience, err := parseExperience(r.cells[ColumnExperience], missing)
	if err != nil {
		officer.Warnings = append(officer.Warnings, fmt.Sprintf("experience details could not be parsed: %v", err))
	}
	officer.Experience = experience

	return officer
}
