package entities

import (
	"careergraph/domain/core/valueobjects"
)

// Officer is one row of the career dataset. Officers are created once at
// load time and must be treated as read-only afterwards.
type Officer struct {
	IdentityNo    string                     `json:"identity_no"`
	Name          string                     `json:"name"`
	AllotmentYear valueobjects.AllotmentYear `json:"allotment_year"`
	Domicile      string                     `json:"place_of_domicile"`
	Education     []Education                `json:"education"`
	Experience    []Experience               `json:"experience"`

	// Warnings holds per-record problems, such as malformed nested JSON,
	// that degrade the view without failing the load.
	Warnings []string `json:"warnings,omitempty"`
}

// Education is one qualification held by an officer
type Education struct {
	Degree    string `json:"degree"`
	Institute string `json:"institute"`
	Subject   string `json:"subject"`
	Division  string `json:"division"`
}

// InferredMinistry is the resolved ministry attached to an experience entry
type InferredMinistry struct {
	Ministry string `json:"ministry"`
}

// Experience is one posting held by an officer
type Experience struct {
	Designation      string                  `json:"designation"`
	Level            string                  `json:"level"`
	Organisation     string                  `json:"organisation"`
	ExperienceMajor  string                  `json:"experience_major"`
	ExperienceMinor  string                  `json:"experience_minor"`
	Ministry         string                  `json:"ministry"`
	InferredMinistry *InferredMinistry       `json:"inferred_ministry"`
	PeriodFrom       valueobjects.PeriodDate `json:"period_from"`
	PeriodTo         valueobjects.PeriodDate `json:"period_to"`
}

// ResolvedMinistry returns the inferred ministry name, if any
func (e Experience) ResolvedMinistry() (string, bool) {
	if e.InferredMinistry == nil || e.InferredMinistry.Ministry == "" {
		return "", false
	}
	return e.InferredMinistry.Ministry, true
}

// AttributeValue returns the normalized value of attr and whether it can match
func (o *Officer) AttributeValue(attr valueobjects.Attribute) (string, bool) {
	switch attr {
	case valueobjects.AttributeAllotmentYear:
		if o.AllotmentYear.IsMissing() {
			return "", false
		}
		return o.AllotmentYear.String(), true
	case valueobjects.AttributeDomicilePlace:
		return o.Domicile, true
	default:
		return "", false
	}
}

// SharesAttribute reports whether both officers hold the same value for attr
func (o *Officer) SharesAttribute(other *Officer, attr valueobjects.Attribute) bool {
	if attr == valueobjects.AttributeAllotmentYear {
		return o.AllotmentYear.Equals(other.AllotmentYear)
	}
	a, okA := o.AttributeValue(attr)
	b, okB := other.AttributeValue(attr)
	return okA && okB && a == b
}

// ExperienceAt returns the experience at index
func (o *Officer) ExperienceAt(index int) (Experience, bool) {
	if index < 0 || index >= len(o.Experience) {
		return Experience{}, false
	}
	return o.Experience[index], true
}
