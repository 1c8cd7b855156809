package valueobjects

import (
	"fmt"
	"strings"
)

// Attribute names an officer field that the similarity graph can group on
type Attribute string

const (
	AttributeAllotmentYear Attribute = "allotment_year"
	AttributeDomicilePlace Attribute = "domicile_place"
)

// Label returns the dataset column name for the attribute
func (a Attribute) Label() string {
	switch a {
	case AttributeAllotmentYear:
		return "Allotment Year"
	case AttributeDomicilePlace:
		return "Place of Domicile"
	default:
		return string(a)
	}
}

// ParseAttribute accepts the enum value or its column label
func ParseAttribute(s string) (Attribute, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allotment_year", "allotment year":
		return AttributeAllotmentYear, nil
	case "domicile_place", "place of domicile", "domicile":
		return AttributeDomicilePlace, nil
	default:
		return "", fmt.Errorf("unknown attribute %q", s)
	}
}
