package queries

import (
	"careergraph/domain/core/entities"
	"careergraph/pkg/common"
	"careergraph/pkg/utils"
)

// GetOfficerQuery fetches one officer with education and experience
type GetOfficerQuery struct {
	IdentityNo string `json:"identity_no" validate:"required"`
}

// Validate validates the query
func (q GetOfficerQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// OfficerDetail is the detail view of one officer
type OfficerDetail struct {
	*entities.Officer
	Fields []DetailField `json:"fields"`
}

// DetailField is one labelled value of the detail panel
type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GetOfficerByNameQuery fetches the first officer, in load order, with a name
type GetOfficerByNameQuery struct {
	Name string `json:"name" validate:"required,max=256"`
}

// Validate validates the query
func (q GetOfficerByNameQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ListOfficersQuery lists identity/name options, optionally filtered by name
type ListOfficersQuery struct {
	Name       string `json:"name" validate:"max=256"`
	Pagination common.PaginationParams
}

// Validate validates the query
func (q ListOfficersQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// OfficerOption is a dropdown entry
type OfficerOption struct {
	IdentityNo string `json:"identity_no"`
	Name       string `json:"name"`
	Label      string `json:"label"`
}

// ListOfficersResult is one page of options
type ListOfficersResult struct {
	Officers   []OfficerOption        `json:"officers"`
	Pagination *common.PaginationInfo `json:"pagination"`
}

// ListNamesQuery lists unique names in load order
type ListNamesQuery struct{}

// Validate validates the query
func (q ListNamesQuery) Validate() error {
	return nil
}

// DatasetReportQuery returns the cleaning report of the loaded dataset
type DatasetReportQuery struct{}

// Validate validates the query
func (q DatasetReportQuery) Validate() error {
	return nil
}
