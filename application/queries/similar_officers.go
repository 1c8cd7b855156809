package queries

import (
	"careergraph/pkg/utils"
)

// SimilarOfficersQuery builds the similarity graph around one officer
type SimilarOfficersQuery struct {
	IdentityNo string `json:"identity_no" validate:"required"`
	Attribute  string `json:"attribute" validate:"attribute"`
}

// Validate validates the query
func (q SimilarOfficersQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// SimilarOfficersResult is the similarity graph with its selection
type SimilarOfficersResult struct {
	IdentityNo     string     `json:"identity_no"`
	Name           string     `json:"name"`
	Attribute      string     `json:"attribute"`
	AttributeLabel string     `json:"attribute_label"`
	Value          *string    `json:"value"`
	Graph          *GraphData `json:"graph"`
}
