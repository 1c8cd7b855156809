package queries

import (
	"careergraph/domain/core/entities"
	"careergraph/pkg/utils"
)

// FindOverlapsQuery runs the overlap engine with explicit parameters
type FindOverlapsQuery struct {
	SelectedPerson string `json:"person" validate:"required,max=256"`
	MinistryName   string `json:"ministry" validate:"required,max=256"`
	PeriodStart    string `json:"from" validate:"required,perioddate"`
	PeriodEnd      string `json:"to" validate:"required,perioddate"`
}

// Validate validates the query
func (q FindOverlapsQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// FindOverlapsResult holds the matched rows and their graph
type FindOverlapsResult struct {
	Rows      []entities.OverlapRow `json:"rows"`
	NoResults bool                  `json:"no_results"`
	Message   string                `json:"message,omitempty"`
	Graph     *GraphData            `json:"graph"`
}
