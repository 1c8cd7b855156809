package queries

import (
	"careergraph/domain/core/entities"
	"careergraph/pkg/utils"
)

// NoResultsMessage is shown when a query matches nothing
const NoResultsMessage = "No results found."

// ExperienceColleaguesQuery finds colleagues for one experience of an officer
type ExperienceColleaguesQuery struct {
	IdentityNo      string `json:"identity_no" validate:"required"`
	ExperienceIndex int    `json:"experience_index" validate:"min=0"`
}

// Validate validates the query
func (q ExperienceColleaguesQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// ExperienceColleaguesResult describes the colleagues of one experience.
// Skipped is set when the experience has no inferred ministry and nothing was queried.
type ExperienceColleaguesResult struct {
	IdentityNo string                `json:"identity_no"`
	Name       string                `json:"name"`
	Experience entities.Experience   `json:"experience"`
	Skipped    bool                  `json:"skipped"`
	NoResults  bool                  `json:"no_results"`
	Message    string                `json:"message,omitempty"`
	Rows       []entities.OverlapRow `json:"rows"`
	Graph      *GraphData            `json:"graph,omitempty"`
}
