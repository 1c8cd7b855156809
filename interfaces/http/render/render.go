// Package render writes the dashboard pages. Graph data is embedded as JSON
// and drawn client-side with vis-network.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"careergraph/application/queries"
	"careergraph/domain/core/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ColleaguesPage is the career viewer for one selected experience
type ColleaguesPage struct {
	Title      string
	Officer    *entities.Officer
	Fields     []queries.DetailField
	Experience entities.Experience
	Message    string
	Rows       []entities.OverlapRow
	Graph      *queries.GraphData
}

// NewColleaguesPage assembles the page from the officer detail and the colleagues result
func NewColleaguesPage(detail *queries.OfficerDetail, result *queries.ExperienceColleaguesResult) ColleaguesPage {
	page := ColleaguesPage{
		Title:      fmt.Sprintf("%s - colleagues", result.Name),
		Officer:    detail.Officer,
		Fields:     detail.Fields,
		Experience: result.Experience,
		Message:    result.Message,
		Rows:       result.Rows,
		Graph:      result.Graph,
	}
	if result.Skipped {
		page.Graph = nil
		page.Message = "This experience has no inferred ministry."
	}
	return page
}

// SimilarityPage is the similarity dashboard for one officer
type SimilarityPage struct {
	Title          string
	AttributeLabel string
	Value          string
	Stats          queries.GraphStats
	Graph          *queries.GraphData
}

// NewSimilarityPage assembles the page from a similarity result
func NewSimilarityPage(result *queries.SimilarOfficersResult) SimilarityPage {
	page := SimilarityPage{
		Title:          fmt.Sprintf("Officers sharing %s with %s", result.AttributeLabel, result.Name),
		AttributeLabel: result.AttributeLabel,
		Graph:          result.Graph,
	}
	if result.Value != nil {
		page.Value = *result.Value
	}
	if result.Graph != nil {
		page.Stats = result.Graph.Stats
	}
	return page
}

// Colleagues writes the career viewer page
func Colleagues(w io.Writer, page ColleaguesPage) error {
	return pages.ExecuteTemplate(w, "colleagues", page)
}

// Similarity writes the similarity dashboard page
func Similarity(w io.Writer, page SimilarityPage) error {
	return pages.ExecuteTemplate(w, "similarity", page)
}
