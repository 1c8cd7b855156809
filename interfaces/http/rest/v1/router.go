package v1

import (
	"net/http"

	"careergraph/interfaces/http/rest/handlers"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the v1 API handlers
type Handlers struct {
	Dataset    *handlers.DatasetHandler
	Officers   *handlers.OfficerHandler
	Overlaps   *handlers.OverlapHandler
	Similarity *handlers.SimilarityHandler
}

// NewRouter creates the v1 API router. queryLimit guards the endpoints that
// reach the graph backend or run a layout.
func NewRouter(h Handlers, queryLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/dataset", func(r chi.Router) {
		r.Get("/", h.Dataset.Report)
		r.With(queryLimit).Post("/reload", h.Dataset.Reload)
	})

	r.Route("/officers", func(r chi.Router) {
		r.Get("/", h.Officers.ListOfficers)
		r.Get("/names", h.Officers.ListNames)
		r.Get("/names/{name}", h.Officers.GetOfficerByName)
		r.Get("/{identityNo}", h.Officers.GetOfficer)

		r.Group(func(r chi.Router) {
			r.Use(queryLimit)
			r.Get("/{identityNo}/experiences/{index}/colleagues", h.Overlaps.ExperienceColleagues)
			r.Get("/{identityNo}/similar", h.Similarity.SimilarOfficers)
		})
	})

	r.With(queryLimit).Get("/overlaps", h.Overlaps.FindOverlaps)

	return r
}
