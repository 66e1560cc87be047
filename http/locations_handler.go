package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

type LocationsDeps struct {
	Rightmove *rightmove.Client
}

// RegisterLocations exposes the typeahead resolver: free-text
// location name in, ranked location identifiers out.
func RegisterLocations(r chi.Router, d LocationsDeps) {
	r.Get("/locations", func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query().Get("query")
		if query == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "query_required"})
			return
		}
		ids, err := d.Rightmove.FindLocations(req.Context(), query)
		if err != nil {
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
			return
		}
		render.JSON(w, req, map[string]any{
			"ok":        true,
			"query":     query,
			"count":     len(ids),
			"locations": ids,
		})
	})
}
