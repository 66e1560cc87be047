package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/ingest"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

type PropertiesDeps struct {
	Rightmove *rightmove.Client
	Ingestor  *ingest.Ingestor
}

type PropertiesRequest struct {
	URLs    []string `json:"urls"`
	Persist bool     `json:"persist,omitempty"`
}

// RegisterProperties scrapes a batch of detail-page URLs. URLs that
// are not listing pages or fail to decode are simply absent from the
// response.
func RegisterProperties(r chi.Router, d PropertiesDeps) {
	r.Post("/properties", func(w http.ResponseWriter, req *http.Request) {
		var body PropertiesRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if len(body.URLs) == 0 {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "urls_required"})
			return
		}

		properties := d.Rightmove.ScrapeURLs(req.Context(), body.URLs)
		located := geo.Wrap(properties)
		if body.Persist {
			persistRecords(req.Context(), d.Ingestor, located)
		}

		render.JSON(w, req, map[string]any{
			"ok":         true,
			"requested":  len(body.URLs),
			"count":      len(located),
			"properties": located,
		})
	})
}
