package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/ingest"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

type SearchDeps struct {
	Rightmove *rightmove.Client
	Ingestor  *ingest.Ingestor
	// Geo transform configuration; MaxDistanceMiles <= 0 disables
	// the distance cut-off.
	Centre           geo.Point
	MaxDistanceMiles float64
}

type SearchRequest struct {
	// Either a resolved identifier or a free-text query to resolve
	// through the typeahead endpoint.
	LocationIdentifier string `json:"location_identifier,omitempty"`
	Query              string `json:"query,omitempty"`

	Channel  string   `json:"channel,omitempty"` // BUY or RENT
	MaxPrice *int     `json:"max_price,omitempty"`
	Radius   *float64 `json:"radius,omitempty"` // miles
	Persist  bool     `json:"persist,omitempty"`
}

func defFloat(v *float64, d float64) float64 {
	if v == nil {
		return d
	}
	return *v
}
func defInt(v *int, d int) int {
	if v == nil {
		return d
	}
	return *v
}

func RegisterSearch(r chi.Router, d SearchDeps) {
	// POST: JSON body
	r.Post("/search", func(w http.ResponseWriter, req *http.Request) {
		var body SearchRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleSearchRequest(w, req, d, body)
	})

	// GET: query params (compatibility)
	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		var body SearchRequest
		body.LocationIdentifier = q.Get("location_identifier")
		body.Query = q.Get("query")
		body.Channel = q.Get("channel")
		if v := q.Get("max_price"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				body.MaxPrice = &i
			}
		}
		if v := q.Get("radius"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.Radius = &f
			}
		}
		if v := q.Get("persist"); v != "" {
			body.Persist = v == "1" || v == "true"
		}
		handleSearchRequest(w, req, d, body)
	})
}

func handleSearchRequest(w http.ResponseWriter, req *http.Request, d SearchDeps, body SearchRequest) {
	locationID := body.LocationIdentifier
	if locationID == "" && body.Query != "" {
		ids, err := d.Rightmove.FindLocations(req.Context(), body.Query)
		if err != nil {
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
			return
		}
		if len(ids) == 0 {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, map[string]any{"error": "location_not_found", "query": body.Query})
			return
		}
		locationID = ids[0] // best match first, rightmove's own ranking
	}
	if locationID == "" {
		render.Status(req, http.StatusBadRequest)
		render.JSON(w, req, map[string]any{"error": "location_required", "detail": "location_identifier or query is required"})
		return
	}

	properties, err := d.Rightmove.SearchAll(req.Context(), locationID, rightmove.SearchOptions{
		Channel:  body.Channel,
		MaxPrice: defInt(body.MaxPrice, 0),
		Radius:   defFloat(body.Radius, 0),
	})
	if err != nil {
		render.Status(req, http.StatusBadGateway)
		render.JSON(w, req, map[string]any{"error": "upstream_error", "detail": err.Error()})
		return
	}

	located := geo.Transform(properties, d.Centre, d.MaxDistanceMiles)
	if body.Persist {
		persistRecords(req.Context(), d.Ingestor, located)
	}

	render.JSON(w, req, map[string]any{
		"ok":                  true,
		"location_identifier": locationID,
		"count":               len(located),
		"properties":          located,
	})
}
