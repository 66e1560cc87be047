package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	httpapi "github.com/yourorg/rightmove-ingest/http"
	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/ingest"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

func BuildRouter(client *rightmove.Client, ing *ingest.Ingestor, centre geo.Point, maxDistanceMiles float64) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(60, 1*time.Minute)) // every request fans out to rightmove
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterLocations(r, httpapi.LocationsDeps{Rightmove: client})
	httpapi.RegisterSearch(r, httpapi.SearchDeps{
		Rightmove:        client,
		Ingestor:         ing,
		Centre:           centre,
		MaxDistanceMiles: maxDistanceMiles,
	})
	httpapi.RegisterProperties(r, httpapi.PropertiesDeps{Rightmove: client, Ingestor: ing})

	return r
}
