package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/yourorg/rightmove-ingest/internal/env"
	"github.com/yourorg/rightmove-ingest/internal/events"
	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/ingest"
	"github.com/yourorg/rightmove-ingest/internal/logger"
	"github.com/yourorg/rightmove-ingest/internal/store"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

func main() {
	env.Load()
	port := env.GetInt("PORT", 4002)

	client := rightmove.NewClient()

	var ing *ingest.Ingestor
	if dsn := os.Getenv("PG_DSN"); dsn != "" {
		st, err := store.Open(dsn)
		if err != nil {
			log.Fatalf("store open error: %v", err)
		}
		defer st.DB.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := st.Ping(ctx); err != nil {
			cancel()
			log.Fatalf("postgres ping error: %v", err)
		}
		if err := st.Migrate(ctx); err != nil {
			cancel()
			log.Fatalf("postgres migrate error: %v", err)
		}
		cancel()
		ing = &ingest.Ingestor{Store: st, Pub: events.NewInMemory(256)}
	}

	var centre geo.Point
	if v := os.Getenv("CITY_CENTRE"); v != "" {
		var err error
		centre, err = geo.ParsePoint(v)
		if err != nil {
			log.Fatalf("CITY_CENTRE: %v", err)
		}
	}
	maxDistance := env.GetFloat("MAX_DISTANCE_FROM_CENTER_MILES", 0)

	router := BuildRouter(client, ing, centre, maxDistance)

	log.Printf("rightmove-ingest listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), logger.Middleware(router)); err != nil {
		log.Fatal(err)
	}
}
