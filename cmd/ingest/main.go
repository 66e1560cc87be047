package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/yourorg/rightmove-ingest/internal/env"
	"github.com/yourorg/rightmove-ingest/internal/events"
	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/ingest"
	"github.com/yourorg/rightmove-ingest/internal/store"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

func main() {
	env.Load()
	dsn := env.Must("PG_DSN")

	centre, err := geo.ParsePoint(env.Must("CITY_CENTRE"))
	if err != nil {
		log.Fatalf("CITY_CENTRE: %v", err)
	}
	maxDistance := env.GetFloat("MAX_DISTANCE_FROM_CENTER_MILES", 0)

	interval := parseDuration(os.Getenv("INGEST_INTERVAL"), 0)
	channel := env.Get("INGEST_CHANNEL", "BUY")
	maxPrice := parseInt(os.Getenv("INGEST_MAX_PRICE"), 0)
	radius := env.GetFloat("INGEST_RADIUS", 0)

	client := rightmove.NewClient()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	locations := splitList(os.Getenv("INGEST_LOCATIONS"))
	if len(locations) == 0 {
		query := os.Getenv("INGEST_LOCATION_QUERY")
		if query == "" {
			log.Fatal("INGEST_LOCATIONS or INGEST_LOCATION_QUERY must be provided")
		}
		ids, err := client.FindLocations(rootCtx, query)
		if err != nil {
			log.Fatalf("resolving %q: %v", query, err)
		}
		if len(ids) == 0 {
			log.Fatalf("no rightmove locations match %q", query)
		}
		locations = ids[:1] // rightmove's best match
	}

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

	ctx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
	if err := st.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("postgres ping error: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("postgres migrate error: %v", err)
	}
	cancel()

	pub := events.NewInMemory(256)
	go auditStored(rootCtx, pub)

	job := &ingest.BulkJob{
		Client:   client,
		Ingestor: &ingest.Ingestor{Store: st, Pub: pub},
		Config: ingest.BulkConfig{
			Locations:        locations,
			Channel:          channel,
			MaxPrice:         maxPrice,
			Radius:           radius,
			Centre:           centre,
			MaxDistanceMiles: maxDistance,
			Interval:         interval,
		},
	}

	if err := job.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("ingest job stopped with error: %v", err)
	}
}

// auditStored consumes stored-property events and logs them.
func auditStored(ctx context.Context, pub events.Publisher) {
	sub := pub.SubscribePropertyStored()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			log.Printf("ingest: property stored id=%s price=%.0f", evt.ID, evt.Price)
		}
	}
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	fields := strings.FieldsFunc(v, func(r rune) bool {
		switch r {
		case ',', ';', '\n', '\r', '\t':
			return true
		default:
			return false
		}
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	dur, err := time.ParseDuration(v)
	if err == nil {
		return dur
	}
	if i, err2 := strconv.Atoi(v); err2 == nil {
		return time.Duration(i) * time.Second
	}
	return def
}

func parseInt(v string, def int) int {
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
