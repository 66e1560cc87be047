package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

type BulkConfig struct {
	Locations        []string // rightmove location identifiers, e.g. "REGION^93829"
	Channel          string   // "BUY" or "RENT"
	MaxPrice         int
	Radius           float64 // miles
	Centre           geo.Point
	MaxDistanceMiles float64 // <= 0 disables the distance cut-off
	Interval         time.Duration
}

// BulkJob scrapes each configured location, runs the geo transform,
// and persists the results.
type BulkJob struct {
	Client   *rightmove.Client
	Ingestor *Ingestor
	Logger   *log.Logger
	Config   BulkConfig
}

func (j *BulkJob) logf(format string, args ...any) {
	if j.Logger != nil {
		j.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

func (j *BulkJob) validate() error {
	if j == nil {
		return errors.New("nil bulk job")
	}
	if j.Client == nil {
		return errors.New("ingest bulk job missing client")
	}
	if !j.Ingestor.Enabled() {
		return errors.New("ingest bulk job requires an ingestor with a store")
	}
	if len(j.Config.Locations) == 0 {
		return errors.New("ingest bulk job requires at least one location")
	}
	if j.Config.Channel == "" {
		j.Config.Channel = "BUY"
	}
	return nil
}

// Run executes the job once when no interval is configured, or loops
// on a ticker until the context is cancelled.
func (j *BulkJob) Run(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	interval := j.Config.Interval
	if interval <= 0 {
		return j.RunOnce(ctx)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	j.logf("ingest bulk job starting with interval %s (%d location(s))", interval, len(j.Config.Locations))
	if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		j.logf("ingest bulk job initial run error: %v", err)
	}
	for {
		select {
		case <-ctx.Done():
			j.logf("ingest bulk job stopping: %v", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
				j.logf("ingest bulk job iteration error: %v", err)
			}
		}
	}
}

// RunOnce ingests every configured location. A failed location does
// not stop the others; their errors are joined.
func (j *BulkJob) RunOnce(ctx context.Context) error {
	if err := j.validate(); err != nil {
		return err
	}
	var joined error
	for _, location := range j.Config.Locations {
		if err := j.ingestLocation(ctx, location); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			joined = errors.Join(joined, err)
		}
	}
	return joined
}

func (j *BulkJob) ingestLocation(ctx context.Context, location string) error {
	properties, err := j.Client.SearchAll(ctx, location, rightmove.SearchOptions{
		Channel:  j.Config.Channel,
		MaxPrice: j.Config.MaxPrice,
		Radius:   j.Config.Radius,
	})
	if err != nil {
		return fmt.Errorf("location %s search: %w", location, err)
	}

	located := geo.Transform(properties, j.Config.Centre, j.Config.MaxDistanceMiles)
	if len(located) == 0 {
		j.logf("ingest bulk job location %s: no properties within range", location)
		return nil
	}

	if err := j.Ingestor.Write(ctx, located); err != nil {
		return fmt.Errorf("location %s persist: %w", location, err)
	}
	j.logf("ingest bulk job location %s persisted %d properties", location, len(located))
	return nil
}
