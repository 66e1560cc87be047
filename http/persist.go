package httpapi

import (
	"context"
	"log"

	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/ingest"
)

// persistRecords is a best-effort write-through; a storage failure is
// logged but never turned into a request failure.
func persistRecords(ctx context.Context, ing *ingest.Ingestor, records []geo.Located) {
	if !ing.Enabled() || len(records) == 0 {
		return
	}
	if err := ing.Write(ctx, records); err != nil {
		log.Printf("httpapi: persisting %d records: %v", len(records), err)
	}
}
