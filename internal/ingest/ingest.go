package ingest

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/yourorg/rightmove-ingest/internal/events"
	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/store"
)

// Ingestor persists canonical records and publishes an event per
// stored record.
type Ingestor struct {
	Store *store.Store
	Pub   events.Publisher
}

func (in *Ingestor) Enabled() bool { return in != nil && in.Store != nil }

// Write upserts a batch of records keyed by their platform
// identifier. Records without an identifier are skipped: the
// identifier is the upsert key and its absence means the mapper was
// handed something that is not a listing.
func (in *Ingestor) Write(ctx context.Context, records []geo.Located) error {
	if !in.Enabled() {
		return nil
	}
	rows := make([]store.PropertyRow, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		rows = append(rows, toRow(rec))
	}
	if err := in.Store.UpsertProperties(ctx, rows); err != nil {
		return err
	}
	if in.Pub != nil {
		for _, rec := range records {
			if rec.ID == "" {
				continue
			}
			price, _ := rec.PriceAmount()
			in.Pub.PublishPropertyStored(ctx, events.PropertyStored{ID: string(rec.ID), Price: price})
		}
	}
	return nil
}

func toRow(rec geo.Located) store.PropertyRow {
	row := store.PropertyRow{ID: string(rec.ID)}
	row.Type = sqlNullString(rec.Type)
	row.PropertyType = sqlNullString(rec.PropertyType)
	if price, ok := rec.PriceAmount(); ok {
		row.Price = sql.NullFloat64{Float64: price, Valid: true}
	}
	row.Bedrooms = sqlNullInt(rec.Bedrooms)
	row.Bathrooms = sqlNullInt(rec.Bathrooms)
	row.Lat = sqlNullFloat(rec.Latitude)
	row.Lon = sqlNullFloat(rec.Longitude)
	row.DistanceMiles = sqlNullFloat(rec.DistanceToCentreMiles)

	// The full record rides along as a JSONB snapshot so schema
	// additions never lose data.
	buf, err := json.Marshal(rec)
	if err != nil {
		buf = []byte("{}")
	}
	row.RecordJSON = buf
	return row
}

func sqlNullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func sqlNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func sqlNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
