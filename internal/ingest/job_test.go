package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/rightmove-ingest/internal/geo"
	"github.com/yourorg/rightmove-ingest/internal/store"
	"github.com/yourorg/rightmove-ingest/rightmove"
)

func locatedRecord(t *testing.T, doc string) geo.Located {
	t.Helper()
	var p rightmove.Property
	require.NoError(t, json.Unmarshal([]byte(doc), &p))
	return geo.Located{Property: p}
}

func TestBulkJobValidate(t *testing.T) {
	client := rightmove.NewClient()
	ingestor := &Ingestor{Store: &store.Store{}}

	t.Run("missing client", func(t *testing.T) {
		job := &BulkJob{Ingestor: ingestor, Config: BulkConfig{Locations: []string{"REGION^904"}}}
		assert.Error(t, job.validate())
	})

	t.Run("missing store", func(t *testing.T) {
		job := &BulkJob{Client: client, Config: BulkConfig{Locations: []string{"REGION^904"}}}
		assert.Error(t, job.validate())
	})

	t.Run("no locations", func(t *testing.T) {
		job := &BulkJob{Client: client, Ingestor: ingestor}
		assert.Error(t, job.validate())
	})

	t.Run("channel defaults to BUY", func(t *testing.T) {
		job := &BulkJob{Client: client, Ingestor: ingestor, Config: BulkConfig{Locations: []string{"REGION^904"}}}
		require.NoError(t, job.validate())
		assert.Equal(t, "BUY", job.Config.Channel)
	})
}

func TestRunRejectsInvalidJob(t *testing.T) {
	job := &BulkJob{}
	assert.Error(t, job.Run(context.Background()))
	assert.Error(t, job.RunOnce(context.Background()))
}

func TestIngestorDisabledWriteIsNoop(t *testing.T) {
	var in *Ingestor
	assert.False(t, in.Enabled())
	assert.NoError(t, in.Write(context.Background(), []geo.Located{
		locatedRecord(t, `{"id": 1}`),
	}))

	in = &Ingestor{}
	assert.False(t, in.Enabled())
	assert.NoError(t, in.Write(context.Background(), nil))
}

func TestToRow(t *testing.T) {
	rec := locatedRecord(t, `{
		"id": 148281772,
		"type": "BUY",
		"property_type": "Terraced",
		"price": "£250,000",
		"bedrooms": 3,
		"bathrooms": 1,
		"latitude": 53.48,
		"longitude": -2.24
	}`)
	miles := 1.2
	rec.DistanceToCentreMiles = &miles

	row := toRow(rec)

	assert.Equal(t, "148281772", row.ID)
	assert.Equal(t, sql.NullString{String: "BUY", Valid: true}, row.Type)
	assert.Equal(t, sql.NullString{String: "Terraced", Valid: true}, row.PropertyType)
	assert.Equal(t, sql.NullFloat64{Float64: 250000, Valid: true}, row.Price)
	assert.Equal(t, sql.NullInt64{Int64: 3, Valid: true}, row.Bedrooms)
	assert.Equal(t, sql.NullInt64{Int64: 1, Valid: true}, row.Bathrooms)
	assert.Equal(t, sql.NullFloat64{Float64: 53.48, Valid: true}, row.Lat)
	assert.Equal(t, sql.NullFloat64{Float64: -2.24, Valid: true}, row.Lon)
	assert.Equal(t, sql.NullFloat64{Float64: 1.2, Valid: true}, row.DistanceMiles)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(row.RecordJSON, &snapshot))
	assert.Equal(t, "148281772", snapshot["id"])
	assert.InDelta(t, 1.2, snapshot["distanceToCityCenter"], 1e-9)
}

func TestToRowSparseRecord(t *testing.T) {
	row := toRow(locatedRecord(t, `{"id": "7"}`))

	assert.Equal(t, "7", row.ID)
	assert.False(t, row.Type.Valid)
	assert.False(t, row.Price.Valid)
	assert.False(t, row.Bedrooms.Valid)
	assert.False(t, row.Lat.Valid)
	assert.False(t, row.DistanceMiles.Valid)
	assert.NotEmpty(t, row.RecordJSON)
}
