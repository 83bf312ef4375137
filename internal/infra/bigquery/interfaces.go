package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	bq "github.com/rounitsingh/retail-etl/internal/bigquery"
)

// Re-export the interface from the shared package for backward compatibility
type WarehouseRepository = bq.WarehouseRepository

// BigQueryWarehouseRepository is the concrete implementation of
// WarehouseRepository that interacts with BigQuery. It holds a shared
// client to avoid creating a new connection for each operation.
type BigQueryWarehouseRepository struct {
	client *bigquery.Client
}

// NewBigQueryWarehouseRepository creates a repository with a shared
// BigQuery client for the project named by GCP_PROJECT.
func NewBigQueryWarehouseRepository(ctx context.Context) (*BigQueryWarehouseRepository, error) {
	project, err := projectID()
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryWarehouseRepository: %w", err)
	}
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryWarehouseRepository: creating client: %w", err)
	}
	return &BigQueryWarehouseRepository{client: client}, nil
}

// Close closes the BigQuery client connection.
func (r *BigQueryWarehouseRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *BigQueryWarehouseRepository) StartEtlRun(ctx context.Context, gcsURI string) (string, error) {
	return StartEtlRunWithClient(ctx, r.client, gcsURI)
}

func (r *BigQueryWarehouseRepository) MarkEtlRunFailed(ctx context.Context, runID string, runErr error) {
	MarkEtlRunFailedWithClient(ctx, r.client, runID, runErr)
}

func (r *BigQueryWarehouseRepository) MarkEtlRunSucceeded(ctx context.Context, runID, cleanedURI string, counts bq.RunCounts) error {
	return MarkEtlRunSucceededWithClient(ctx, r.client, runID, cleanedURI, counts)
}

func (r *BigQueryWarehouseRepository) LoadCleanedCSV(ctx context.Context, gcsURI string) error {
	return LoadCleanedCSVWithClient(ctx, r.client, gcsURI)
}

func (r *BigQueryWarehouseRepository) ListRecentRuns(ctx context.Context, limit int) ([]*bq.EtlRunRow, error) {
	return ListRecentRunsWithClient(ctx, r.client, limit)
}

func (r *BigQueryWarehouseRepository) TotalsByRegion(ctx context.Context, start, end civil.Date) ([]*bq.RegionTotalsRow, error) {
	return TotalsByRegionWithClient(ctx, r.client, start, end)
}

// QuerySalesByDateRange returns individual loaded rows; used by the CLI
// for spot checks, so it is not part of WarehouseRepository.
func (r *BigQueryWarehouseRepository) QuerySalesByDateRange(ctx context.Context, start, end civil.Date) ([]*bq.SalesRow, error) {
	return QuerySalesByDateRangeWithClient(ctx, r.client, start, end)
}

var _ bq.WarehouseRepository = (*BigQueryWarehouseRepository)(nil)
