package pipeline_test

import (
	"context"
	"path"
	"strings"

	"cloud.google.com/go/civil"

	bq "github.com/rounitsingh/retail-etl/internal/bigquery"
)

// MockWarehouseRepository is a mock implementation of WarehouseRepository for testing.
type MockWarehouseRepository struct {
	StartEtlRunFunc         func(ctx context.Context, gcsURI string) (string, error)
	MarkEtlRunFailedFunc    func(ctx context.Context, runID string, runErr error)
	MarkEtlRunSucceededFunc func(ctx context.Context, runID, cleanedURI string, counts bq.RunCounts) error
	LoadCleanedCSVFunc      func(ctx context.Context, gcsURI string) error
	ListRecentRunsFunc      func(ctx context.Context, limit int) ([]*bq.EtlRunRow, error)
	TotalsByRegionFunc      func(ctx context.Context, start, end civil.Date) ([]*bq.RegionTotalsRow, error)
}

func (m *MockWarehouseRepository) StartEtlRun(ctx context.Context, gcsURI string) (string, error) {
	if m.StartEtlRunFunc != nil {
		return m.StartEtlRunFunc(ctx, gcsURI)
	}
	return "test-run-id", nil
}

func (m *MockWarehouseRepository) MarkEtlRunFailed(ctx context.Context, runID string, runErr error) {
	if m.MarkEtlRunFailedFunc != nil {
		m.MarkEtlRunFailedFunc(ctx, runID, runErr)
	}
}

func (m *MockWarehouseRepository) MarkEtlRunSucceeded(ctx context.Context, runID, cleanedURI string, counts bq.RunCounts) error {
	if m.MarkEtlRunSucceededFunc != nil {
		return m.MarkEtlRunSucceededFunc(ctx, runID, cleanedURI, counts)
	}
	return nil
}

func (m *MockWarehouseRepository) LoadCleanedCSV(ctx context.Context, gcsURI string) error {
	if m.LoadCleanedCSVFunc != nil {
		return m.LoadCleanedCSVFunc(ctx, gcsURI)
	}
	return nil
}

func (m *MockWarehouseRepository) ListRecentRuns(ctx context.Context, limit int) ([]*bq.EtlRunRow, error) {
	if m.ListRecentRunsFunc != nil {
		return m.ListRecentRunsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockWarehouseRepository) TotalsByRegion(ctx context.Context, start, end civil.Date) ([]*bq.RegionTotalsRow, error) {
	if m.TotalsByRegionFunc != nil {
		return m.TotalsByRegionFunc(ctx, start, end)
	}
	return nil, nil
}

func (m *MockWarehouseRepository) Close() error { return nil }

// MockStorageService is a mock implementation of StorageService for testing.
type MockStorageService struct {
	UploadFileFunc   func(ctx context.Context, bucketName, objectName, filePath string) error
	WriteObjectFunc  func(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error
	FetchFromGCSFunc func(ctx context.Context, gcsURI string) ([]byte, error)
	MoveObjectFunc   func(ctx context.Context, bucketName, srcObject, dstObject string) error
}

func (m *MockStorageService) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, bucketName, objectName, filePath)
	}
	return nil
}

func (m *MockStorageService) WriteObject(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	if m.WriteObjectFunc != nil {
		return m.WriteObjectFunc(ctx, bucketName, objectName, data, contentType)
	}
	return nil
}

func (m *MockStorageService) FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	if m.FetchFromGCSFunc != nil {
		return m.FetchFromGCSFunc(ctx, gcsURI)
	}
	return []byte(""), nil
}

func (m *MockStorageService) MoveObject(ctx context.Context, bucketName, srcObject, dstObject string) error {
	if m.MoveObjectFunc != nil {
		return m.MoveObjectFunc(ctx, bucketName, srcObject, dstObject)
	}
	return nil
}

func (m *MockStorageService) ExtractFilenameFromGCSURI(uri string) string {
	return path.Base(strings.TrimPrefix(uri, "gs://"))
}
