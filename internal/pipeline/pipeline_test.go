package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	bq "github.com/rounitsingh/retail-etl/internal/bigquery"
	"github.com/rounitsingh/retail-etl/internal/pipeline"
)

const dirtyCSV = `order_id,product,category,quantity,price,order_date,region
1001,Blue T-Shirt,Apparel,2,30.00,2025-09-01,singapore
1001,Blue T-Shirt,Apparel,2,30.00,2025-09-01,singapore
1002,,Home,1,7.50,2025-09-02,thailand
1003,Sneakers,Footwear,1,55.00,15-09-2025,VIETNAM
1004,Backpack,Outdoors,x,35.00,2025-09-03,indonesia
`

func TestPipeline_CleansWritesLoadsArchives(t *testing.T) {
	var (
		writtenObject string
		writtenData   []byte
		loadedURI     string
		movedSrc      string
		movedDst      string
		doneRunID     string
		doneURI       string
		doneCounts    bq.RunCounts
	)

	repo := &MockWarehouseRepository{
		StartEtlRunFunc: func(ctx context.Context, gcsURI string) (string, error) {
			return "run-1", nil
		},
		LoadCleanedCSVFunc: func(ctx context.Context, gcsURI string) error {
			loadedURI = gcsURI
			return nil
		},
		MarkEtlRunSucceededFunc: func(ctx context.Context, runID, cleanedURI string, counts bq.RunCounts) error {
			doneRunID = runID
			doneURI = cleanedURI
			doneCounts = counts
			return nil
		},
		MarkEtlRunFailedFunc: func(ctx context.Context, runID string, runErr error) {
			t.Errorf("run marked failed: %v", runErr)
		},
	}
	storage := &MockStorageService{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			return []byte(dirtyCSV), nil
		},
		WriteObjectFunc: func(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
			writtenObject = objectName
			writtenData = data
			return nil
		},
		MoveObjectFunc: func(ctx context.Context, bucketName, srcObject, dstObject string) error {
			movedSrc, movedDst = srcObject, dstObject
			return nil
		},
	}

	err := pipeline.CleanSalesFileFromGCSWithDeps(context.Background(), "gs://test-bucket/raw/sales.csv", repo, storage)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	if writtenObject != "cleaned/sales.csv" {
		t.Errorf("cleaned object = %q, want cleaned/sales.csv", writtenObject)
	}
	if loadedURI != "gs://test-bucket/cleaned/sales.csv" {
		t.Errorf("loaded uri = %q, want the cleaned object", loadedURI)
	}
	if movedSrc != "raw/sales.csv" || movedDst != "processed/sales.csv" {
		t.Errorf("archive move = %q -> %q, want raw/sales.csv -> processed/sales.csv", movedSrc, movedDst)
	}
	if doneRunID != "run-1" || doneURI != loadedURI {
		t.Errorf("success recorded with run=%q uri=%q", doneRunID, doneURI)
	}
	want := bq.RunCounts{Input: 5, Kept: 2, Duplicates: 1, Incomplete: 1, MalformedNumerics: 1}
	if doneCounts != want {
		t.Errorf("counts = %+v, want %+v", doneCounts, want)
	}

	lines := strings.Split(strings.TrimSpace(string(writtenData)), "\n")
	if len(lines) != 3 {
		t.Fatalf("cleaned file has %d lines, want header + 2 rows:\n%s", len(lines), writtenData)
	}
	if lines[1] != "1001,Blue T-Shirt,Apparel,2,30.00,2025-09-01,Singapore,60.00" {
		t.Errorf("unexpected cleaned row: %s", lines[1])
	}
	if lines[2] != "1003,Sneakers,Footwear,1,55.00,2025-09-15,Vietnam,55.00" {
		t.Errorf("unexpected cleaned row: %s", lines[2])
	}
}

func TestPipeline_EmptyBatchSkipsWriteAndLoad(t *testing.T) {
	succeeded := false
	repo := &MockWarehouseRepository{
		LoadCleanedCSVFunc: func(ctx context.Context, gcsURI string) error {
			t.Error("load should not run for an empty batch")
			return nil
		},
		MarkEtlRunSucceededFunc: func(ctx context.Context, runID, cleanedURI string, counts bq.RunCounts) error {
			succeeded = true
			if cleanedURI != "" {
				t.Errorf("cleaned uri = %q, want empty", cleanedURI)
			}
			if counts.Kept != 0 {
				t.Errorf("kept = %d, want 0", counts.Kept)
			}
			return nil
		},
	}
	archived := false
	storage := &MockStorageService{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			// Header only, zero data rows.
			return []byte("order_id,product,category,quantity,price,order_date,region\n"), nil
		},
		WriteObjectFunc: func(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
			t.Error("write should not run for an empty batch")
			return nil
		},
		MoveObjectFunc: func(ctx context.Context, bucketName, srcObject, dstObject string) error {
			archived = true
			return nil
		},
	}

	err := pipeline.CleanSalesFileFromGCSWithDeps(context.Background(), "gs://test-bucket/raw/empty.csv", repo, storage)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if !succeeded {
		t.Error("expected the run to be marked succeeded")
	}
	if !archived {
		t.Error("expected the raw file to be archived even when empty")
	}
}

func TestPipeline_FetchFailureMarksRunFailed(t *testing.T) {
	fetchErr := errors.New("object not found")
	var failedRunID string

	repo := &MockWarehouseRepository{
		StartEtlRunFunc: func(ctx context.Context, gcsURI string) (string, error) {
			return "run-2", nil
		},
		MarkEtlRunFailedFunc: func(ctx context.Context, runID string, runErr error) {
			failedRunID = runID
			if !errors.Is(runErr, fetchErr) {
				t.Errorf("failure recorded with %v, want %v", runErr, fetchErr)
			}
		},
	}
	storage := &MockStorageService{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			return nil, fetchErr
		},
	}

	err := pipeline.CleanSalesFileFromGCSWithDeps(context.Background(), "gs://test-bucket/raw/missing.csv", repo, storage)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, fetchErr) {
		t.Errorf("returned error = %v, want wrapped fetch error", err)
	}
	if failedRunID != "run-2" {
		t.Errorf("failed run id = %q, want run-2", failedRunID)
	}
}

func TestPipeline_InvalidURI(t *testing.T) {
	repo := &MockWarehouseRepository{
		StartEtlRunFunc: func(ctx context.Context, gcsURI string) (string, error) {
			t.Error("no run should start for an invalid URI")
			return "", nil
		},
	}

	err := pipeline.CleanSalesFileFromGCSWithDeps(context.Background(), "not-a-uri", repo, &MockStorageService{})
	if err == nil {
		t.Fatal("expected an error for an invalid URI")
	}
}

func TestPipeline_BadHeaderMarksRunFailed(t *testing.T) {
	var failed bool
	repo := &MockWarehouseRepository{
		MarkEtlRunFailedFunc: func(ctx context.Context, runID string, runErr error) {
			failed = true
		},
	}
	storage := &MockStorageService{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			return []byte("id,name\n1,x\n"), nil
		},
	}

	err := pipeline.CleanSalesFileFromGCSWithDeps(context.Background(), "gs://b/raw/bad.csv", repo, storage)
	if err == nil {
		t.Fatal("expected an error for a file without the sales header")
	}
	if !failed {
		t.Error("expected the run to be marked failed")
	}
}
