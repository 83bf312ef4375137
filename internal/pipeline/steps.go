package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path"

	bq "github.com/rounitsingh/retail-etl/internal/bigquery"
	"github.com/rounitsingh/retail-etl/internal/cleaner"
	"github.com/rounitsingh/retail-etl/internal/gcsuploader"
)

// PipelineStep represents a single step in the cleaning pipeline.
type PipelineStep interface {
	Execute(ctx context.Context, state *PipelineState) error
}

// PipelineState holds the shared state across all pipeline steps.
type PipelineState struct {
	GCSURI string
	Bucket string
	Object string
	RunID  string

	RawBytes []byte
	Records  []cleaner.RawRecord
	Cleaned  []cleaner.SalesRecord
	Report   *cleaner.Report

	// CleanedURI stays empty when the batch produced no surviving records;
	// the load step is then a no-op.
	CleanedURI string
}

// Step 1: StartEtlRunStep records the run in etl_runs (status=RUNNING).
type StartEtlRunStep struct {
	Repo WarehouseRepository
}

func (s *StartEtlRunStep) Execute(ctx context.Context, state *PipelineState) error {
	bucket, object, err := gcsuploader.ParseGCSURI(state.GCSURI)
	if err != nil {
		return err
	}
	state.Bucket = bucket
	state.Object = object

	runID, err := s.Repo.StartEtlRun(ctx, state.GCSURI)
	if err != nil {
		return err
	}
	state.RunID = runID
	return nil
}

// Step 2: FetchRawStep downloads the raw CSV bytes.
type FetchRawStep struct {
	Repo    WarehouseRepository
	Storage StorageService
}

func (s *FetchRawStep) Execute(ctx context.Context, state *PipelineState) error {
	raw, err := s.Storage.FetchFromGCS(ctx, state.GCSURI)
	if err != nil {
		s.Repo.MarkEtlRunFailed(ctx, state.RunID, err)
		return err
	}
	state.RawBytes = raw
	return nil
}

// Step 3: ParseCSVStep decodes the raw bytes into records.
type ParseCSVStep struct {
	Repo WarehouseRepository
}

func (s *ParseCSVStep) Execute(ctx context.Context, state *PipelineState) error {
	records, err := cleaner.ReadRecords(bytes.NewReader(state.RawBytes))
	if err != nil {
		s.Repo.MarkEtlRunFailed(ctx, state.RunID, err)
		return err
	}
	state.Records = records
	return nil
}

// Step 4: CleanStep runs the cleaning rules over the batch.
type CleanStep struct{}

func (s *CleanStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Cleaned, state.Report = cleaner.Clean(state.Records)
	return nil
}

// Step 5: WriteCleanedStep writes the cleaned CSV under the cleaned/
// prefix. An empty batch writes nothing; the original is still archived
// so the file is not reprocessed.
type WriteCleanedStep struct {
	Repo    WarehouseRepository
	Storage StorageService
}

func (s *WriteCleanedStep) Execute(ctx context.Context, state *PipelineState) error {
	if len(state.Cleaned) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := cleaner.WriteRecords(&buf, state.Cleaned); err != nil {
		s.Repo.MarkEtlRunFailed(ctx, state.RunID, err)
		return err
	}

	cleanedObject := CleanedPrefix() + path.Base(state.Object)
	if err := s.Storage.WriteObject(ctx, state.Bucket, cleanedObject, buf.Bytes(), "text/csv"); err != nil {
		s.Repo.MarkEtlRunFailed(ctx, state.RunID, err)
		return err
	}
	state.CleanedURI = fmt.Sprintf("gs://%s/%s", state.Bucket, cleanedObject)
	return nil
}

// Step 6: LoadWarehouseStep bulk-loads the cleaned object into the sales table.
type LoadWarehouseStep struct {
	Repo WarehouseRepository
}

func (s *LoadWarehouseStep) Execute(ctx context.Context, state *PipelineState) error {
	if state.CleanedURI == "" {
		return nil
	}
	if err := s.Repo.LoadCleanedCSV(ctx, state.CleanedURI); err != nil {
		s.Repo.MarkEtlRunFailed(ctx, state.RunID, err)
		return err
	}
	return nil
}

// Step 7: ArchiveRawStep moves the original object under processed/.
type ArchiveRawStep struct {
	Repo    WarehouseRepository
	Storage StorageService
}

func (s *ArchiveRawStep) Execute(ctx context.Context, state *PipelineState) error {
	dst := ProcessedPrefix() + path.Base(state.Object)
	if err := s.Storage.MoveObject(ctx, state.Bucket, state.Object, dst); err != nil {
		s.Repo.MarkEtlRunFailed(ctx, state.RunID, err)
		return err
	}
	return nil
}

// Step 8: MarkSuccessStep finishes the etl_runs row with the report counters.
type MarkSuccessStep struct {
	Repo WarehouseRepository
}

func (s *MarkSuccessStep) Execute(ctx context.Context, state *PipelineState) error {
	counts := bq.RunCounts{}
	if state.Report != nil {
		counts = bq.RunCounts{
			Input:             state.Report.Input,
			Kept:              state.Report.Kept,
			Duplicates:        state.Report.Duplicates,
			Incomplete:        state.Report.Incomplete,
			MalformedDates:    state.Report.MalformedDates,
			MalformedNumerics: state.Report.MalformedNumerics,
		}
	}
	return s.Repo.MarkEtlRunSucceeded(ctx, state.RunID, state.CleanedURI, counts)
}
