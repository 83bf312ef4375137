package pipeline

import (
	"context"
	"fmt"

	"github.com/rounitsingh/retail-etl/internal/gcsuploader"
	infra "github.com/rounitsingh/retail-etl/internal/infra/bigquery"
	"github.com/rounitsingh/retail-etl/internal/logger"
)

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline) Execute(ctx context.Context, state *PipelineState) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewSalesCleaningPipeline creates the standard 8-step pipeline for one
// uploaded sales file: track the run, fetch, parse, clean, write the
// cleaned CSV, load the warehouse, archive the original, record the
// report.
func NewSalesCleaningPipeline(repo WarehouseRepository, storage StorageService) *Pipeline {
	return NewPipeline(
		&StartEtlRunStep{Repo: repo},
		&FetchRawStep{Repo: repo, Storage: storage},
		&ParseCSVStep{Repo: repo},
		&CleanStep{},
		&WriteCleanedStep{Repo: repo, Storage: storage},
		&LoadWarehouseStep{Repo: repo},
		&ArchiveRawStep{Repo: repo, Storage: storage},
		&MarkSuccessStep{Repo: repo},
	)
}

// CleanSalesFileFromGCS processes a single uploaded sales CSV stored in GCS.
// gcsURI should look like: "gs://bucket/raw/sales.csv".
func CleanSalesFileFromGCS(ctx context.Context, gcsURI string) error {
	repo, err := infra.NewBigQueryWarehouseRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	return CleanSalesFileFromGCSWithDeps(ctx, gcsURI, repo, gcsuploader.NewGCSStorageService())
}

// CleanSalesFileFromGCSWithDeps runs the pipeline with injected
// dependencies. Used by entry points that hold a shared repository and
// by tests.
func CleanSalesFileFromGCSWithDeps(ctx context.Context, gcsURI string, repo WarehouseRepository, storage StorageService) error {
	log := logger.FromContext(ctx)

	state := &PipelineState{GCSURI: gcsURI}
	if err := NewSalesCleaningPipeline(repo, storage).Execute(ctx, state); err != nil {
		return err
	}

	log.Info().
		Str("run_id", state.RunID).
		Str("gcs_uri", gcsURI).
		Str("cleaned_uri", state.CleanedURI).
		Int("rows_input", state.Report.Input).
		Int("rows_kept", state.Report.Kept).
		Int("rows_dropped", state.Report.DroppedTotal()).
		Msg("Sales file cleaned")

	return nil
}
