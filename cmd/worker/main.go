package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rounitsingh/retail-etl/internal/jobs"
	"github.com/rounitsingh/retail-etl/internal/jobs/inmemory"
	"github.com/rounitsingh/retail-etl/internal/logger"
	"github.com/rounitsingh/retail-etl/internal/pipeline"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Initialize job store and queue
	// In production, this would be replaced with Cloud Tasks or Pub/Sub
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	log.Info().Msg("Starting worker service")

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create job handler that processes clean jobs
	handler := func(ctx context.Context, job jobs.Job) error {
		cleanJob, ok := job.(*jobs.CleanFileJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", cleanJob.JobID).
			Str("gcs_uri", cleanJob.GCSURI).
			Msg("Processing clean job")

		// Execute the pipeline
		err := pipeline.CleanSalesFileFromGCS(ctx, cleanJob.GCSURI)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", cleanJob.JobID).
				Str("gcs_uri", cleanJob.GCSURI).
				Msg("Pipeline execution failed")
			return err
		}

		log.Info().
			Str("job_id", cleanJob.JobID).
			Str("gcs_uri", cleanJob.GCSURI).
			Msg("Pipeline execution completed successfully")

		return nil
	}

	// Start consuming jobs
	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	log.Info().Msg("Worker service started, waiting for jobs...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	// Cancel context to stop workers
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	// Close the queue
	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Worker service exited")
}
