package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rounitsingh/retail-etl/internal/logger"
	"github.com/rounitsingh/retail-etl/internal/pipeline"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	gcsURI := flag.String("gcs-uri", "", "GCS URI of the raw sales CSV (e.g. gs://bucket/raw/sales.csv)")
	flag.Parse()

	if *gcsURI == "" {
		log.Fatal().Msg("Error: --gcs-uri is required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("gcs_uri", *gcsURI).Msg("Starting cleaning run")

	if err := pipeline.CleanSalesFileFromGCS(ctx, *gcsURI); err != nil {
		log.Fatal().Err(err).Msg("Cleaning run failed")
	}

	fmt.Println("Cleaning run completed successfully.")
}
