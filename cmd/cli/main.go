package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rounitsingh/retail-etl/internal/cleaner"
	"github.com/rounitsingh/retail-etl/internal/gcsuploader"
	infraBQ "github.com/rounitsingh/retail-etl/internal/infra/bigquery"
	"github.com/rounitsingh/retail-etl/internal/logger"
	"github.com/rounitsingh/retail-etl/internal/pipeline"
	"github.com/rs/zerolog"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		runIngest(log)
	case "upload":
		runUpload(log)
	case "clean":
		runClean(log)
	case "runs":
		runRuns(log)
	case "sales":
		runSales(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Retail ETL CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  ingest    Clean and load a raw sales CSV from GCS")
	fmt.Println("  upload    Upload a sales CSV file to GCS")
	fmt.Println("  clean     Clean a local sales CSV file without touching GCS")
	fmt.Println("  runs      List recent ETL runs")
	fmt.Println("  sales     List loaded sales rows for a date range")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runIngest(log zerolog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	gcsURI := fs.String("gcs-uri", "", "GCS URI of the raw sales CSV")
	fs.Parse(os.Args[2:])

	if *gcsURI == "" {
		log.Fatal().Msg("Error: --gcs-uri is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("gcs_uri", *gcsURI).Msg("Starting cleaning run")

	if err := pipeline.CleanSalesFileFromGCS(ctx, *gcsURI); err != nil {
		log.Fatal().Err(err).Msg("Cleaning run failed")
	}

	fmt.Println("Cleaning run completed successfully.")
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", "", "GCS bucket name")
	objectName := fs.String("object", "", "GCS object name (defaults to raw/ + filename)")
	filePath := fs.String("file", "", "Path to local sales CSV file")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}

	if *objectName == "" {
		*objectName = pipeline.RawPrefix() + filepath.Base(*filePath)
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("bucket", *bucketName).
		Str("object", *objectName).
		Str("file", *filePath).
		Msg("Uploading file to GCS")

	if err := gcsuploader.UploadFile(ctx, *bucketName, *objectName, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", *filePath, *bucketName, *objectName)
}

func runClean(log zerolog.Logger) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	inPath := fs.String("in", "", "Path to the raw sales CSV")
	outPath := fs.String("out", "", "Path for the cleaned CSV (defaults to <in>_cleaned.csv)")
	fs.Parse(os.Args[2:])

	if *inPath == "" {
		log.Fatal().Msg("Error: --in is required")
	}

	if *outPath == "" {
		ext := filepath.Ext(*inPath)
		*outPath = strings.TrimSuffix(*inPath, ext) + "_cleaned" + ext
	}

	in, err := os.Open(*inPath)
	if err != nil {
		log.Fatal().Err(err).Str("in", *inPath).Msg("Failed to open input file")
	}
	defer in.Close()

	records, err := cleaner.ReadRecords(in)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read raw CSV")
	}

	cleaned, report := cleaner.Clean(records)

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatal().Err(err).Str("out", *outPath).Msg("Failed to create output file")
	}
	defer out.Close()

	if err := cleaner.WriteRecords(out, cleaned); err != nil {
		log.Fatal().Err(err).Msg("Failed to write cleaned CSV")
	}

	fmt.Printf("Cleaned %s -> %s\n\n", *inPath, *outPath)
	fmt.Printf("Rows in:            %d\n", report.Input)
	fmt.Printf("Rows kept:          %d\n", report.Kept)
	fmt.Printf("Duplicates:         %d\n", report.Duplicates)
	fmt.Printf("Incomplete:         %d\n", report.Incomplete)
	fmt.Printf("Malformed dates:    %d\n", report.MalformedDates)
	fmt.Printf("Malformed numerics: %d\n", report.MalformedNumerics)

	if len(report.Dropped) > 0 {
		fmt.Printf("\nDropped records:\n")
		for _, d := range report.Dropped {
			if d.Err != nil {
				fmt.Printf("  line %d (order %s): %s: %v\n", d.Line, d.OrderID, d.Reason, d.Err)
			} else {
				fmt.Printf("  line %d (order %s): %s\n", d.Line, d.OrderID, d.Reason)
			}
		}
	}
}

func runRuns(log zerolog.Logger) {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Maximum number of runs to list")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	repo, err := infraBQ.NewBigQueryWarehouseRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create warehouse repository")
	}
	defer repo.Close()

	runs, err := repo.ListRecentRuns(ctx, *limit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list runs")
	}

	fmt.Printf("\n=== ETL Runs (%d) ===\n", len(runs))
	for i, run := range runs {
		fmt.Printf("\n%d. %s\n", i+1, run.RunID)
		fmt.Printf("   Source:   %s\n", run.GCSURI)
		fmt.Printf("   Started:  %s\n", run.StartedAt.Format(time.RFC3339))
		fmt.Printf("   Status:   %s\n", run.Status)
		if run.CleanedURI.Valid && run.CleanedURI.StringVal != "" {
			fmt.Printf("   Cleaned:  %s\n", run.CleanedURI.StringVal)
		}
		if run.Status == "FAILED" && run.ErrorMessage != "" {
			fmt.Printf("   Error:    %s\n", run.ErrorMessage)
		}
		if run.RowsInput.Valid {
			fmt.Printf("   Rows:     %d in, %d kept, %d dropped\n",
				run.RowsInput.Int64,
				run.RowsKept.Int64,
				run.RowsInput.Int64-run.RowsKept.Int64)
		}
	}
	fmt.Println()
}

func runSales(log zerolog.Logger) {
	fs := flag.NewFlagSet("sales", flag.ExitOnError)
	startStr := fs.String("start", "", "Start date (YYYY-MM-DD, defaults to 90 days ago)")
	endStr := fs.String("end", "", "End date (YYYY-MM-DD, defaults to today)")
	fs.Parse(os.Args[2:])

	start := civil.DateOf(time.Now().AddDate(0, 0, -90))
	end := civil.DateOf(time.Now())

	var err error
	if *startStr != "" {
		if start, err = civil.ParseDate(*startStr); err != nil {
			log.Fatal().Err(err).Msg("Invalid --start date")
		}
	}
	if *endStr != "" {
		if end, err = civil.ParseDate(*endStr); err != nil {
			log.Fatal().Err(err).Msg("Invalid --end date")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	repo, err := infraBQ.NewBigQueryWarehouseRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create warehouse repository")
	}
	defer repo.Close()

	rows, err := repo.QuerySalesByDateRange(ctx, start, end)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to query sales")
	}

	fmt.Printf("\n=== Sales %s .. %s (%d rows) ===\n", start, end, len(rows))
	for _, row := range rows {
		fmt.Printf("%s  %-10s %-25s x%d  %8s  %s\n",
			row.OrderDate, row.OrderID, row.Product, row.Quantity,
			row.LineTotal.FloatString(2), row.Region)
	}
	fmt.Println()
}
