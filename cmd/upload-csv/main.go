package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/rounitsingh/retail-etl/internal/gcsuploader"
	"github.com/rounitsingh/retail-etl/internal/logger"
	"github.com/rounitsingh/retail-etl/internal/pipeline"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	var (
		bucketName string
		objectName string
		filePath   string
	)

	flag.StringVar(&bucketName, "bucket", "", "GCS bucket name (required)")
	flag.StringVar(&objectName, "object", "", "GCS object name (optional; defaults to raw/ + file name)")
	flag.StringVar(&filePath, "file", "", "Path to local sales CSV file (required)")
	flag.Parse()

	if bucketName == "" || filePath == "" {
		log.Fatal().Msg("Usage: upload-csv -bucket BUCKET_NAME -file /path/to/sales.csv [-object OBJECT_NAME]")
	}

	if objectName == "" {
		objectName = pipeline.RawPrefix() + filepath.Base(filePath)
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("bucket", bucketName).
		Str("object", objectName).
		Str("file", filePath).
		Msg("Uploading file to GCS")

	if err := gcsuploader.UploadFile(ctx, bucketName, objectName, filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", filePath, bucketName, objectName)
}
