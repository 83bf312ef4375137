package pipeline

import (
	bq "github.com/rounitsingh/retail-etl/internal/bigquery"
	"github.com/rounitsingh/retail-etl/internal/gcs"
)

// StorageService is the storage interface the pipeline depends on.
type StorageService = gcs.StorageService

// WarehouseRepository is the warehouse interface the pipeline depends on.
type WarehouseRepository = bq.WarehouseRepository
