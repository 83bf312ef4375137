package bigquery

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultDatasetID = "retail"
	salesTable       = "sales"
	etlRunsTable     = "etl_runs"
)

// projectID reads the GCP project from the environment. Every entry point
// fails fast when it is unset.
func projectID() (string, error) {
	p := strings.TrimSpace(os.Getenv("GCP_PROJECT"))
	if p == "" {
		return "", fmt.Errorf("GCP_PROJECT environment variable is not set")
	}
	return p, nil
}

// datasetID reads the BigQuery dataset from the environment, defaulting
// to "retail".
func datasetID() string {
	if d := strings.TrimSpace(os.Getenv("BQ_DATASET")); d != "" {
		return d
	}
	return defaultDatasetID
}
