package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// maxBadRecords bounds how many unloadable rows the load job tolerates
// before failing, the continue-on-error behavior of a warehouse COPY.
const maxBadRecords = 50

// LoadCleanedCSVWithClient bulk-loads a cleaned CSV object into the sales
// table. The source has a header row and the output column order of the
// cleaner, so the load runs by column position with the header skipped.
func LoadCleanedCSVWithClient(ctx context.Context, client *bigquery.Client, gcsURI string) error {
	gcsRef := bigquery.NewGCSReference(gcsURI)
	gcsRef.SourceFormat = bigquery.CSV
	gcsRef.SkipLeadingRows = 1
	gcsRef.AllowQuotedNewlines = true
	gcsRef.MaxBadRecords = maxBadRecords

	loader := client.Dataset(datasetID()).Table(salesTable).LoaderFrom(gcsRef)
	loader.WriteDisposition = bigquery.WriteAppend

	job, err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("LoadCleanedCSV: running load job: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("LoadCleanedCSV: waiting for load job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("LoadCleanedCSV: load job error: %w", err)
	}

	return nil
}
