package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	bq "github.com/rounitsingh/retail-etl/internal/bigquery"
	"github.com/rounitsingh/retail-etl/internal/logger"
)

// StartEtlRunWithClient inserts an etl_runs row with status=RUNNING
// using the provided BigQuery client and returns the new run id.
func StartEtlRunWithClient(ctx context.Context, client *bigquery.Client, gcsURI string) (string, error) {
	runID := uuid.NewString()

	q := client.Query(fmt.Sprintf(`
		INSERT %s.%s (
			run_id,
			gcs_uri,
			started_ts,
			status,
			error_message
		)
		VALUES (
			@run_id,
			@gcs_uri,
			@started_ts,
			@status,
			""
		)
	`, datasetID(), etlRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "run_id", Value: runID},
		{Name: "gcs_uri", Value: gcsURI},
		{Name: "started_ts", Value: time.Now()},
		{Name: "status", Value: "RUNNING"},
	}

	if err := runAndWait(ctx, q); err != nil {
		return "", fmt.Errorf("StartEtlRun: %w", err)
	}

	return runID, nil
}

// MarkEtlRunFailedWithClient updates an etl_runs row to status=FAILED.
// Best effort: this runs on error paths, so its own failures are logged
// rather than returned.
func MarkEtlRunFailedWithClient(ctx context.Context, client *bigquery.Client, runID string, runErr error) {
	log := logger.FromContext(ctx)

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	q := client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE run_id = @run_id
	`, datasetID(), etlRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "FAILED"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "run_id", Value: runID},
	}

	if err := runAndWait(ctx, q); err != nil {
		log.Error().
			Err(err).
			Str("run_id", runID).
			Msg("MarkEtlRunFailed: running update query")
	}
}

// MarkEtlRunSucceededWithClient updates an etl_runs row to status=SUCCESS
// and records the cleaned object URI and the report counters.
func MarkEtlRunSucceededWithClient(ctx context.Context, client *bigquery.Client, runID, cleanedURI string, counts bq.RunCounts) error {
	q := client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET status = @status,
		    finished_ts = @finished_ts,
		    cleaned_uri = @cleaned_uri,
		    error_message = "",
		    rows_input = @rows_input,
		    rows_kept = @rows_kept,
		    rows_duplicate = @rows_duplicate,
		    rows_incomplete = @rows_incomplete,
		    rows_bad_date = @rows_bad_date,
		    rows_bad_numeric = @rows_bad_numeric
		WHERE run_id = @run_id
	`, datasetID(), etlRunsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "status", Value: "SUCCESS"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "cleaned_uri", Value: cleanedURI},
		{Name: "rows_input", Value: counts.Input},
		{Name: "rows_kept", Value: counts.Kept},
		{Name: "rows_duplicate", Value: counts.Duplicates},
		{Name: "rows_incomplete", Value: counts.Incomplete},
		{Name: "rows_bad_date", Value: counts.MalformedDates},
		{Name: "rows_bad_numeric", Value: counts.MalformedNumerics},
		{Name: "run_id", Value: runID},
	}

	if err := runAndWait(ctx, q); err != nil {
		return fmt.Errorf("MarkEtlRunSucceeded: %w", err)
	}

	return nil
}

// ListRecentRunsWithClient returns the most recent etl_runs rows, newest first.
func ListRecentRunsWithClient(ctx context.Context, client *bigquery.Client, limit int) ([]*bq.EtlRunRow, error) {
	if limit <= 0 {
		limit = 50
	}

	q := client.Query(fmt.Sprintf(`
		SELECT
			run_id,
			gcs_uri,
			cleaned_uri,
			started_ts,
			finished_ts,
			status,
			error_message,
			rows_input,
			rows_kept,
			rows_duplicate,
			rows_incomplete,
			rows_bad_date,
			rows_bad_numeric
		FROM %s.%s
		ORDER BY started_ts DESC
		LIMIT @limit
	`, datasetID(), etlRunsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: limit},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListRecentRuns: query read: %w", err)
	}

	var rows []*bq.EtlRunRow
	for {
		var r bq.EtlRunRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListRecentRuns: iter next: %w", err)
		}
		rows = append(rows, &r)
	}

	return rows, nil
}

// runAndWait runs a query job and waits for it to finish.
func runAndWait(ctx context.Context, q *bigquery.Query) error {
	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
