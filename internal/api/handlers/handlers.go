package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rounitsingh/retail-etl/internal/api/middleware"
	"github.com/rounitsingh/retail-etl/internal/bigquery"
	"github.com/rounitsingh/retail-etl/internal/gcs"
	"github.com/rounitsingh/retail-etl/internal/jobs"
	"github.com/rounitsingh/retail-etl/internal/pipeline"
	"github.com/rs/zerolog"
)

// FilesHandler handles raw file upload and clean-job endpoints.
type FilesHandler struct {
	storage   gcs.StorageService
	publisher jobs.Publisher
	bucket    string
	log       zerolog.Logger
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(storage gcs.StorageService, publisher jobs.Publisher, bucket string, log zerolog.Logger) *FilesHandler {
	return &FilesHandler{
		storage:   storage,
		publisher: publisher,
		bucket:    bucket,
		log:       log,
	}
}

// UploadFile handles POST /api/files/upload?filename=sales.csv
// The request body is the raw CSV payload.
func (h *FilesHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "sales.csv"
	}
	// Clean filename - remove any path or query parameters
	if idx := strings.Index(filename, "?"); idx > 0 {
		filename = filename[:idx]
	}
	filename = filepath.Base(filename)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read upload body")
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(data) == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Request body is empty")
		return
	}

	objectName := pipeline.RawPrefix() + uuid.NewString() + "-" + filename
	gcsURI := fmt.Sprintf("gs://%s/%s", h.bucket, objectName)

	if err := h.storage.WriteObject(ctx, h.bucket, objectName, data, "text/csv"); err != nil {
		h.log.Error().Err(err).Str("gcs_uri", gcsURI).Msg("Failed to upload file")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	h.log.Info().
		Str("gcs_uri", gcsURI).
		Int("bytes", len(data)).
		Msg("File uploaded successfully")

	// Enqueue cleaning for the uploaded file
	job := &jobs.CleanFileJob{GCSURI: gcsURI}
	if err := h.publisher.PublishCleanFile(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue clean job")
		middleware.WriteError(w, http.StatusInternalServerError, "File uploaded but cleaning could not be enqueued")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"gcs_uri": gcsURI,
		"job_id":  job.JobID,
		"status":  string(job.Status),
	})
}

// EnqueueClean handles POST /api/files/clean
func (h *FilesHandler) EnqueueClean(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GCSURI string `json:"gcs_uri"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.GCSURI == "" {
		middleware.WriteError(w, http.StatusBadRequest, "gcs_uri is required")
		return
	}

	ctx := r.Context()

	job := &jobs.CleanFileJob{GCSURI: req.GCSURI}
	if err := h.publisher.PublishCleanFile(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue clean job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue clean job")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("gcs_uri", req.GCSURI).Msg("Clean job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id":  job.JobID,
		"gcs_uri": req.GCSURI,
		"status":  string(job.Status),
	})
}

// RunsHandler handles ETL run endpoints.
type RunsHandler struct {
	repo bigquery.WarehouseRepository
	log  zerolog.Logger
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(repo bigquery.WarehouseRepository, log zerolog.Logger) *RunsHandler {
	return &RunsHandler{
		repo: repo,
		log:  log,
	}
}

// ListRuns handles GET /api/runs
func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := h.repo.ListRecentRuns(ctx, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list runs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

// SalesHandler handles sales reporting endpoints.
type SalesHandler struct {
	repo bigquery.WarehouseRepository
	log  zerolog.Logger
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(repo bigquery.WarehouseRepository, log zerolog.Logger) *SalesHandler {
	return &SalesHandler{
		repo: repo,
		log:  log,
	}
}

// regionSummary is the JSON shape for one region's aggregate.
type regionSummary struct {
	Region  string `json:"region"`
	Orders  int64  `json:"orders"`
	Units   int64  `json:"units"`
	Revenue string `json:"revenue"`
}

// SummaryByRegion handles GET /api/sales/summary
func (h *SalesHandler) SummaryByRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	startDateStr := query.Get("start_date")
	endDateStr := query.Get("end_date")

	var startDate, endDate civil.Date
	var err error

	if startDateStr != "" {
		startDate, err = civil.ParseDate(startDateStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid start_date format")
			return
		}
	} else {
		startDate = civil.DateOf(time.Now().AddDate(-1, 0, 0)) // 1 year ago
	}

	if endDateStr != "" {
		endDate, err = civil.ParseDate(endDateStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid end_date format")
			return
		}
	} else {
		endDate = civil.DateOf(time.Now())
	}

	totals, err := h.repo.TotalsByRegion(ctx, startDate, endDate)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to query region totals")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to query region totals")
		return
	}

	summaries := make([]regionSummary, 0, len(totals))
	for _, t := range totals {
		revenue := "0.00"
		if t.Revenue != nil {
			revenue = t.Revenue.FloatString(2)
		}
		summaries = append(summaries, regionSummary{
			Region:  t.Region,
			Orders:  t.Orders,
			Units:   t.Units,
			Revenue: revenue,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"start_date": startDate.String(),
		"end_date":   endDate.String(),
		"regions":    summaries,
	})
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	filter := jobs.JobFilter{
		GCSURI: query.Get("gcs_uri"),
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
