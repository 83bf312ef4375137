package inmemory

import (
	"context"
	"testing"

	"github.com/rounitsingh/retail-etl/internal/jobs"
)

func TestStore_SaveAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	job := &jobs.CleanFileJob{JobID: "j1", GCSURI: "gs://b/raw/a.csv", Status: jobs.JobStatusPending}
	if err := store.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}

	got, err := store.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.GCSURI != job.GCSURI {
		t.Errorf("got %q, want %q", got.GCSURI, job.GCSURI)
	}

	// Mutating the returned copy must not affect the stored job.
	got.Status = jobs.JobStatusFailed
	again, _ := store.GetJob(ctx, "j1")
	if again.Status != jobs.JobStatusPending {
		t.Errorf("stored job mutated externally: %s", again.Status)
	}
}

func TestStore_SaveRequiresID(t *testing.T) {
	store := NewStore()
	if err := store.SaveJob(context.Background(), &jobs.CleanFileJob{}); err == nil {
		t.Fatal("expected an error for a job without an id")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore()
	if _, err := store.GetJob(context.Background(), "nope"); err == nil {
		t.Fatal("expected an error for a missing job")
	}
}

func TestStore_ListJobsFiltering(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	seed := []*jobs.CleanFileJob{
		{JobID: "j1", GCSURI: "gs://b/raw/a.csv", Status: jobs.JobStatusCompleted},
		{JobID: "j2", GCSURI: "gs://b/raw/a.csv", Status: jobs.JobStatusFailed},
		{JobID: "j3", GCSURI: "gs://b/raw/b.csv", Status: jobs.JobStatusCompleted},
	}
	for _, j := range seed {
		if err := store.SaveJob(ctx, j); err != nil {
			t.Fatalf("SaveJob: %v", err)
		}
	}

	byURI, err := store.ListJobs(ctx, jobs.JobFilter{GCSURI: "gs://b/raw/a.csv"})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(byURI) != 2 {
		t.Errorf("got %d jobs for uri filter, want 2", len(byURI))
	}

	byStatus, err := store.ListJobs(ctx, jobs.JobFilter{Status: jobs.JobStatusCompleted})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(byStatus) != 2 {
		t.Errorf("got %d completed jobs, want 2", len(byStatus))
	}

	limited, err := store.ListJobs(ctx, jobs.JobFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d jobs with limit 1, want 1", len(limited))
	}
}

func TestStore_UpdateJobStatus(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.SaveJob(ctx, &jobs.CleanFileJob{JobID: "j1", Status: jobs.JobStatusRunning})

	if err := store.UpdateJobStatus(ctx, "j1", jobs.JobStatusFailed, "boom"); err != nil {
		t.Fatalf("UpdateJobStatus: %v", err)
	}

	got, _ := store.GetJob(ctx, "j1")
	if got.Status != jobs.JobStatusFailed || got.Error != "boom" {
		t.Errorf("got status=%s error=%q", got.Status, got.Error)
	}

	if err := store.UpdateJobStatus(ctx, "missing", jobs.JobStatusFailed, ""); err == nil {
		t.Fatal("expected an error for a missing job")
	}
}
