package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
	"github.com/ternarybob/indago/internal/storage/badger"
)

func openTestStorage(t *testing.T) interfaces.StorageManager {
	t.Helper()
	store, err := badger.NewManager(arbor.NewLogger(), &common.BadgerConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestScheduler(t *testing.T, store interfaces.StorageManager) *Service {
	t.Helper()
	return NewService(common.NewDefaultConfig(), store, nil, arbor.NewLogger())
}

func TestStartFailsInterruptedJobs(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()

	if err := store.JobStorage().CreateJob(ctx, &models.LeadJob{ID: "job-pending"}); err != nil {
		t.Fatal(err)
	}
	if err := store.JobStorage().CreateJob(ctx, &models.LeadJob{ID: "job-running"}); err != nil {
		t.Fatal(err)
	}
	if err := store.JobStorage().MarkJobRunning(ctx, "job-running"); err != nil {
		t.Fatal(err)
	}
	if err := store.JobStorage().CreateJob(ctx, &models.LeadJob{ID: "job-done"}); err != nil {
		t.Fatal(err)
	}
	if err := store.JobStorage().CompleteJob(ctx, "job-done", nil); err != nil {
		t.Fatal(err)
	}

	service := newTestScheduler(t, store)
	if err := service.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer service.Stop()

	for _, id := range []string{"job-pending", "job-running"} {
		job, err := store.JobStorage().GetJob(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if job.Status != models.JobStatusFailed {
			t.Errorf("Expected %s to be failed after restart cleanup, got %s", id, job.Status)
		}
		if job.ErrorMessage != "Service restarted while job was running" {
			t.Errorf("Unexpected error message: %q", job.ErrorMessage)
		}
	}

	done, err := store.JobStorage().GetJob(ctx, "job-done")
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != models.JobStatusCompleted {
		t.Errorf("Completed job must survive restart cleanup, got %s", done.Status)
	}
}

func TestRunMaintenanceNowFailsStaleJobs(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()

	for _, id := range []string{"job-fresh", "job-stale"} {
		if err := store.JobStorage().CreateJob(ctx, &models.LeadJob{ID: id}); err != nil {
			t.Fatal(err)
		}
		if err := store.JobStorage().MarkJobRunning(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	// Rewind the stale job's heartbeat well past the 10 minute cutoff
	stale, err := store.JobStorage().GetJob(ctx, "job-stale")
	if err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-30 * time.Minute)
	stale.LastHeartbeat = &old
	db := store.DB().(interface {
		Upsert(key, value interface{}) error
	})
	if err := db.Upsert(stale.ID, stale); err != nil {
		t.Fatal(err)
	}

	service := newTestScheduler(t, store)
	if err := service.RunMaintenanceNow(ctx); err != nil {
		t.Fatalf("RunMaintenanceNow failed: %v", err)
	}

	got, err := store.JobStorage().GetJob(ctx, "job-stale")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.JobStatusFailed {
		t.Errorf("Expected stale job failed, got %s", got.Status)
	}

	fresh, err := store.JobStorage().GetJob(ctx, "job-fresh")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Status != models.JobStatusRunning {
		t.Errorf("Fresh job must keep running, got %s", fresh.Status)
	}
}

func TestRunMaintenanceNowDeletesExpiredRecords(t *testing.T) {
	store := openTestStorage(t)
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -31)
	if err := store.JobStorage().CreateJob(ctx, &models.LeadJob{ID: "job-old", CreatedAt: old}); err != nil {
		t.Fatal(err)
	}
	if err := store.JobStorage().CompleteJob(ctx, "job-old", nil); err != nil {
		t.Fatal(err)
	}
	if err := store.JobStorage().CreateJob(ctx, &models.LeadJob{ID: "job-new"}); err != nil {
		t.Fatal(err)
	}
	if err := store.JobStorage().CompleteJob(ctx, "job-new", nil); err != nil {
		t.Fatal(err)
	}

	profiles := []models.CandidateProfile{
		{ID: "prof-old", JobID: "job-old", ScrapedAt: old},
		{ID: "prof-new", JobID: "job-new", ScrapedAt: time.Now()},
	}
	if err := store.ProfileStorage().SaveProfiles(ctx, profiles); err != nil {
		t.Fatal(err)
	}

	service := newTestScheduler(t, store)
	if err := service.RunMaintenanceNow(ctx); err != nil {
		t.Fatalf("RunMaintenanceNow failed: %v", err)
	}

	if _, err := store.JobStorage().GetJob(ctx, "job-old"); err == nil {
		t.Error("Expected expired job to be deleted")
	}
	if _, err := store.JobStorage().GetJob(ctx, "job-new"); err != nil {
		t.Errorf("Recent job must survive cleanup: %v", err)
	}

	count, err := store.ProfileStorage().CountProfiles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 surviving profile, got %d", count)
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	store := openTestStorage(t)
	service := newTestScheduler(t, store)

	if service.IsRunning() {
		t.Error("New scheduler should not be running")
	}

	if err := service.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !service.IsRunning() {
		t.Error("Expected scheduler running after Start")
	}
	if err := service.Start(); err == nil {
		t.Error("Expected error starting twice")
	}

	if err := service.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if service.IsRunning() {
		t.Error("Expected scheduler stopped")
	}
	if err := service.Stop(); err != nil {
		t.Errorf("Stopping a stopped scheduler should be a no-op, got: %v", err)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	store := openTestStorage(t)
	config := common.NewDefaultConfig()
	config.Jobs.CleanupSchedule = "every hour on the hour"
	service := NewService(config, store, nil, arbor.NewLogger())

	if err := service.Start(); err == nil {
		t.Error("Expected error for invalid cron expression")
		service.Stop()
	}
}
