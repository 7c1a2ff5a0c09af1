package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nota/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNoteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewNoteRepository(openTestDB(t))

	note := &models.Note{
		VideoID:     "dQw4w9WgXcQ",
		VideoURL:    "https://youtu.be/dQw4w9WgXcQ",
		Title:       "Some Video",
		Content:     "# Summary\n\ncontent",
		Model:       "gemini-2.5-flash",
		PayloadKind: "transcript",
	}
	if err := repo.Create(ctx, note); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.ID == "" {
		t.Fatal("Create must assign an ID")
	}

	got, err := repo.GetByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Content != note.Content || got.VideoID != note.VideoID {
		t.Errorf("GetByID = %+v", got)
	}

	latest, err := repo.GetLatestByVideoID(ctx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetLatestByVideoID: %v", err)
	}
	if latest == nil || latest.ID != note.ID {
		t.Errorf("GetLatestByVideoID = %+v", latest)
	}

	notes, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("ListRecent returned %d notes", len(notes))
	}

	note.Title = "Edited Title"
	note.Content = "# Edited"
	if err := repo.Update(ctx, note); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.GetByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if updated.Title != "Edited Title" || updated.Content != "# Edited" {
		t.Errorf("updated note = %+v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("updated_at must not precede created_at")
	}

	if err := repo.Delete(ctx, note.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := repo.GetByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("note should be gone after delete")
	}
}

func TestNoteRepositoryGetMissing(t *testing.T) {
	repo := NewNoteRepository(openTestDB(t))
	got, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing note, got %+v", got)
	}
}

func TestJobRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(openTestDB(t))

	low := &models.ProcessingJob{
		VideoURL: "https://youtu.be/aaaaaaaaaaa",
		Type:     models.JobTypeSummarize,
		Priority: models.JobPriorityBatch,
	}
	high := &models.ProcessingJob{
		VideoURL: "https://youtu.be/bbbbbbbbbbb",
		Type:     models.JobTypeSummarize,
		Priority: models.JobPriorityImmediate,
		Status:   models.JobStatusQueued,
	}
	if err := repo.Create(ctx, low); err != nil {
		t.Fatalf("Create low: %v", err)
	}
	if err := repo.Create(ctx, high); err != nil {
		t.Fatalf("Create high: %v", err)
	}

	// 優先度の高い（値の小さい）ジョブが先に出てくる
	next, err := repo.GetNextQueued(ctx)
	if err != nil {
		t.Fatalf("GetNextQueued: %v", err)
	}
	if next == nil || next.ID != high.ID {
		t.Fatalf("GetNextQueued = %+v, want high-priority job", next)
	}

	if err := repo.Start(ctx, next.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := repo.Complete(ctx, next.ID, "note-1"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	done, err := repo.GetByID(ctx, next.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if done.Status != models.JobStatusCompleted {
		t.Errorf("status = %q", done.Status)
	}
	if done.NoteID == nil || *done.NoteID != "note-1" {
		t.Errorf("note_id = %v", done.NoteID)
	}
	if done.StartedAt == nil || done.CompletedAt == nil {
		t.Error("timestamps not recorded")
	}

	// 残るキュー済みジョブは低優先度の方
	next, err = repo.GetNextQueued(ctx)
	if err != nil {
		t.Fatalf("GetNextQueued: %v", err)
	}
	if next == nil || next.ID != low.ID {
		t.Errorf("GetNextQueued = %+v, want remaining job", next)
	}
}

func TestJobRepositoryCleanupCompleted(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewJobRepository(db)

	oldJob := &models.ProcessingJob{VideoURL: "https://youtu.be/aaaaaaaaaaa", Type: models.JobTypeSummarize}
	recentJob := &models.ProcessingJob{VideoURL: "https://youtu.be/bbbbbbbbbbb", Type: models.JobTypeSummarize}
	queuedJob := &models.ProcessingJob{VideoURL: "https://youtu.be/ccccccccccc", Type: models.JobTypeSummarize}
	for _, j := range []*models.ProcessingJob{oldJob, recentJob, queuedJob} {
		if err := repo.Create(ctx, j); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Complete(ctx, oldJob.ID, ""); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := repo.Complete(ctx, recentJob.ID, ""); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// 片方だけ保持期間を超えた完了時刻にする
	backdated := time.Now().AddDate(0, 0, -30)
	if _, err := db.ExecContext(ctx, `UPDATE processing_jobs SET completed_at = ? WHERE id = ?`, backdated, oldJob.ID); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	removed, err := repo.CleanupCompleted(ctx, 7)
	if err != nil {
		t.Fatalf("CleanupCompleted: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if got, _ := repo.GetByID(ctx, oldJob.ID); got != nil {
		t.Error("old completed job should be removed")
	}
	if got, _ := repo.GetByID(ctx, recentJob.ID); got == nil {
		t.Error("recently completed job must be retained")
	}
	if got, _ := repo.GetByID(ctx, queuedJob.ID); got == nil {
		t.Error("queued job must never be cleaned up")
	}
}

func TestJobRepositoryFailAndRetry(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(openTestDB(t))

	job := &models.ProcessingJob{
		VideoURL: "https://youtu.be/ccccccccccc",
		Type:     models.JobTypeSummarize,
	}
	if err := repo.Create(ctx, job); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Start(ctx, job.ID); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := repo.Fail(ctx, job.ID, "provider unavailable"); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	failed, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if failed.Status != models.JobStatusFailed || failed.Error != "provider unavailable" {
		t.Errorf("failed job = %+v", failed)
	}

	if err := repo.Retry(ctx, job.ID); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	retried, err := repo.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if retried.Status != models.JobStatusQueued {
		t.Errorf("status after retry = %q", retried.Status)
	}
	if retried.RetryCount != 1 {
		t.Errorf("retry_count = %d, want 1", retried.RetryCount)
	}
	if retried.Error != "" {
		t.Errorf("error should be cleared, got %q", retried.Error)
	}
}
