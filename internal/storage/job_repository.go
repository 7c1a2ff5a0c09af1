package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"nota/internal/models"
)

// JobRepository はジョブのデータアクセス層
type JobRepository struct {
	db *DB
}

// NewJobRepository は新しいJobRepositoryを作成
func NewJobRepository(db *DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create は新しいジョブを作成
func (r *JobRepository) Create(ctx context.Context, job *models.ProcessingJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = models.JobStatusQueued
	}
	job.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO processing_jobs (id, video_url, type, status, priority, retry_count, error, note_id, created_at, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.VideoURL, job.Type, job.Status, job.Priority,
		job.RetryCount, nullString(job.Error), job.NoteID,
		job.CreatedAt, job.StartedAt, job.CompletedAt,
	)
	return err
}

// GetByID はIDでジョブを取得。見つからない場合はnilを返す
func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.ProcessingJob, error) {
	row := r.db.QueryRowContext(ctx, selectJob+` WHERE id = ?`, id)
	return scanJob(row)
}

// GetNextQueued は次に処理すべきキュー済みジョブを取得（優先度順）
func (r *JobRepository) GetNextQueued(ctx context.Context) (*models.ProcessingJob, error) {
	row := r.db.QueryRowContext(ctx, selectJob+`
		WHERE status = ? ORDER BY priority ASC, created_at ASC LIMIT 1`,
		models.JobStatusQueued)
	return scanJob(row)
}

// Start はジョブを開始状態にする
func (r *JobRepository) Start(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs SET status = ?, started_at = ? WHERE id = ?`,
		models.JobStatusRunning, now, id)
	return err
}

// Complete はジョブを完了状態にし、生成されたノートを紐付ける
func (r *JobRepository) Complete(ctx context.Context, id string, noteID string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs SET status = ?, note_id = ?, completed_at = ? WHERE id = ?`,
		models.JobStatusCompleted, nullString(noteID), now, id)
	return err
}

// Fail はジョブを失敗状態にする
func (r *JobRepository) Fail(ctx context.Context, id string, errorMsg string) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs SET status = ?, error = ?, completed_at = ? WHERE id = ?`,
		models.JobStatusFailed, errorMsg, now, id)
	return err
}

// Retry はジョブを再試行キューに戻す
func (r *JobRepository) Retry(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE processing_jobs
		SET status = ?, retry_count = retry_count + 1, error = NULL, started_at = NULL, completed_at = NULL
		WHERE id = ?`,
		models.JobStatusQueued, id)
	return err
}

// ListRecent は最近のジョブ一覧を取得
func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]models.ProcessingJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, selectJob+` ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// ListByStatus はステータスでジョブ一覧を取得
func (r *JobRepository) ListByStatus(ctx context.Context, status string, limit int) ([]models.ProcessingJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, selectJob+`
		WHERE status = ? ORDER BY created_at DESC LIMIT ?`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// CleanupCompleted は完了済みジョブを削除（指定日数より古いもの）
func (r *JobRepository) CleanupCompleted(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM processing_jobs WHERE status = ? AND completed_at < ?`,
		models.JobStatusCompleted, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const selectJob = `
	SELECT id, video_url, type, status, priority, retry_count, error, note_id, created_at, started_at, completed_at
	FROM processing_jobs`

func scanJob(row *sql.Row) (*models.ProcessingJob, error) {
	var j models.ProcessingJob
	var errMsg sql.NullString
	err := row.Scan(&j.ID, &j.VideoURL, &j.Type, &j.Status, &j.Priority,
		&j.RetryCount, &errMsg, &j.NoteID, &j.CreatedAt, &j.StartedAt, &j.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	j.Error = errMsg.String
	return &j, nil
}

func scanJobs(rows *sql.Rows) ([]models.ProcessingJob, error) {
	var jobs []models.ProcessingJob
	for rows.Next() {
		var j models.ProcessingJob
		var errMsg sql.NullString
		if err := rows.Scan(&j.ID, &j.VideoURL, &j.Type, &j.Status, &j.Priority,
			&j.RetryCount, &errMsg, &j.NoteID, &j.CreatedAt, &j.StartedAt, &j.CompletedAt); err != nil {
			return nil, err
		}
		j.Error = errMsg.String
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
