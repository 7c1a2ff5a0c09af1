package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"nota/internal/models"
)

// NoteRepository はノートのデータアクセス層
type NoteRepository struct {
	db *DB
}

// NewNoteRepository は新しいNoteRepositoryを作成
func NewNoteRepository(db *DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create は新しいノートを作成
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, video_id, video_url, title, content, model, payload_kind, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.VideoID, note.VideoURL, note.Title, note.Content,
		note.Model, note.PayloadKind, note.CreatedAt, note.UpdatedAt,
	)
	return err
}

// GetByID はIDでノートを取得。見つからない場合はnilを返す
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, video_id, video_url, title, content, model, payload_kind, created_at, updated_at
		FROM notes WHERE id = ?`, id)
	return scanNote(row)
}

// GetLatestByVideoID は動画IDで最新のノートを取得
func (r *NoteRepository) GetLatestByVideoID(ctx context.Context, videoID string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, video_id, video_url, title, content, model, payload_kind, created_at, updated_at
		FROM notes WHERE video_id = ?
		ORDER BY created_at DESC LIMIT 1`, videoID)
	return scanNote(row)
}

// ListRecent は最近のノート一覧を取得
func (r *NoteRepository) ListRecent(ctx context.Context, limit int) ([]models.Note, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, video_id, video_url, title, content, model, payload_kind, created_at, updated_at
		FROM notes ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.VideoID, &n.VideoURL, &n.Title, &n.Content,
			&n.Model, &n.PayloadKind, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update はノートの内容を更新
func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	note.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, `
		UPDATE notes SET title = ?, content = ?, model = ?, payload_kind = ?, updated_at = ?
		WHERE id = ?`,
		note.Title, note.Content, note.Model, note.PayloadKind, note.UpdatedAt, note.ID,
	)
	return err
}

// Delete はノートを削除
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	return err
}

// scanNote は1行をNoteにスキャンする。行が無い場合は (nil, nil)
func scanNote(row *sql.Row) (*models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.VideoID, &n.VideoURL, &n.Title, &n.Content,
		&n.Model, &n.PayloadKind, &n.CreatedAt, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}
