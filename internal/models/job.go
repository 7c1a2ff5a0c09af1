package models

import "time"

// ProcessingJob は非同期処理タスク
type ProcessingJob struct {
	ID          string     `json:"id"`
	VideoURL    string     `json:"video_url"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	RetryCount  int        `json:"retry_count"`
	Error       string     `json:"error,omitempty"`
	NoteID      *string    `json:"note_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ジョブタイプ
const (
	JobTypeSummarize = "summarize"
)

// ジョブステータス
const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// ジョブ優先度
const (
	JobPriorityImmediate = 0 // 即時処理
	JobPriorityNormal    = 5 // 通常処理
	JobPriorityBatch     = 9 // バッチ処理
)
