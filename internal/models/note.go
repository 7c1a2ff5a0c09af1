package models

import "time"

// Note は動画から生成された学習ノート
type Note struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id"`
	VideoURL    string    `json:"video_url"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Model       string    `json:"model,omitempty"`
	PayloadKind string    `json:"payload_kind,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
