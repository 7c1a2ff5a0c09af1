package notes

import (
	"nota/internal/acquire"
	"nota/internal/summarize"
)

// 利用者向けの固定メッセージ
const (
	MsgInvalidURL    = "Invalid YouTube URL format. Please provide a valid YouTube video link."
	MsgQuotaExceeded = "AI quota exceeded. All summarization models are currently rate limited. Please try again later."
)

// Result は要約リクエストの最終結果
// Success が true なら Data のみ、false なら Error のみが意味を持つ
type Result struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`

	// 永続化用の付随情報（レスポンスには含めない）
	VideoID     string       `json:"-"`
	VideoURL    string       `json:"-"`
	Title       string       `json:"-"`
	PayloadKind acquire.Kind `json:"-"`
}

// successResult は成功結果を組み立てる
func successResult(data string) Result {
	return Result{Success: true, Data: data}
}

// failureResult は失敗結果を組み立てる
// クォータ枯渇は専用メッセージに変換し、それ以外は原因を添える
func failureResult(err error) Result {
	if summarize.IsQuotaExhausted(err) {
		return Result{Success: false, Error: MsgQuotaExceeded}
	}
	return Result{Success: false, Error: "Failed to generate summary: " + err.Error()}
}
