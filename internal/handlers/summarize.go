package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"nota/internal/models"
	"nota/internal/notes"
	"nota/internal/storage"
)

// Summarizer は要約サービスのインターフェース
type Summarizer interface {
	SummarizeURL(ctx context.Context, rawURL string) notes.Result
}

// SummarizeHandler は同期要約APIのハンドラー
type SummarizeHandler struct {
	service Summarizer
	repo    *storage.NoteRepository
	model   string // 記録用のモデルラベル
}

// NewSummarizeHandler は新しいSummarizeHandlerを作成
// repoがnilの場合、結果は永続化されない
func NewSummarizeHandler(service Summarizer, repo *storage.NoteRepository, model string) *SummarizeHandler {
	return &SummarizeHandler{service: service, repo: repo, model: model}
}

// SummarizeRequest は要約リクエスト
type SummarizeRequest struct {
	URL string `json:"url"`
}

// Summarize はURLを受け取り、同期的に要約を生成して返す
func (h *SummarizeHandler) Summarize(c echo.Context) error {
	ctx := c.Request().Context()

	var req SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url is required"})
	}

	result := h.service.SummarizeURL(ctx, req.URL)
	if !result.Success {
		return c.JSON(statusForFailure(result), result)
	}

	// 成功した要約はノートとして保存する（保存失敗はレスポンスを妨げない）
	if h.repo != nil {
		note := &models.Note{
			VideoID:     result.VideoID,
			VideoURL:    result.VideoURL,
			Title:       result.Title,
			Content:     result.Data,
			Model:       h.model,
			PayloadKind: string(result.PayloadKind),
		}
		if err := h.repo.Create(ctx, note); err != nil {
			log.Error().Err(err).Str("video_id", result.VideoID).Msg("failed to persist note")
		}
	}

	return c.JSON(http.StatusOK, result)
}

// statusForFailure は失敗結果をHTTPステータスに対応付ける
func statusForFailure(result notes.Result) int {
	switch result.Error {
	case notes.MsgInvalidURL:
		return http.StatusBadRequest
	case notes.MsgQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
