package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"nota/internal/storage"
)

// NoteHandler はノートAPIのハンドラー
type NoteHandler struct {
	repo *storage.NoteRepository
}

// NewNoteHandler は新しいNoteHandlerを作成
func NewNoteHandler(repo *storage.NoteRepository) *NoteHandler {
	return &NoteHandler{repo: repo}
}

// List はノート一覧を取得
func (h *NoteHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	notes, err := h.repo.ListRecent(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, notes)
}

// Get はノートを取得
func (h *NoteHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	note, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if note == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "note not found"})
	}

	return c.JSON(http.StatusOK, note)
}

// GetByVideo は動画IDで最新のノートを取得
func (h *NoteHandler) GetByVideo(c echo.Context) error {
	ctx := c.Request().Context()
	videoID := c.Param("videoID")

	note, err := h.repo.GetLatestByVideoID(ctx, videoID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if note == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "note not found"})
	}

	return c.JSON(http.StatusOK, note)
}

// UpdateRequest はノート更新リクエスト
type UpdateRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Update はノートのタイトル・本文を更新
func (h *NoteHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	note, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if note == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "note not found"})
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := h.repo.Update(ctx, note); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, note)
}

// Delete はノートを削除
func (h *NoteHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	note, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if note == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "note not found"})
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
