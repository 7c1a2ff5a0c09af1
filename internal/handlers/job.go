package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"nota/internal/models"
	"nota/internal/storage"
	"nota/internal/worker"
	"nota/internal/youtube"
)

// JobHandler はジョブAPIのハンドラー
type JobHandler struct {
	repo   *storage.JobRepository
	worker *worker.Worker
}

// NewJobHandler は新しいJobHandlerを作成
func NewJobHandler(repo *storage.JobRepository, w *worker.Worker) *JobHandler {
	return &JobHandler{repo: repo, worker: w}
}

// SubmitRequest はジョブ投入リクエスト
type SubmitRequest struct {
	URL      string `json:"url"`
	Priority *int   `json:"priority,omitempty"`
}

// Submit は要約ジョブをキューに投入する
func (h *JobHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if _, ok := youtube.ExtractVideoID(req.URL); !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid YouTube URL"})
	}

	priority := models.JobPriorityNormal
	if req.Priority != nil {
		priority = *req.Priority
	}

	job, err := h.worker.SubmitJob(ctx, models.JobTypeSummarize, req.URL, priority)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusAccepted, job)
}

// List はジョブ一覧を取得
func (h *JobHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	status := c.QueryParam("status")

	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	var jobs []models.ProcessingJob
	var err error

	if status != "" {
		jobs, err = h.repo.ListByStatus(ctx, status, limit)
	} else {
		jobs, err = h.repo.ListRecent(ctx, limit)
	}

	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, jobs)
}

// Get はジョブを取得
func (h *JobHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	job, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if job == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}

	return c.JSON(http.StatusOK, job)
}
