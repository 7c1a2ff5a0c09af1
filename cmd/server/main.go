package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"nota/internal/acquire"
	"nota/internal/handlers"
	"nota/internal/models"
	"nota/internal/notes"
	"nota/internal/storage"
	"nota/internal/summarize"
	"nota/internal/version"
	"nota/internal/webfetch"
	"nota/internal/worker"
	"nota/internal/youtube"
)

func main() {
	// .envファイルを読み込み（存在しない場合はスキップ）
	_ = godotenv.Load()

	setupLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 環境変数からポート番号を取得（デフォルト: 8080）
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/nota.db"
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("failed to open database")
	}
	defer db.Close()

	noteRepo := storage.NewNoteRepository(db)
	jobRepo := storage.NewJobRepository(db)

	// AIプロバイダは起動時に一度だけ構築する
	model := os.Getenv("AI_MODEL")
	provider, err := summarize.NewProvider(ctx, summarize.Config{
		APIKey:  os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY"),
		Model:   model,
		Retry:   summarize.DefaultRetryPolicy(),
		Limiter: summarize.NewSharedLimiter(1, 2),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure AI provider")
	}
	log.Info().Str("provider", provider.Name()).Msg("AI provider configured")

	ytClient := youtube.NewClient()
	pipeline, closePipeline := buildPipeline(ytClient)
	defer closePipeline()

	service := notes.NewService(ytClient, pipeline, provider)
	modelLabel := model
	if modelLabel == "" {
		modelLabel = provider.Name()
	}

	// 非同期ジョブワーカー
	w := worker.NewWorker(jobRepo)
	w.RegisterHandler(models.JobTypeSummarize, func(ctx context.Context, job *models.ProcessingJob) (string, error) {
		result := service.SummarizeURL(ctx, job.VideoURL)
		if !result.Success {
			return "", fmt.Errorf("%s", result.Error)
		}
		note := &models.Note{
			VideoID:     result.VideoID,
			VideoURL:    result.VideoURL,
			Title:       result.Title,
			Content:     result.Data,
			Model:       modelLabel,
			PayloadKind: string(result.PayloadKind),
		}
		if err := noteRepo.Create(ctx, note); err != nil {
			return "", err
		}
		return note.ID, nil
	})
	w.Start(ctx)
	defer w.Stop()

	// Echoインスタンスの作成
	e := echo.New()
	e.HideBanner = true

	// ミドルウェアの設定
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// ルートの登録
	summarizeHandler := handlers.NewSummarizeHandler(service, noteRepo, modelLabel)
	jobHandler := handlers.NewJobHandler(jobRepo, w)
	noteHandler := handlers.NewNoteHandler(noteRepo)

	e.POST("/api/summarize", summarizeHandler.Summarize)
	e.POST("/api/jobs", jobHandler.Submit)
	e.GET("/api/jobs", jobHandler.List)
	e.GET("/api/jobs/:id", jobHandler.Get)
	e.GET("/api/notes", noteHandler.List)
	e.GET("/api/notes/:id", noteHandler.Get)
	e.GET("/api/notes/video/:videoID", noteHandler.GetByVideo)
	e.PUT("/api/notes/:id", noteHandler.Update)
	e.DELETE("/api/notes/:id", noteHandler.Delete)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"version": version.Version,
		})
	})

	// サーバー起動
	log.Info().Str("version", version.Version).Str("port", port).Msg("starting server")
	if err := e.Start(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// buildPipeline はコンテンツ取得パイプラインを構築する
// BROWSER_FETCH=1 の場合、ページ層はヘッドレスブラウザ経由で取得する
func buildPipeline(ytClient *youtube.Client) (*acquire.Pipeline, func()) {
	closeFn := func() {}

	var fetcher acquire.PageFetcher = acquire.NewHTTPFetcher()
	if os.Getenv("BROWSER_FETCH") == "1" {
		browser, err := webfetch.NewClient(&webfetch.Options{Stealth: true})
		if err != nil {
			log.Warn().Err(err).Msg("browser fetcher unavailable, falling back to plain HTTP")
		} else {
			fetcher = browser
			closeFn = func() { browser.Close() }
		}
	}

	pipeline := acquire.NewPipeline(
		acquire.NewPageLayer(fetcher),
		acquire.NewTranscriptServiceLayer(os.Getenv("TRANSCRIPT_SERVICE_URL")),
		acquire.NewClientLibraryLayer(ytClient, os.Getenv("CAPTION_LANG")),
		acquire.NewAudioSampleLayer(ytClient),
		acquire.NewMetadataLayer(),
	)
	return pipeline, closeFn
}

// setupLogger はログレベルと出力形式を設定する
func setupLogger() {
	level := zerolog.InfoLevel
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		if parsed, err := zerolog.ParseLevel(l); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("LOG_PRETTY") == "1" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
