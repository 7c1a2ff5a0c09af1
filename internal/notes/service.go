package notes

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"nota/internal/acquire"
	"nota/internal/summarize"
	"nota/internal/youtube"
)

// 全層が辞退した場合。メタデータ合成層があるため通常は到達しない
var errAllLayersDeclined = errors.New("no content could be acquired for this video")

// MetadataFetcher は動画メタデータのベストエフォート取得
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, id string) youtube.Metadata
}

// Acquirer はコンテンツ取得パイプライン
type Acquirer interface {
	Run(ctx context.Context, req *acquire.Request) *acquire.Payload
}

// Service はURL検証から要約生成までの一連の流れを統括する
type Service struct {
	metadata MetadataFetcher
	pipeline Acquirer
	provider summarize.Provider
}

// NewService は新しいServiceを作成
func NewService(metadata MetadataFetcher, pipeline Acquirer, provider summarize.Provider) *Service {
	return &Service{
		metadata: metadata,
		pipeline: pipeline,
		provider: provider,
	}
}

// SummarizeURL はURLを受け取り、検証・取得・要約を行って結果を返す
// URLが不正な場合はネットワークに触れずに即座に失敗を返す
func (s *Service) SummarizeURL(ctx context.Context, rawURL string) Result {
	ref, ok := youtube.NewVideoReference(rawURL)
	if !ok {
		log.Info().Str("url", rawURL).Msg("rejected invalid video URL")
		return Result{Success: false, Error: MsgInvalidURL}
	}

	log.Info().Str("video_id", ref.ID).Msg("summarize request accepted")

	// メタデータはリクエストごとに1回だけ取得し、以後の層で共有する
	meta := s.metadata.FetchMetadata(ctx, ref.ID)

	req := &acquire.Request{Ref: ref, Meta: meta}
	payload := s.pipeline.Run(ctx, req)
	if payload == nil {
		return failureResult(errAllLayersDeclined)
	}

	summary, err := s.provider.Summarize(ctx, payload)
	if err != nil {
		log.Error().
			Err(err).
			Str("video_id", ref.ID).
			Str("provider", s.provider.Name()).
			Msg("summary generation failed")
		result := failureResult(err)
		result.VideoID = ref.ID
		result.VideoURL = ref.RawURL
		result.Title = meta.Title
		result.PayloadKind = payload.Kind
		return result
	}

	log.Info().
		Str("video_id", ref.ID).
		Str("kind", string(payload.Kind)).
		Int("summary_chars", len(summary)).
		Msg("summary generated")

	result := successResult(summary)
	result.VideoID = ref.ID
	result.VideoURL = ref.RawURL
	result.Title = meta.Title
	result.PayloadKind = payload.Kind
	return result
}
