package acquire

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"nota/internal/youtube"
)

// Request は1回の取得リクエストのスコープ
// 層をまたいで共有される状態はここに集約する
type Request struct {
	Ref  youtube.VideoReference
	Meta youtube.Metadata

	// クライアントライブラリ層が取得した動画情報
	// 音声サンプリング層が再利用する。取得失敗時はnilのまま
	Video *youtube.VideoInfo
}

// Layer は抽出戦略の1つ
// 失敗（エラーまたは空ペイロード）は「辞退」であり、パイプラインを止めない
type Layer interface {
	Name() string
	Extract(ctx context.Context, req *Request) (*Payload, error)
}

// Pipeline は抽出層を固定順で試行するパイプライン
// 最初に非空ペイロードを返した層で打ち切る
type Pipeline struct {
	layers []Layer
}

// NewPipeline は指定順の層でパイプラインを作成
func NewPipeline(layers ...Layer) *Pipeline {
	return &Pipeline{layers: layers}
}

// Run は各層を順に試行し、最初の非空ペイロードを返す
// 最終層（メタデータ合成）が必ず成功するため、通常はnilを返さない
func (p *Pipeline) Run(ctx context.Context, req *Request) *Payload {
	for _, layer := range p.layers {
		log.Debug().
			Str("video_id", req.Ref.ID).
			Str("layer", layer.Name()).
			Msg("acquisition layer attempt")

		payload, err := safeExtract(ctx, layer, req)
		if err != nil {
			log.Info().
				Err(err).
				Str("video_id", req.Ref.ID).
				Str("layer", layer.Name()).
				Msg("acquisition layer declined")
			continue
		}
		if payload.Empty() {
			log.Info().
				Str("video_id", req.Ref.ID).
				Str("layer", layer.Name()).
				Msg("acquisition layer declined: empty result")
			continue
		}

		log.Info().
			Str("video_id", req.Ref.ID).
			Str("layer", layer.Name()).
			Str("kind", string(payload.Kind)).
			Int("size_bytes", payload.SizeBytes).
			Msg("acquisition layer succeeded")
		return payload
	}

	log.Warn().Str("video_id", req.Ref.ID).Msg("all acquisition layers declined")
	return nil
}

// safeExtract は層のpanicも辞退として扱う
func safeExtract(ctx context.Context, layer Layer, req *Request) (payload *Payload, err error) {
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = fmt.Errorf("layer panicked: %v", r)
		}
	}()
	return layer.Extract(ctx, req)
}
