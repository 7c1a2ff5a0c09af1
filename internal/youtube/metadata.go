package youtube

import (
	"context"

	"github.com/rs/zerolog/log"
)

// デフォルト値（取得に失敗した場合のプレースホルダ）
const (
	DefaultTitle       = "Unknown Video"
	DefaultDescription = ""
)

// Metadata は動画のタイトルと説明文
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FetchMetadata は動画のメタデータをベストエフォートで取得する
// 取得や解析に失敗してもエラーは返さず、プレースホルダ値で埋める
// 呼び出しはリクエストごとに1回。結果は診断と最終フォールバック層で再利用される
func (c *Client) FetchMetadata(ctx context.Context, id string) Metadata {
	info, err := c.GetVideo(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("video_id", id).Msg("metadata fetch failed, using placeholders")
		return Metadata{Title: DefaultTitle, Description: DefaultDescription}
	}

	meta := Metadata{Title: info.Title, Description: info.Description}
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	return meta
}
