package acquire

import (
	"context"
	"fmt"

	"nota/internal/youtube"
)

// ClientLibraryLayer はプラットフォームクライアントライブラリで字幕を取得する層（第3層）
// 取得した動画情報はリクエストにキャッシュされ、音声サンプリング層が再利用する
type ClientLibraryLayer struct {
	client *youtube.Client
	lang   string
}

// NewClientLibraryLayer は新しいClientLibraryLayerを作成
func NewClientLibraryLayer(client *youtube.Client, lang string) *ClientLibraryLayer {
	if lang == "" {
		lang = "en"
	}
	return &ClientLibraryLayer{client: client, lang: lang}
}

// Name は層の名前を返す
func (l *ClientLibraryLayer) Name() string { return "client-library" }

// Extract はクライアントライブラリ経由で字幕を取得
func (l *ClientLibraryLayer) Extract(ctx context.Context, req *Request) (*Payload, error) {
	info, err := l.client.GetVideo(ctx, req.Ref.ID)
	if err != nil {
		return nil, fmt.Errorf("video info fetch failed: %w", err)
	}

	// 音声サンプリング層のためにキャッシュ（字幕の有無に関わらず）
	req.Video = info

	if !info.HasCaptions() {
		return nil, fmt.Errorf("no captions available")
	}

	result, err := l.client.FetchCaption(ctx, info, l.lang)
	if err != nil {
		return nil, fmt.Errorf("caption fetch failed: %w", err)
	}

	text := result.FormatAsText()
	return &Payload{Kind: KindTranscript, Data: text, SizeBytes: len(text)}, nil
}
