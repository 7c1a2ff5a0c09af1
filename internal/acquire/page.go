package acquire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"nota/internal/youtube"
)

// PageLayer は動画ページのマークアップから直接字幕を抽出する層（第1層）
// ページ内に埋め込まれたプレイヤー設定JSONから字幕トラックURLを取り出す
type PageLayer struct {
	fetcher PageFetcher
}

// NewPageLayer は新しいPageLayerを作成
func NewPageLayer(fetcher PageFetcher) *PageLayer {
	return &PageLayer{fetcher: fetcher}
}

// Name は層の名前を返す
func (l *PageLayer) Name() string { return "page-markup" }

// プレイヤー設定JSONのうち必要な部分だけをデコードする
type playerResponse struct {
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []struct {
				BaseURL      string `json:"baseUrl"`
				LanguageCode string `json:"languageCode"`
			} `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// Extract はページHTMLから字幕テキストを抽出
func (l *PageLayer) Extract(ctx context.Context, req *Request) (*Payload, error) {
	watchURL := "https://www.youtube.com/watch?v=" + req.Ref.ID
	html, err := l.fetcher.FetchPage(ctx, watchURL)
	if err != nil {
		return nil, err
	}

	pr, err := extractPlayerResponse(html)
	if err != nil {
		return nil, err
	}

	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks in player response")
	}

	// 最初に利用可能なトラックを使用
	result, err := youtube.FetchCaptionByURL(ctx, tracks[0].BaseURL)
	if err != nil {
		return nil, fmt.Errorf("caption track fetch failed: %w", err)
	}

	text := result.FormatAsText()
	return &Payload{Kind: KindTranscript, Data: text, SizeBytes: len(text)}, nil
}

var playerResponseMarker = []byte("ytInitialPlayerResponse")

// extractPlayerResponse はHTML内のytInitialPlayerResponse JSONを取り出す
// マーカー直後の「=」から始まる最初のJSON値のみをデコードする
func extractPlayerResponse(html []byte) (*playerResponse, error) {
	idx := bytes.Index(html, playerResponseMarker)
	if idx < 0 {
		return nil, fmt.Errorf("player response not found in page")
	}

	rest := html[idx+len(playerResponseMarker):]
	eq := bytes.IndexByte(rest, '=')
	if eq < 0 {
		return nil, fmt.Errorf("player response assignment not found")
	}

	var pr playerResponse
	dec := json.NewDecoder(bytes.NewReader(rest[eq+1:]))
	if err := dec.Decode(&pr); err != nil {
		return nil, fmt.Errorf("player response parse failed: %w", err)
	}
	return &pr, nil
}
