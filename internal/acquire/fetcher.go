package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PageFetcher は動画ページのHTML取得を抽象化する
// 通常はブラウザ風ヘッダ付きのHTTP GET、設定によりヘッドレスブラウザに切り替え可能
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher はブラウザ風のリクエストシグネチャでページを取得する
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher は新しいHTTPFetcherを作成
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchPage はURLからHTMLを取得
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// ボット判定を避けるためブラウザ相当のヘッダを付与
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,ja;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
