package acquire

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTranscriptServiceURL は既定のトランスクリプト取得サービス
const DefaultTranscriptServiceURL = "https://youtubetranscript.com"

// TranscriptServiceLayer は外部トランスクリプトサービスを使う層（第2層）
// 動画IDを渡し、返されたテキストセグメントを時系列順に連結する
type TranscriptServiceLayer struct {
	baseURL string
	client  *http.Client
}

// NewTranscriptServiceLayer は新しいTranscriptServiceLayerを作成
// baseURLが空の場合は既定のサービスを使う
func NewTranscriptServiceLayer(baseURL string) *TranscriptServiceLayer {
	if baseURL == "" {
		baseURL = DefaultTranscriptServiceURL
	}
	return &TranscriptServiceLayer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name は層の名前を返す
func (l *TranscriptServiceLayer) Name() string { return "transcript-service" }

// サービスのレスポンスXML
type serviceTranscript struct {
	XMLName xml.Name         `xml:"transcript"`
	Texts   []serviceSegment `xml:"text"`
}

type serviceSegment struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

// Extract はサービスからトランスクリプトを取得
func (l *TranscriptServiceLayer) Extract(ctx context.Context, req *Request) (*Payload, error) {
	endpoint := fmt.Sprintf("%s/?server_vid2=%s", l.baseURL, url.QueryEscape(req.Ref.ID))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transcript service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var transcript serviceTranscript
	if err := xml.Unmarshal(body, &transcript); err != nil {
		return nil, fmt.Errorf("transcript parse failed: %w", err)
	}

	var sb strings.Builder
	for _, seg := range transcript.Texts {
		text := strings.TrimSpace(html.UnescapeString(seg.Text))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}

	text := sb.String()
	return &Payload{Kind: KindTranscript, Data: text, SizeBytes: len(text)}, nil
}
