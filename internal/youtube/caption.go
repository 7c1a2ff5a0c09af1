package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// YouTube字幕のXML構造（timedtext形式）
type xmlTranscript struct {
	XMLName xml.Name  `xml:"timedtext"`
	Text    []xmlText `xml:"body>p"`
}

type xmlText struct {
	Start    int64        `xml:"t,attr"` // ミリ秒
	Duration int64        `xml:"d,attr"` // ミリ秒
	Segments []xmlSegment `xml:"s"`
}

type xmlSegment struct {
	Text string `xml:",chardata"`
}

// FetchCaption は指定言語の字幕を取得
func (c *Client) FetchCaption(ctx context.Context, video *VideoInfo, lang string) (*CaptionResult, error) {
	track := video.FindCaption(lang)
	if track == nil {
		return nil, fmt.Errorf("no captions available")
	}

	result, err := FetchCaptionByURL(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}

	result.LanguageCode = track.LanguageCode
	return result, nil
}

// FetchCaptionByURL はURLから直接字幕を取得
func FetchCaptionByURL(ctx context.Context, url string) (*CaptionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return ParseTimedText(body)
}

// ParseTimedText はtimedtext XMLをパースしてCaptionResultを返す
func ParseTimedText(data []byte) (*CaptionResult, error) {
	var transcript xmlTranscript
	if err := xml.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("XML parse failed: %w", err)
	}

	entries := make([]CaptionEntry, 0, len(transcript.Text))
	for _, p := range transcript.Text {
		// セグメントを連結してテキストを作成
		var text string
		for _, seg := range p.Segments {
			text += seg.Text
		}

		// 空エントリをスキップ
		if len(text) == 0 {
			continue
		}

		entries = append(entries, CaptionEntry{
			StartTime: time.Duration(p.Start) * time.Millisecond,
			Duration:  time.Duration(p.Duration) * time.Millisecond,
			Text:      text,
		})
	}

	return &CaptionResult{
		Entries: entries,
	}, nil
}
