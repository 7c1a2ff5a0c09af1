package acquire

import (
	"context"
	"strings"
)

// MetadataLayer はタイトルと説明文からペイロードを合成する最終層（第5層）
// この層は決して辞退しない。パイプライン全体が必ず非空ペイロードを返す根拠
type MetadataLayer struct{}

// NewMetadataLayer は新しいMetadataLayerを作成
func NewMetadataLayer() *MetadataLayer {
	return &MetadataLayer{}
}

// Name は層の名前を返す
func (l *MetadataLayer) Name() string { return "metadata-fallback" }

// Extract はメタデータからトランスクリプト相当のテキストを合成する
func (l *MetadataLayer) Extract(ctx context.Context, req *Request) (*Payload, error) {
	var sb strings.Builder
	sb.WriteString("Video Title: ")
	sb.WriteString(req.Meta.Title)
	if req.Meta.Description != "" {
		sb.WriteString("\n\nVideo Description:\n")
		sb.WriteString(req.Meta.Description)
	}
	sb.WriteString("\n\n(No transcript was available for this video. The above metadata is the only content obtainable.)")

	text := sb.String()
	return &Payload{Kind: KindTranscript, Data: text, SizeBytes: len(text)}, nil
}
