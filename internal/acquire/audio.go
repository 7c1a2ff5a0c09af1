package acquire

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"nota/internal/youtube"
)

// AudioSampleLayer は音声ストリームの先頭を上限付きで読み取る層（第4層）
// 字幕が一切取れない場合に、音声の冒頭サンプルをAIに渡すための保険
// クライアントライブラリ層の動画取得が失敗している場合はスキップされる
type AudioSampleLayer struct {
	client *youtube.Client
}

// NewAudioSampleLayer は新しいAudioSampleLayerを作成
func NewAudioSampleLayer(client *youtube.Client) *AudioSampleLayer {
	return &AudioSampleLayer{client: client}
}

// Name は層の名前を返す
func (l *AudioSampleLayer) Name() string { return "audio-sample" }

// Extract は最高ビットレートの音声ストリームから上限まで読み取りbase64化する
func (l *AudioSampleLayer) Extract(ctx context.Context, req *Request) (*Payload, error) {
	if req.Video == nil {
		return nil, fmt.Errorf("video info unavailable (client library fetch failed)")
	}

	format, err := req.Video.BestAudioFormat()
	if err != nil {
		return nil, err
	}

	stream, size, err := l.client.OpenAudioStream(ctx, req.Video, format)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	data, truncated, err := readCapped(ctx, stream, MaxAudioBytes)
	if err != nil {
		return nil, fmt.Errorf("audio stream read failed: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("audio stream was empty")
	}

	log.Debug().
		Str("video_id", req.Ref.ID).
		Str("mime_type", format.MimeType).
		Int64("stream_size", size).
		Int("sampled_bytes", len(data)).
		Bool("truncated", truncated).
		Msg("audio sample captured")

	return &Payload{
		Kind:      KindAudio,
		Data:      base64.StdEncoding.EncodeToString(data),
		SizeBytes: len(data),
	}, nil
}

// readCapped はストリームの終端または上限バイト数まで読み取る
// 上限で打ち切った場合はtruncated=trueを返す
func readCapped(ctx context.Context, r io.Reader, max int) ([]byte, bool, error) {
	buf := make([]byte, 32*1024)
	data := make([]byte, 0, 64*1024)

	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			remaining := max - len(data)
			if n >= remaining {
				data = append(data, buf[:remaining]...)
				return data, true, nil
			}
			data = append(data, buf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return data, false, nil
			}
			return nil, false, err
		}
	}
}
