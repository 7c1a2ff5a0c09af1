package youtube

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// AudioFormat は音声フォーマット情報
type AudioFormat struct {
	ItagNo        int
	MimeType      string // "audio/mp4", "audio/webm"
	Bitrate       int    // ビットレート (bps)
	ContentLength int64  // ファイルサイズ (bytes)
	Quality       string // 音質ラベル
}

// AudioFormats は音声のみのフォーマット一覧をビットレート降順で返す
func (v *VideoInfo) AudioFormats() []AudioFormat {
	if v.raw == nil {
		return nil
	}

	var formats []AudioFormat
	for _, f := range v.raw.Formats {
		// 音声のみのフォーマットをフィルタ
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}

		formats = append(formats, AudioFormat{
			ItagNo:        f.ItagNo,
			MimeType:      f.MimeType,
			Bitrate:       f.Bitrate,
			ContentLength: f.ContentLength,
			Quality:       f.AudioQuality,
		})
	}

	// ビットレート降順でソート
	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Bitrate > formats[j].Bitrate
	})

	return formats
}

// BestAudioFormat は最高ビットレートの音声フォーマットを返す
func (v *VideoInfo) BestAudioFormat() (*AudioFormat, error) {
	formats := v.AudioFormats()
	if len(formats) == 0 {
		return nil, fmt.Errorf("no audio formats available")
	}
	return &formats[0], nil
}

// OpenAudioStream は指定フォーマットの音声ストリームを開く
// 呼び出し側がCloseする責任を持つ
func (c *Client) OpenAudioStream(ctx context.Context, video *VideoInfo, format *AudioFormat) (io.ReadCloser, int64, error) {
	if video.raw == nil {
		return nil, 0, fmt.Errorf("video info not loaded")
	}

	// 対応するyoutubeライブラリのFormatを見つける
	for i := range video.raw.Formats {
		f := &video.raw.Formats[i]
		if f.ItagNo != format.ItagNo {
			continue
		}
		stream, size, err := c.client.GetStreamContext(ctx, video.raw, f)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get stream: %w", err)
		}
		return stream, size, nil
	}

	return nil, 0, fmt.Errorf("format not found: itag=%d", format.ItagNo)
}
