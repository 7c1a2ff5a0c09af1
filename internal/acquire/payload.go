package acquire

// Kind はペイロードの種別
type Kind string

const (
	KindTranscript Kind = "transcript"
	KindAudio      Kind = "audio"
)

// MaxAudioBytes は音声サンプリングの上限（エンコード前のバイト数）
const MaxAudioBytes = 10_000_000

// Payload は取得したコンテンツ
// audio の場合、Dataはbase64エンコード済み、SizeBytesはエンコード前のバイト数
type Payload struct {
	Kind      Kind   `json:"kind"`
	Data      string `json:"data"`
	SizeBytes int    `json:"size_bytes"`
}

// Empty はペイロードが空かどうかを返す
func (p *Payload) Empty() bool {
	return p == nil || p.Data == ""
}
