package youtube

import "regexp"

// VideoReference は1リクエスト分の動画参照
// 生成後は不変。IDはパイプライン途中で再導出しない
type VideoReference struct {
	RawURL string
	ID     string
}

// YouTubeの動画IDは英数字・ハイフン・アンダースコアの11文字
var idPatterns = []*regexp.Regexp{
	// watch?v= / watch?vi= 形式（クエリパラメータの位置は問わない）
	regexp.MustCompile(`(?i)[?&]v(?:i)?=([A-Za-z0-9_-]{11})`),
	// youtu.be 短縮URL
	regexp.MustCompile(`(?i)youtu\.be/([A-Za-z0-9_-]{11})`),
	// /shorts/ /live/ /embed/ /e/ /v/ パスセグメント
	regexp.MustCompile(`(?i)/(?:shorts|live|embed|e|v)/([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID はURLから11文字の動画IDを抽出する
// どの形式にも一致しない場合は ok=false を返す（エラーは返さない）
// ネットワークアクセスを伴わない純粋な関数
func ExtractVideoID(rawURL string) (string, bool) {
	for _, p := range idPatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// NewVideoReference はURLを解析してVideoReferenceを構築する
func NewVideoReference(rawURL string) (VideoReference, bool) {
	id, ok := ExtractVideoID(rawURL)
	if !ok {
		return VideoReference{}, false
	}
	return VideoReference{RawURL: rawURL, ID: id}, true
}
