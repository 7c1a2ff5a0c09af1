package webfetch

import "time"

// Result はブラウザ経由のページ取得結果
// URLはリダイレクト後の最終URL
type Result struct {
	URL      string        `json:"url"`
	Content  string        `json:"content"`
	Duration time.Duration `json:"duration"`
}
