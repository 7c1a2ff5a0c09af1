package summarize

import (
	"context"

	"nota/internal/acquire"
)

// Provider は要約プロバイダファミリの抽象
// ファミリはプロセス起動時に一度だけ選択され、リクエストごとには変わらない
type Provider interface {
	// Name はプロバイダファミリ名を返す
	Name() string

	// Summarize はペイロードを要約したMarkdownを返す
	// 全候補モデルが失敗した場合は *ExhaustedError を返す
	Summarize(ctx context.Context, payload *acquire.Payload) (string, error)

	// Candidates は試行順の候補モデルリストを返す（診断用）
	Candidates() []ModelCandidate
}
