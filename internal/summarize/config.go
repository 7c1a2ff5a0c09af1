package summarize

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/time/rate"
)

// Config はプロバイダ設定
// プロセス起動時に一度だけ構築し、以後は読み取り専用で共有する
type Config struct {
	// APIKey は資格情報。先頭が "AIza" なら直接SDKファミリを選択
	APIKey string

	// Model は希望モデル名。空の場合は各ファミリの既定リストのみ使用
	Model string

	// GatewayEndpoint はゲートウェイのエンドポイント（空なら既定値）
	GatewayEndpoint string

	// Roster はフォールバックモデルの上書き（空なら各ファミリの既定値）
	Roster []string

	// Retry はモデル呼び出し1回ごとのリトライ設定
	Retry RetryPolicy

	// Limiter はプロセス全体で共有するレートリミッタ
	// 並行リクエストが同一クォータを食い潰すのを防ぐ。nilなら無制限
	Limiter *rate.Limiter
}

// NewSharedLimiter はプロバイダ呼び出し用の共有トークンバケットを作成
// 全リクエストがこのリミッタを通ることで、バースト時もクォータ超過を避ける
func NewSharedLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// NewProvider は資格情報の形からプロバイダファミリを選択する
// 選択はプロセス設定時に一度だけ行われ、リクエストごとには変わらない
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not configured")
	}

	// GoogleのAPIキーは "AIza" で始まる
	if strings.HasPrefix(cfg.APIKey, "AIza") {
		return NewGeminiProvider(ctx, cfg)
	}

	return NewGatewayProvider(cfg), nil
}
