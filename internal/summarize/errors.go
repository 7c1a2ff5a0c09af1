package summarize

import (
	"errors"
	"fmt"
)

// RateLimitError はレート制限（HTTP 429相当）によるモデル呼び出し失敗
// この種別のみリトライ対象となる
type RateLimitError struct {
	Provider string
	Model    string
	Err      error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s model %s rate limited: %v", e.Provider, e.Model, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// IsRateLimit はエラーがレート制限由来かどうかを判定
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// ProviderError はレート制限以外のモデル呼び出し失敗
// リトライせず、即座に次の候補モデルへ進む
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s model %s failed: %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ExhaustedError は全候補モデルの失敗
// RateLimitedは全候補の最終エラーがレート制限だった場合にtrue
type ExhaustedError struct {
	Provider    string
	Attempts    int
	RateLimited bool
	Last        error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d candidate models failed (provider: %s): %v", e.Attempts, e.Provider, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// IsQuotaExhausted は全候補がレート制限で尽きたかどうかを判定
func IsQuotaExhausted(err error) bool {
	var ex *ExhaustedError
	return errors.As(err, &ex) && ex.RateLimited
}
