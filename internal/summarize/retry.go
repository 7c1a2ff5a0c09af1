package summarize

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryPolicy はレート制限エラーに限定した指数バックオフ付きリトライ
// それ以外のエラーは即座に呼び出し元へ伝播する
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	BackoffFactor int

	// テストで遅延を差し替えるためのフック。nilなら実時間で待機
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy は既定のリトライ設定（3回、初期1秒、係数2）
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		InitialDelay:  1000 * time.Millisecond,
		BackoffFactor: 2,
	}
}

// Do はfnを実行し、レート制限エラーのみをリトライする
// 試行回数は最大 MaxRetries+1 回。待機時間は InitialDelay * BackoffFactor^attempt
func (p RetryPolicy) Do(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		// レート制限以外は即伝播（モデルフォールバックに任せる）
		if !IsRateLimit(err) {
			return "", err
		}

		if attempt < p.MaxRetries {
			delay := p.delayFor(attempt)
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Int("max_retries", p.MaxRetries).
				Dur("delay", delay).
				Msg("rate limited, backing off")

			if err := p.wait(ctx, delay); err != nil {
				return "", err
			}
		}
	}

	return "", lastErr
}

// delayFor はattempt回目（0始まり）の失敗後の待機時間を返す
func (p RetryPolicy) delayFor(attempt int) time.Duration {
	delay := p.InitialDelay
	for i := 0; i < attempt; i++ {
		delay *= time.Duration(p.BackoffFactor)
	}
	return delay
}

func (p RetryPolicy) wait(ctx context.Context, d time.Duration) error {
	if p.sleep != nil {
		return p.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
