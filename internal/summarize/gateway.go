package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"nota/internal/acquire"
)

// DefaultGatewayEndpoint は既定のチャット補完エンドポイント
const DefaultGatewayEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// DefaultGatewayRoster は既定のフォールバックモデル
var DefaultGatewayRoster = []string{
	"stepfun/step-3.5-flash:free",
	"google/gemma-3-12b-it:free",
	"qwen/qwen3-coder:free",
	"mistralai/mistral-small-3.1-24b-instruct:free",
	"z-ai/glm-4.5-air:free",
	"meta-llama/llama-3.3-70b-instruct:free",
}

// GatewayProvider はマルチモデルゲートウェイ（OpenRouter互換）のプロバイダ
type GatewayProvider struct {
	apiKey     string
	endpoint   string
	candidates []ModelCandidate
	retry      RetryPolicy
	limiter    *rate.Limiter
	client     *http.Client
}

// NewGatewayProvider は新しいGatewayProviderを作成
func NewGatewayProvider(cfg Config) *GatewayProvider {
	endpoint := cfg.GatewayEndpoint
	if endpoint == "" {
		endpoint = DefaultGatewayEndpoint
	}
	roster := cfg.Roster
	if len(roster) == 0 {
		roster = DefaultGatewayRoster
	}

	return &GatewayProvider{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		candidates: BuildCandidates("gateway", cfg.Model, roster),
		retry:      cfg.Retry,
		limiter:    cfg.Limiter,
		client:     &http.Client{Timeout: 120 * time.Second},
	}
}

// Name はプロバイダファミリ名を返す
func (p *GatewayProvider) Name() string { return "gateway" }

// Candidates は試行順の候補モデルリストを返す
func (p *GatewayProvider) Candidates() []ModelCandidate { return p.candidates }

// Summarize は候補モデルを順に試行し、最初に成功した結果を返す
func (p *GatewayProvider) Summarize(ctx context.Context, payload *acquire.Payload) (string, error) {
	prompt := BuildUserPrompt(payload)

	var lastErr error
	allRateLimited := true

	for _, cand := range p.candidates {
		log.Info().
			Str("provider", p.Name()).
			Str("model", cand.Name).
			Int("priority", cand.Priority).
			Msg("model attempt")

		result, err := p.retry.Do(ctx, func() (string, error) {
			return p.call(ctx, cand.Name, prompt)
		})
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !IsRateLimit(err) {
			allRateLimited = false
		}
		log.Warn().
			Err(err).
			Str("provider", p.Name()).
			Str("model", cand.Name).
			Msg("model failed, advancing to next candidate")
	}

	return "", &ExhaustedError{
		Provider:    p.Name(),
		Attempts:    len(p.candidates),
		RateLimited: allRateLimited && lastErr != nil,
		Last:        lastErr,
	}
}

// ゲートウェイのリクエスト/レスポンススキーマ
// フィールドアクセス前に検証し、スキーマ不一致はProviderErrorとして扱う
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// call は1モデルへの1回のチャット補完リクエスト
func (p *GatewayProvider) call(ctx context.Context, model, prompt string) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Model: model, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Model: model, Err: err}
	}

	var parsed chatCompletionResponse
	// エラーレスポンスのJSONも同じ構造で受ける。パース失敗はステータスで判断
	_ = json.Unmarshal(respBody, &parsed)

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &RateLimitError{Provider: p.Name(), Model: model, Err: responseError(&parsed, resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: p.Name(), Model: model, Err: responseError(&parsed, resp.StatusCode)}
	}

	if parsed.Error != nil {
		return "", &ProviderError{Provider: p.Name(), Model: model, Err: fmt.Errorf("%s", parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &ProviderError{Provider: p.Name(), Model: model, Err: fmt.Errorf("response contained no choices")}
	}

	return parsed.Choices[0].Message.Content, nil
}

// responseError はエラーレスポンスから人間可読なエラーを作る
func responseError(parsed *chatCompletionResponse, status int) error {
	if parsed.Error != nil && parsed.Error.Message != "" {
		return fmt.Errorf("status %d: %s", status, parsed.Error.Message)
	}
	return fmt.Errorf("status %d", status)
}
