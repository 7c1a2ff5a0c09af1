package summarize

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"nota/internal/acquire"
)

// DefaultGeminiModels は直接SDKファミリの固定モデルリスト
var DefaultGeminiModels = []string{
	"gemini-3-flash-preview",
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
}

// GeminiProvider はGoogle生成AI SDKを直接使うプロバイダ
type GeminiProvider struct {
	client     *genai.Client
	candidates []ModelCandidate
	retry      RetryPolicy
	limiter    *rate.Limiter
}

// NewGeminiProvider は新しいGeminiProviderを作成
// クライアントはプロセスで一度だけ生成され、以後読み取り専用
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	roster := cfg.Roster
	if len(roster) == 0 {
		roster = DefaultGeminiModels
	}

	return &GeminiProvider{
		client:     client,
		candidates: BuildCandidates("gemini", cfg.Model, roster),
		retry:      cfg.Retry,
		limiter:    cfg.Limiter,
	}, nil
}

// Name はプロバイダファミリ名を返す
func (p *GeminiProvider) Name() string { return "gemini" }

// Candidates は試行順の候補モデルリストを返す
func (p *GeminiProvider) Candidates() []ModelCandidate { return p.candidates }

// Summarize は候補モデルを順に試行し、最初に成功した結果を返す
func (p *GeminiProvider) Summarize(ctx context.Context, payload *acquire.Payload) (string, error) {
	contents, err := p.buildContents(payload)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	var lastErr error
	allRateLimited := true

	for _, cand := range p.candidates {
		log.Info().
			Str("provider", p.Name()).
			Str("model", cand.Name).
			Int("priority", cand.Priority).
			Msg("model attempt")

		result, err := p.retry.Do(ctx, func() (string, error) {
			return p.call(ctx, cand.Name, contents, config)
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

// buildContents はペイロードからリクエスト内容を構築する
// transcript はテキストのみ、audio はプロンプト + インライン音声データ
func (p *GeminiProvider) buildContents(payload *acquire.Payload) ([]*genai.Content, error) {
	prompt := BuildUserPrompt(payload)

	if payload.Kind != acquire.KindAudio {
		return []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}}, nil
	}

	data, err := base64.StdEncoding.DecodeString(payload.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid audio payload: %w", err)
	}

	parts := []*genai.Part{
		{Text: prompt},
		{InlineData: &genai.Blob{MIMEType: "audio/mp3", Data: data}},
	}
	return []*genai.Content{{Role: "user", Parts: parts}}, nil
}

// call は1モデルへの1回のGenerateContent呼び出し
func (p *GeminiProvider) call(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", p.classify(model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", &ProviderError{Provider: p.Name(), Model: model, Err: fmt.Errorf("response contained no text")}
	}
	return text, nil
}

// classify はSDKのエラーをレート制限とそれ以外に分類する
func (p *GeminiProvider) classify(model string, err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return &RateLimitError{Provider: p.Name(), Model: model, Err: err}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "rate limit") {
		return &RateLimitError{Provider: p.Name(), Model: model, Err: err}
	}

	return &ProviderError{Provider: p.Name(), Model: model, Err: err}
}
