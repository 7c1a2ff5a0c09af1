package summarize

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"

	"nota/internal/acquire"
)

func TestGeminiClassify(t *testing.T) {
	p := &GeminiProvider{}

	tests := []struct {
		name          string
		err           error
		wantRateLimit bool
	}{
		{"api error 429", &genai.APIError{Code: 429, Message: "too many requests"}, true},
		{"api error 500", &genai.APIError{Code: 500, Message: "internal"}, false},
		{"quota message", fmt.Errorf("generation failed: quota exceeded for project"), true},
		{"resource exhausted message", fmt.Errorf("rpc error: RESOURCE EXHAUSTED"), true},
		{"rate limit message", fmt.Errorf("rate limit reached, slow down"), true},
		{"generic failure", fmt.Errorf("model not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := p.classify("gemini-2.5-flash", tt.err)

			if got := IsRateLimit(classified); got != tt.wantRateLimit {
				t.Errorf("IsRateLimit = %v, want %v (err: %v)", got, tt.wantRateLimit, classified)
			}
			if !tt.wantRateLimit {
				var pe *ProviderError
				if !errors.As(classified, &pe) {
					t.Errorf("expected ProviderError, got %T", classified)
				}
			}
			// 元のエラーは常にチェーンに残す
			if !errors.Is(classified, tt.err) {
				t.Errorf("original error lost from chain: %v", classified)
			}
		})
	}
}

func TestGeminiBuildContentsTranscript(t *testing.T) {
	p := &GeminiProvider{}

	contents, err := p.buildContents(&acquire.Payload{
		Kind:      acquire.KindTranscript,
		Data:      "transcript text",
		SizeBytes: 15,
	})
	if err != nil {
		t.Fatalf("buildContents: %v", err)
	}

	if len(contents) != 1 || len(contents[0].Parts) != 1 {
		t.Fatalf("contents shape = %+v", contents)
	}
	if contents[0].Role != "user" {
		t.Errorf("role = %q", contents[0].Role)
	}
	if contents[0].Parts[0].Text == "" || contents[0].Parts[0].InlineData != nil {
		t.Errorf("transcript payload must be a single text part, got %+v", contents[0].Parts[0])
	}
}

func TestGeminiBuildContentsAudio(t *testing.T) {
	p := &GeminiProvider{}
	raw := []byte{0x49, 0x44, 0x33, 0x04} // mp3っぽい先頭バイト

	contents, err := p.buildContents(&acquire.Payload{
		Kind:      acquire.KindAudio,
		Data:      base64.StdEncoding.EncodeToString(raw),
		SizeBytes: len(raw),
	})
	if err != nil {
		t.Fatalf("buildContents: %v", err)
	}

	if len(contents) != 1 || len(contents[0].Parts) != 2 {
		t.Fatalf("contents shape = %+v", contents)
	}

	blob := contents[0].Parts[1].InlineData
	if blob == nil {
		t.Fatal("audio payload must carry inline data")
	}
	if blob.MIMEType != "audio/mp3" {
		t.Errorf("mime type = %q", blob.MIMEType)
	}
	if string(blob.Data) != string(raw) {
		t.Errorf("inline data = %v, want decoded original bytes", blob.Data)
	}
}

func TestGeminiBuildContentsRejectsBadBase64(t *testing.T) {
	p := &GeminiProvider{}

	_, err := p.buildContents(&acquire.Payload{
		Kind:      acquire.KindAudio,
		Data:      "not base64 !!!",
		SizeBytes: 10,
	})
	if err == nil {
		t.Fatal("expected error for invalid base64 audio payload")
	}
}
