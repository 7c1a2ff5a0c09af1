package summarize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"nota/internal/acquire"
)

func TestTruncateContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short content unchanged", "hello"},
		{"ascii at limit", strings.Repeat("a", MaxContentChars)},
		{"ascii over limit", strings.Repeat("a", MaxContentChars+100)},
		// 3バイト文字が上限をまたぐケース
		{"multibyte straddling the limit", strings.Repeat("あ", MaxContentChars)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateContent(tt.input)

			if len(got) > MaxContentChars {
				t.Errorf("len = %d, exceeds %d", len(got), MaxContentChars)
			}
			if len(tt.input) <= MaxContentChars && got != tt.input {
				t.Error("content within the limit must not be modified")
			}
			if !utf8.ValidString(got) {
				t.Error("truncation produced invalid UTF-8")
			}
		})
	}
}

func TestBuildUserPromptByKind(t *testing.T) {
	transcript := &acquire.Payload{Kind: acquire.KindTranscript, Data: "some transcript", SizeBytes: 15}
	if got := BuildUserPrompt(transcript); !strings.Contains(got, "some transcript") {
		t.Errorf("transcript prompt = %q", got)
	}

	audio := &acquire.Payload{Kind: acquire.KindAudio, Data: "QUJD", SizeBytes: 3}
	if got := BuildUserPrompt(audio); got != audioInstruction {
		t.Errorf("audio prompt = %q", got)
	}
}
