package acquire

import (
	"context"
	"fmt"
	"testing"

	"nota/internal/youtube"
)

// fakeLayer は呼び出し回数を記録するテスト用の層
type fakeLayer struct {
	name    string
	payload *Payload
	err     error
	panics  bool
	calls   int
}

func (f *fakeLayer) Name() string { return f.name }

func (f *fakeLayer) Extract(ctx context.Context, req *Request) (*Payload, error) {
	f.calls++
	if f.panics {
		panic("boom")
	}
	return f.payload, f.err
}

func textPayload(s string) *Payload {
	return &Payload{Kind: KindTranscript, Data: s, SizeBytes: len(s)}
}

func testRequest() *Request {
	return &Request{
		Ref:  youtube.VideoReference{RawURL: "https://youtu.be/dQw4w9WgXcQ", ID: "dQw4w9WgXcQ"},
		Meta: youtube.Metadata{Title: "Test Video", Description: "desc"},
	}
}

func TestPipelineShortCircuit(t *testing.T) {
	first := &fakeLayer{name: "first", payload: textPayload("hello")}
	rest := []*fakeLayer{
		{name: "second", payload: textPayload("unused")},
		{name: "third", payload: textPayload("unused")},
		{name: "fourth", payload: textPayload("unused")},
		{name: "fifth", payload: textPayload("unused")},
	}

	layers := []Layer{first}
	for _, l := range rest {
		layers = append(layers, l)
	}

	got := NewPipeline(layers...).Run(context.Background(), testRequest())
	if got == nil || got.Data != "hello" {
		t.Fatalf("expected first layer payload, got %+v", got)
	}
	if first.calls != 1 {
		t.Errorf("first layer calls = %d, want 1", first.calls)
	}
	for _, l := range rest {
		if l.calls != 0 {
			t.Errorf("layer %s was invoked %d times, want 0", l.name, l.calls)
		}
	}
}

func TestPipelineAbsorbsFailures(t *testing.T) {
	tests := []struct {
		name  string
		layer *fakeLayer
	}{
		{"error", &fakeLayer{name: "failing", err: fmt.Errorf("network down")}},
		{"empty payload", &fakeLayer{name: "empty", payload: textPayload("")}},
		{"nil payload", &fakeLayer{name: "nil"}},
		{"panic", &fakeLayer{name: "panicky", panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final := &fakeLayer{name: "final", payload: textPayload("fallback")}
			got := NewPipeline(tt.layer, final).Run(context.Background(), testRequest())
			if got == nil || got.Data != "fallback" {
				t.Fatalf("expected fallback payload, got %+v", got)
			}
			if tt.layer.calls != 1 {
				t.Errorf("failing layer calls = %d, want 1", tt.layer.calls)
			}
		})
	}
}

func TestPipelineAllDeclined(t *testing.T) {
	got := NewPipeline(
		&fakeLayer{name: "a", err: fmt.Errorf("no")},
		&fakeLayer{name: "b", err: fmt.Errorf("no")},
	).Run(context.Background(), testRequest())
	if got != nil {
		t.Fatalf("expected nil when every layer declines, got %+v", got)
	}
}

// メタデータ合成層を終端に置く限り、パイプラインは常に非空を返す
func TestPipelineMetadataGuarantee(t *testing.T) {
	p := NewPipeline(
		&fakeLayer{name: "page", err: fmt.Errorf("blocked")},
		&fakeLayer{name: "service", err: fmt.Errorf("unreachable")},
		&fakeLayer{name: "client", err: fmt.Errorf("403")},
		&fakeLayer{name: "audio", err: fmt.Errorf("no formats")},
		NewMetadataLayer(),
	)

	got := p.Run(context.Background(), testRequest())
	if got.Empty() {
		t.Fatal("pipeline must always yield a non-empty payload")
	}
	if got.Kind != KindTranscript {
		t.Errorf("kind = %s, want transcript", got.Kind)
	}
}

func TestMetadataLayerUsesPlaceholders(t *testing.T) {
	req := testRequest()
	req.Meta = youtube.Metadata{Title: youtube.DefaultTitle}

	payload, err := NewMetadataLayer().Extract(context.Background(), req)
	if err != nil {
		t.Fatalf("metadata layer must not fail: %v", err)
	}
	if payload.Empty() {
		t.Fatal("metadata layer must produce non-empty text")
	}
}
