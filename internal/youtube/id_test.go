package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{
			name:   "canonical watch URL",
			url:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
			wantOK: true,
		},
		{
			name:   "watch URL with extra params",
			url:    "https://www.youtube.com/watch?t=42&v=dQw4w9WgXcQ&list=PLx",
			wantID: "dQw4w9WgXcQ",
			wantOK: true,
		},
		{
			name:   "vi query parameter",
			url:    "https://www.youtube.com/watch?vi=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
			wantOK: true,
		},
		{
			name:   "short link",
			url:    "https://youtu.be/dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
			wantOK: true,
		},
		{
			name:   "short link with timestamp",
			url:    "https://youtu.be/dQw4w9WgXcQ?t=10",
			wantID: "dQw4w9WgXcQ",
			wantOK: true,
		},
		{
			name:   "shorts",
			url:    "https://www.youtube.com/shorts/abc123DEF45",
			wantID: "abc123DEF45",
			wantOK: true,
		},
		{
			name:   "live",
			url:    "https://www.youtube.com/live/abc123DEF45",
			wantID: "abc123DEF45",
			wantOK: true,
		},
		{
			name:   "embed",
			url:    "https://www.youtube.com/embed/abc123DEF45",
			wantID: "abc123DEF45",
			wantOK: true,
		},
		{
			name:   "legacy /v/ path",
			url:    "https://www.youtube.com/v/abc123DEF45",
			wantID: "abc123DEF45",
			wantOK: true,
		},
		{
			name:   "/e/ path",
			url:    "https://www.youtube.com/e/abc123DEF45",
			wantID: "abc123DEF45",
			wantOK: true,
		},
		{
			name:   "mobile host",
			url:    "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
			wantOK: true,
		},
		{
			name:   "uppercase host",
			url:    "HTTPS://WWW.YOUTUBE.COM/WATCH?V=dQw4w9WgXcQ",
			wantID: "dQw4w9WgXcQ",
			wantOK: true,
		},
		{
			name:   "not a url",
			url:    "not a url",
			wantOK: false,
		},
		{
			name:   "unrelated url",
			url:    "https://example.com/watch?v=short",
			wantOK: false,
		},
		{
			name:   "id too short",
			url:    "https://youtu.be/abc123",
			wantOK: false,
		},
		{
			name:   "empty string",
			url:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ExtractVideoID(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, id, tt.wantID)
			}
			if ok && len(id) != 11 {
				t.Errorf("extracted ID %q is %d chars, want 11", id, len(id))
			}
		})
	}
}

func TestNewVideoReference(t *testing.T) {
	ref, ok := NewVideoReference("https://youtu.be/dQw4w9WgXcQ")
	if !ok {
		t.Fatal("expected reference to be constructed")
	}
	if ref.ID != "dQw4w9WgXcQ" {
		t.Errorf("ID = %q, want dQw4w9WgXcQ", ref.ID)
	}
	if ref.RawURL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("RawURL not preserved: %q", ref.RawURL)
	}

	if _, ok := NewVideoReference("not a url"); ok {
		t.Error("expected failure for invalid input")
	}
}
