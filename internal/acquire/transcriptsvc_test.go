package acquire

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscriptServiceLayerExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("server_vid2"); got != "dQw4w9WgXcQ" {
			t.Errorf("server_vid2 = %q, want dQw4w9WgXcQ", got)
		}
		fmt.Fprint(w, `<transcript><text start="0" dur="2.1">first segment</text><text start="2.1" dur="1.8">second &amp; third</text></transcript>`)
	}))
	defer srv.Close()

	layer := NewTranscriptServiceLayer(srv.URL)
	payload, err := layer.Extract(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "first segment second & third"
	if payload.Data != want {
		t.Errorf("data = %q, want %q", payload.Data, want)
	}
}

func TestTranscriptServiceLayerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	layer := NewTranscriptServiceLayer(srv.URL)
	if _, err := layer.Extract(context.Background(), testRequest()); err == nil {
		t.Fatal("expected decline on non-200 response")
	}
}

func TestTranscriptServiceLayerMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"this": "is not xml"}`)
	}))
	defer srv.Close()

	layer := NewTranscriptServiceLayer(srv.URL)
	if _, err := layer.Extract(context.Background(), testRequest()); err == nil {
		t.Fatal("expected decline on malformed body")
	}
}
