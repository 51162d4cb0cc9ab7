package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTranscriberTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Audio string `json:"audio"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Audio != "Zm9v" {
			t.Fatalf("unexpected audio payload: %q", req.Audio)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":"hello from the microphone"}`)
	}))
	defer server.Close()

	client := NewHTTPTranscriber(server.URL, "key", time.Second)
	text, err := client.Transcribe(context.Background(), "Zm9v")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello from the microphone" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestHTTPTranscriberError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream unavailable")
	}))
	defer server.Close()

	client := NewHTTPTranscriber(server.URL, "key", time.Second)
	if _, err := client.Transcribe(context.Background(), "Zm9v"); err == nil {
		t.Fatalf("expected error")
	}
}
