package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient, baseURL'i httptest server'a yönlendirilmiş client döner.
func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGeminiClient("test-key", "gemini-pro")
	if err != nil {
		t.Fatalf("NewGeminiClient: %v", err)
	}
	client.baseURL = server.URL
	return client
}

func TestGeminiClientRequiresAPIKey(t *testing.T) {
	if _, err := NewGeminiClient("", "gemini-pro"); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if _, err := NewGeminiClient("   ", "gemini-pro"); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestGeminiClientGenerateText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, "gemini-pro:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not passed in query")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.GenerationConfig.MaxOutputTokens != 300 {
			t.Errorf("maxOutputTokens = %d, want 300", req.GenerationConfig.MaxOutputTokens)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "  warm reply  "}}}},
			},
		})
	})

	got, err := client.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "warm reply" {
		t.Errorf("GenerateText = %q, want trimmed candidate text", got)
	}
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestGeminiClientHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	})

	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for HTTP 429")
	}
}
