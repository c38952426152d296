package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "test-model",
		Timeout:    5 * time.Second,
	})
}

func TestClient_GenerateJSON(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotRequest chatRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := sonic.Unmarshal(body, &gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{\"ok\": true}"}, "finish_reason": "stop"}]}`))
	}))

	content, err := client.GenerateJSON(context.Background(), "analyze this match")
	if err != nil {
		t.Fatalf("GenerateJSON error: %v", err)
	}

	if content != `{"ok": true}` {
		t.Fatalf("content = %q, want raw completion text", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("auth header = %q, want Bearer test-key", gotAuth)
	}
	if gotRequest.Model != "test-model" {
		t.Fatalf("model = %q, want test-model", gotRequest.Model)
	}
	if gotRequest.ResponseFormat == nil || gotRequest.ResponseFormat.Type != "json_object" {
		t.Fatalf("response format = %+v, want json_object", gotRequest.ResponseFormat)
	}
	if len(gotRequest.Messages) != 1 || gotRequest.Messages[0].Content != "analyze this match" {
		t.Fatalf("messages = %+v, want single user prompt", gotRequest.Messages)
	}
}

func TestClient_GenerateJSON_ErrorStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	if _, err := client.GenerateJSON(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestClient_GenerateJSON_EmptyChoices(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))

	if _, err := client.GenerateJSON(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestClient_GenerateJSON_MissingKey(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if _, err := client.GenerateJSON(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error when api key is missing")
	}
}
