package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

type capturedRequest struct {
	authorization string
	model         string
	temperature   float64
	role          string
	content       string
}

func newFakeProvider(
	t *testing.T,
	status int,
	responseBody string,
) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.authorization = r.Header.Get("Authorization")

		var req struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		captured.model = req.Model
		captured.temperature = req.Temperature
		if len(req.Messages) != 0 {
			captured.role = req.Messages[0].Role
			captured.content = req.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, responseBody)
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server, captured
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		Name:    Groq,
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func TestClientCompleteSendsExpectedPayload(t *testing.T) {
	server, captured := newFakeProvider(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"hello summary"}}]}`)

	client := newTestClient(server.URL)

	text, err := client.Complete(context.Background(), "Summarize this", "the transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "hello summary" {
		t.Fatalf("unexpected text: %q", text)
	}

	if captured.authorization != "Bearer test-key" {
		t.Fatalf("unexpected authorization header: %q", captured.authorization)
	}
	if captured.model != "test-model" {
		t.Fatalf("unexpected model: %q", captured.model)
	}
	if captured.temperature != 0.5 {
		t.Fatalf("unexpected temperature: %v", captured.temperature)
	}
	if captured.role != "user" {
		t.Fatalf("unexpected role: %q", captured.role)
	}
	if captured.content != "Summarize this\n\nthe transcript" {
		t.Fatalf("unexpected content: %q", captured.content)
	}
}

func TestClientCompleteRateLimited(t *testing.T) {
	server, _ := newFakeProvider(t, http.StatusTooManyRequests,
		`{"error":{"message":"rate limited"}}`)

	client := newTestClient(server.URL)

	_, err := client.Complete(context.Background(), "Summarize", "text")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if !IsRateLimited(err) {
		t.Fatalf("expected rate-limited error, got %v", err)
	}
}

func TestClientCompleteServerError(t *testing.T) {
	server, _ := newFakeProvider(t, http.StatusInternalServerError,
		`{"error":{"message":"boom"}}`)

	client := newTestClient(server.URL)

	_, err := client.Complete(context.Background(), "Summarize", "text")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if apiErr.Provider != Groq {
		t.Fatalf("unexpected provider: %s", apiErr.Provider)
	}
	if IsRateLimited(err) {
		t.Fatalf("server error must not count as rate limited")
	}
}

func TestClientCompleteMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no choices", body: `{"choices":[]}`},
		{name: "empty content", body: `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newFakeProvider(t, http.StatusOK, tt.body)

			client := newTestClient(server.URL)

			_, err := client.Complete(context.Background(), "Summarize", "text")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestRegistryRejectsUnknownProvider(t *testing.T) {
	registry := NewRegistry(Config{
		Name:    Groq,
		BaseURL: "http://127.0.0.1:0",
		APIKey:  "test-key",
		Model:   "test-model",
	})

	_, err := registry.Complete(context.Background(), ID("anthropic"), "Summarize", "text")

	var invalid *InvalidProviderError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidProviderError, got %v", err)
	}
	if invalid.Name != "anthropic" {
		t.Fatalf("unexpected provider name: %q", invalid.Name)
	}
}
