package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenAIComplete(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  The talk is about Go.  "}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "sk-test", "gpt-4o-mini", 0.2, 5*time.Second)
	answer, err := c.Complete(context.Background(), "What is the talk about?")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if answer != "The talk is about Go." {
		t.Errorf("answer: got %q", answer)
	}
	if gotReq.Model != "gpt-4o-mini" || gotReq.Temperature != 0.2 {
		t.Errorf("request: got model=%s temp=%f", gotReq.Model, gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("messages: got %+v", gotReq.Messages)
	}
}

func TestOpenAICompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "sk-test", "gpt-4o-mini", 0.2, 5*time.Second)
	if _, err := c.Complete(context.Background(), "q"); err == nil {
		t.Error("expected error on API failure")
	}
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "sk-test", "gpt-4o-mini", 0.2, 5*time.Second)
	if _, err := c.Complete(context.Background(), "q"); err == nil {
		t.Error("expected error on empty choices")
	}
}
