package cleanup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testGroq(url string) *Groq {
	g := NewGroq("test-key", "llama-3.3-70b-versatile")
	g.apiURL = url
	return g
}

func TestCleanSuccess(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"I think we should go."}}]}`))
	}))
	defer srv.Close()

	g := testGroq(srv.URL)
	got, err := g.Clean(context.Background(), "um so basically um I think we should um go")
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if got != "I think we should go." {
		t.Errorf("Clean = %q, want %q", got, "I think we should go.")
	}

	if gotReq.MaxTokens != 2000 {
		t.Errorf("max_tokens = %d, want 2000", gotReq.MaxTokens)
	}
	if gotReq.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", gotReq.Messages[0].Role)
	}
	if want := "Here is the user prompt: um so basically um I think we should um go"; gotReq.Messages[1].Content != want {
		t.Errorf("user content = %q, want %q", gotReq.Messages[1].Content, want)
	}
}

func TestCleanNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := testGroq(srv.URL)
	_, err := g.Clean(context.Background(), "text")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", apiErr.Status)
	}
}

func TestCleanMissingChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g := testGroq(srv.URL)
	if _, err := g.Clean(context.Background(), "text"); err == nil {
		t.Fatal("expected error for response without choices")
	}
}
