package newsdesk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/fantachat/fantachat-api/internal/usecase"
)

func completionBody(content string) []byte {
	encoded, _ := sonic.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return encoded
}

func TestCompose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("unexpected auth header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(`{"title":"Che giornata!","content":"Un pezzo."}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "key-1"})

	title, content, err := client.Compose(context.Background(), "giornata 1")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if title != "Che giornata!" || content != "Un pezzo." {
		t.Fatalf("unexpected draft: %q %q", title, content)
	}
}

func TestComposeStripsCodeFence(t *testing.T) {
	fenced := "```json\n{\"title\":\"T\",\"content\":\"C\"}\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(completionBody(fenced))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "key-1"})

	title, content, err := client.Compose(context.Background(), "giornata 1")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if title != "T" || content != "C" {
		t.Fatalf("unexpected draft: %q %q", title, content)
	}
}

func TestComposeRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write(completionBody(`{"title":"T","content":"C"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "key-1", MaxRetries: 2})

	if _, _, err := client.Compose(context.Background(), "giornata 1"); err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestComposeExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "key-1", MaxRetries: 1})

	if _, _, err := client.Compose(context.Background(), "giornata 1"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestComposeWithoutAPIKey(t *testing.T) {
	client := NewClient(ClientConfig{})

	if _, _, err := client.Compose(context.Background(), "giornata 1"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestParseDraftRejectsBlankFields(t *testing.T) {
	if _, _, err := parseDraft(`{"title":"","content":"C"}`); err == nil {
		t.Fatal("expected error for blank title")
	}
	if _, _, err := parseDraft(`not json`); err == nil {
		t.Fatal("expected error for malformed draft")
	}
}
