package ollama

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbedPreservesOrderAndNormalizes(t *testing.T) {
	// Return a vector derived from the prompt so order is observable.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		vec := []float64{float64(len(req.Prompt)), 1}
		_ = json.NewEncoder(w).Encode(map[string]any{"embedding": vec})
	}))
	defer srv.Close()

	c, err := New(Config{Host: srv.URL, Model: "nomic-embed-text"})
	if err != nil {
		t.Fatal(err)
	}
	vectors, err := c.Embed(context.Background(), []string{"a", "abcd"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vectors))
	}
	// First prompt has length 1, second length 4; order must match input.
	if vectors[0][0] >= vectors[1][0] {
		t.Errorf("vector order does not follow input order: %v", vectors)
	}
	for i, v := range vectors {
		norm := 0.0
		for _, x := range v {
			norm += x * x
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("vector %d not unit length: %f", i, norm)
		}
	}
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := New(Config{Host: srv.URL, Model: "missing"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Embed(context.Background(), []string{"text"}); err == nil {
		t.Fatal("expected error from failing backend")
	}
}

func TestNewRequiresModel(t *testing.T) {
	if _, err := New(Config{Host: "http://localhost:11434"}); err == nil {
		t.Fatal("expected error for empty model")
	}
}
