package openai

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("CHATASSIST_TEST_KEY", "")
	if _, err := New(Config{APIKeyEnv: "CHATASSIST_TEST_KEY"}); err == nil {
		t.Fatal("expected error when API key env is unset")
	}
}

func TestEmbedBatchesAndNormalizes(t *testing.T) {
	var batchSizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		batchSizes = append(batchSizes, len(req.Input))
		data := make([]map[string]any, len(req.Input))
		for i, text := range req.Input {
			data[i] = map[string]any{
				"index":     i,
				"embedding": []float64{float64(len(text)), 2},
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	defer srv.Close()

	t.Setenv("CHATASSIST_TEST_KEY", "sk-test")
	c, err := New(Config{
		BaseURL:   srv.URL,
		APIKeyEnv: "CHATASSIST_TEST_KEY",
		BatchSize: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	texts := []string{"a", "bb", "ccc"}
	vectors, err := c.Embed(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	if len(batchSizes) != 2 || batchSizes[0] != 2 || batchSizes[1] != 1 {
		t.Errorf("batch sizes = %v, want [2 1]", batchSizes)
	}
	// Vector i encodes len(texts[i]); order must survive batching.
	prev := -1.0
	for i, v := range vectors {
		norm := 0.0
		for _, x := range v {
			norm += x * x
		}
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("vector %d not unit length: %f", i, norm)
		}
		if v[0] <= prev {
			t.Errorf("vector order broken at %d: %v", i, vectors)
		}
		prev = v[0]
	}
}
