// Package openai embeds text through the OpenAI embeddings API or any
// compatible endpoint.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"chatassist/internal/embedding"
)

// Client is a batched embeddings client for OpenAI-compatible APIs.
type Client struct {
	api       *goopenai.Client
	model     string
	batchSize int
}

// Config configures the OpenAI embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	BatchSize int
	Timeout   time.Duration
}

// New creates an OpenAI embeddings client. The API key is read from the
// environment variable named by APIKeyEnv.
func New(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = embedding.DefaultBatchSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	apiCfg := goopenai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:       goopenai.NewClientWithConfig(apiCfg),
		model:     cfg.Model,
		batchSize: cfg.BatchSize,
	}, nil
}

// Name returns the backend identifier used in logs.
func (c *Client) Name() string { return "openai/" + c.model }

// Embed returns one normalized vector per input text, preserving order.
// Requests are issued in fixed-size batches.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		resp, err := c.api.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
			Model: goopenai.EmbeddingModel(c.model),
			Input: batch,
		})
		if err != nil {
			return nil, fmt.Errorf("embeddings batch starting at %d: %w", start, err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("embeddings batch starting at %d: got %d vectors for %d inputs", start, len(resp.Data), len(batch))
		}
		for _, item := range resp.Data {
			vec := make([]float64, len(item.Embedding))
			for i, x := range item.Embedding {
				vec[i] = float64(x)
			}
			embedding.Normalize(vec)
			vectors[start+item.Index] = vec
		}
	}
	return vectors, nil
}
