// Package llm streams completions from an Ollama-compatible server.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHost is the standard local Ollama address.
const DefaultHost = "http://localhost:11434"

// DefaultTemperature matches the sampling temperature the assistant was tuned
// with.
const DefaultTemperature = 0.6

// Model is a selectable chat model: a display label plus the Ollama tag.
type Model struct {
	Label string
	Tag   string
}

// DefaultModels returns the model palette offered in the UI.
func DefaultModels() []Model {
	return []Model{
		{Label: "DeepSeek-R1 1.5B", Tag: "deepseek-r1:1.5b"},
		{Label: "DeepSeek-R1 8B", Tag: "deepseek-r1:8b"},
		{Label: "DeepSeek-R1 14B", Tag: "deepseek-r1:14b"},
		{Label: "llama 3.1 8B", Tag: "llama3.1:8b"},
	}
}

// Client talks to one Ollama server.
type Client struct {
	host   string
	client *http.Client
}

// Config holds client settings. Zero values fall back to defaults.
type Config struct {
	Host    string
	Timeout time.Duration
}

// NewClient creates a client for the configured host.
func NewClient(cfg Config) *Client {
	host := strings.TrimRight(cfg.Host, "/")
	if host == "" {
		host = DefaultHost
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		// Streaming completions on small local models can take minutes.
		timeout = 5 * time.Minute
	}
	return &Client{
		host:   host,
		client: &http.Client{Timeout: timeout},
	}
}

// GenerateRequest describes one completion.
type GenerateRequest struct {
	Model       string
	Prompt      string
	Temperature float64 // 0 means DefaultTemperature
}

type generatePayload struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate streams a completion, calling onToken for each piece of response
// text as it arrives. A non-nil error from onToken aborts the stream and is
// returned unchanged. The full concatenated response is returned on success.
func (c *Client) Generate(ctx context.Context, req GenerateRequest, onToken func(token string) error) (string, error) {
	if req.Model == "" {
		return "", errors.New("llm: model is required")
	}
	temp := req.Temperature
	if temp == 0 {
		temp = DefaultTemperature
	}
	payload := generatePayload{
		Model:   req.Model,
		Prompt:  req.Prompt,
		Stream:  true,
		Options: map[string]any{"temperature": temp},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("llm: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("llm: generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("llm: /api/generate returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk generateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return full.String(), fmt.Errorf("llm: decode stream line: %w", err)
		}
		if chunk.Error != "" {
			return full.String(), fmt.Errorf("llm: server error: %s", chunk.Error)
		}
		if chunk.Response != "" {
			full.WriteString(chunk.Response)
			if onToken != nil {
				if err := onToken(chunk.Response); err != nil {
					return full.String(), err
				}
			}
		}
		if chunk.Done {
			return full.String(), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("llm: read stream: %w", err)
	}
	return full.String(), nil
}

// Ping checks the server is reachable, for fail-fast startup diagnostics.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("llm: server unreachable at %s: %w", c.host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("llm: /api/tags returned %s", resp.Status)
	}
	return nil
}
