package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the chat model backend.
type LLMConfig struct {
	Host         string      `yaml:"host"`
	DefaultModel string      `yaml:"default_model"`
	Models       []ModelSpec `yaml:"models,omitempty"`
	Temperature  float64     `yaml:"temperature"`
	TimeoutSecs  int         `yaml:"timeout_secs"`
}

// ModelSpec pairs a display label with an Ollama model tag.
type ModelSpec struct {
	Label string `yaml:"label"`
	Tag   string `yaml:"tag"`
}

// OllamaEmbedderConfig holds configuration for the Ollama embedder.
type OllamaEmbedderConfig struct {
	Host        string `yaml:"host"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	BatchSize   int    `yaml:"batch_size"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	Ollama *OllamaEmbedderConfig `yaml:"ollama,omitempty"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	MaxWords     int `yaml:"max_words"`
	MinWords     int `yaml:"min_words"`
	OverlapWords int `yaml:"overlap_words"`
}

// RetrievalConfig configures how retrieved chunks are selected and expanded.
type RetrievalConfig struct {
	TopK           int     `yaml:"top_k"`
	ScoreThreshold float64 `yaml:"score_threshold"`
	Window         int     `yaml:"window"`
}

// ChatConfig configures the conversation layer.
type ChatConfig struct {
	SystemPrompt string `yaml:"system_prompt"`
	HistoryLimit int    `yaml:"history_limit"`
}

// SummarizerConfig configures the document overview shown on upload.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	LLM        LLMConfig        `yaml:"llm"`
	Embedder   EmbedderConfig   `yaml:"embedder"`
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Chat       ChatConfig       `yaml:"chat"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/chatassist/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatassist", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		LLM: LLMConfig{
			Host:         "http://localhost:11434",
			DefaultModel: "deepseek-r1:8b",
			Models: []ModelSpec{
				{Label: "DeepSeek-R1 1.5B", Tag: "deepseek-r1:1.5b"},
				{Label: "DeepSeek-R1 8B", Tag: "deepseek-r1:8b"},
				{Label: "DeepSeek-R1 14B", Tag: "deepseek-r1:14b"},
				{Label: "llama 3.1 8B", Tag: "llama3.1:8b"},
			},
			Temperature: 0.6,
			TimeoutSecs: 300,
		},
		Embedder: EmbedderConfig{
			Type:   "ollama",
			Ollama: &OllamaEmbedderConfig{Host: "http://localhost:11434", Model: "nomic-embed-text", TimeoutSecs: 30},
		},
		Chunker:    ChunkerConfig{MaxWords: 256, MinWords: 16, OverlapWords: 32},
		Retrieval:  RetrievalConfig{TopK: 3, ScoreThreshold: 0.35, Window: 2},
		Chat:       ChatConfig{SystemPrompt: "You are an AI assistant, answering user questions accurately.", HistoryLimit: 6},
		Summarizer: SummarizerConfig{MaxSentences: 3},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.LLM.Host == "" {
		cfg.LLM.Host = "http://localhost:11434"
	}
	if cfg.LLM.DefaultModel == "" {
		cfg.LLM.DefaultModel = "deepseek-r1:8b"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.6
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 300
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "ollama"
	}
	if cfg.Embedder.Type == "ollama" {
		if cfg.Embedder.Ollama == nil {
			cfg.Embedder.Ollama = &OllamaEmbedderConfig{}
		}
		if cfg.Embedder.Ollama.Host == "" {
			cfg.Embedder.Ollama.Host = cfg.LLM.Host
		}
		if cfg.Embedder.Ollama.Model == "" {
			cfg.Embedder.Ollama.Model = "nomic-embed-text"
		}
		if cfg.Embedder.Ollama.TimeoutSecs == 0 {
			cfg.Embedder.Ollama.TimeoutSecs = 30
		}
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
		if cfg.Embedder.OpenAI.BatchSize == 0 {
			cfg.Embedder.OpenAI.BatchSize = 32
		}
	}
	if cfg.Chunker.MaxWords == 0 {
		cfg.Chunker.MaxWords = 256
	}
	if cfg.Chunker.MinWords == 0 {
		cfg.Chunker.MinWords = 16
	}
	if cfg.Chunker.OverlapWords == 0 {
		cfg.Chunker.OverlapWords = 32
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Retrieval.ScoreThreshold == 0 {
		cfg.Retrieval.ScoreThreshold = 0.35
	}
	if cfg.Retrieval.Window == 0 {
		cfg.Retrieval.Window = 2
	}
	if cfg.Chat.SystemPrompt == "" {
		cfg.Chat.SystemPrompt = "You are an AI assistant, answering user questions accurately."
	}
	if cfg.Chat.HistoryLimit == 0 {
		cfg.Chat.HistoryLimit = 6
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 3
	}
}
