package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chatassist/internal/chat"
	"chatassist/internal/chunker"
	"chatassist/internal/config"
	"chatassist/internal/domain"
	ollamaembed "chatassist/internal/embedding/ollama"
	openaiembed "chatassist/internal/embedding/openai"
	"chatassist/internal/engine"
	"chatassist/internal/extract"
	"chatassist/internal/llm"
	"chatassist/internal/prompt"
)

// embedderFactory defers backend construction so a missing embedding backend
// only surfaces when retrieval is actually needed.
func embedderFactory(cfg *config.AppConfig) engine.BackendFactory {
	return func() (domain.Embedder, error) {
		return newEmbedder(cfg.Embedder)
	}
}

// newEmbedder constructs the configured embedding backend. The switch lives
// here, at the composition root, so the adapter packages stay leaves.
func newEmbedder(cfg config.EmbedderConfig) (domain.Embedder, error) {
	switch cfg.Type {
	case "ollama", "":
		oc := cfg.Ollama
		if oc == nil {
			oc = &config.OllamaEmbedderConfig{}
		}
		return ollamaembed.New(ollamaembed.Config{
			Host:    oc.Host,
			Model:   oc.Model,
			Timeout: time.Duration(oc.TimeoutSecs) * time.Second,
		})
	case "openai":
		oc := cfg.OpenAI
		if oc == nil {
			return nil, fmt.Errorf("openai embedder config missing")
		}
		return openaiembed.New(openaiembed.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			BatchSize: oc.BatchSize,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Type)
	}
}

// loadDocument reads path and converts it to plain text for indexing.
func loadDocument(path string) (name, text string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	name = filepath.Base(path)
	text, err = extract.Text(name, data)
	if err != nil {
		return "", "", fmt.Errorf("load %s: %w", path, err)
	}
	return name, text, nil
}

// buildEngine creates the retrieval engine for one document.
func buildEngine(cfg *config.AppConfig, text string) *engine.Engine {
	return engine.New(text, embedderFactory(cfg),
		engine.WithChunker(chunker.NewParagraph(chunker.Config{
			MaxWords:     cfg.Chunker.MaxWords,
			MinWords:     cfg.Chunker.MinWords,
			OverlapWords: cfg.Chunker.OverlapWords,
		})),
		engine.WithLogger(logger),
	)
}

func queryOptions(cfg *config.AppConfig) engine.QueryOptions {
	return engine.QueryOptions{
		TopK:     cfg.Retrieval.TopK,
		MinScore: cfg.Retrieval.ScoreThreshold,
		Window:   cfg.Retrieval.Window,
	}
}

// buildSession assembles a chat session. eng and fileName are zero when no
// document is attached; model overrides the configured default when non-empty.
func buildSession(cfg *config.AppConfig, eng *engine.Engine, fileName, model string) *chat.Session {
	if model == "" {
		model = cfg.LLM.DefaultModel
	}
	client := llm.NewClient(llm.Config{
		Host:    cfg.LLM.Host,
		Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	return chat.NewSession(chat.Config{
		Generator:   client,
		Model:       model,
		Temperature: cfg.LLM.Temperature,
		Engine:      eng,
		FileName:    fileName,
		QueryOpts:   queryOptions(cfg),
		Builder: prompt.NewBuilder(
			prompt.WithSystem(cfg.Chat.SystemPrompt),
			prompt.WithHistoryLimit(cfg.Chat.HistoryLimit),
		),
		Logger: logger,
	})
}

// configuredModels converts the config palette for the TUI.
func configuredModels(cfg *config.AppConfig) []llm.Model {
	if len(cfg.LLM.Models) == 0 {
		return llm.DefaultModels()
	}
	models := make([]llm.Model, len(cfg.LLM.Models))
	for i, m := range cfg.LLM.Models {
		models[i] = llm.Model{Label: m.Label, Tag: m.Tag}
	}
	return models
}
