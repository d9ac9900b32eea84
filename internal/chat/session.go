// Package chat orchestrates one conversation: retrieval over an attached
// document, prompt assembly, model streaming, and history bookkeeping.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"chatassist/internal/conversation"
	"chatassist/internal/domain"
	"chatassist/internal/engine"
	"chatassist/internal/llm"
	"chatassist/internal/prompt"
	"chatassist/internal/streaming"
)

// Generator is the completion backend a session streams from.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest, onToken func(token string) error) (string, error)
}

// Token is one streamed piece of model output, tagged with where it belongs.
type Token struct {
	Text      string
	Reasoning bool
}

// Reply is the final outcome of one Ask.
type Reply struct {
	Answer    string
	Reasoning string
	Context   []domain.RetrievalResult
}

// Config assembles a Session. Generator and Model are required; Engine and
// FileName are nil/empty when no document is attached.
type Config struct {
	Generator   Generator
	Model       string
	Temperature float64
	Engine      *engine.Engine
	FileName    string
	QueryOpts   engine.QueryOptions
	Builder     *prompt.Builder
	Logger      *slog.Logger
}

// Session is a single conversation. Methods are not safe for concurrent use;
// callers serialize Ask.
type Session struct {
	gen         Generator
	model       string
	temperature float64
	engine      *engine.Engine
	fileName    string
	queryOpts   engine.QueryOptions
	builder     *prompt.Builder
	store       *conversation.Store
	logger      *slog.Logger
}

// NewSession creates a session from cfg.
func NewSession(cfg Config) *Session {
	builder := cfg.Builder
	if builder == nil {
		builder = prompt.NewBuilder()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		gen:         cfg.Generator,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		engine:      cfg.Engine,
		fileName:    cfg.FileName,
		queryOpts:   cfg.QueryOpts,
		builder:     builder,
		store:       conversation.NewStore(),
		logger:      logger,
	}
}

// Model returns the model tag the session generates with.
func (s *Session) Model() string { return s.model }

// SetModel switches the model for subsequent turns.
func (s *Session) SetModel(model string) { s.model = model }

// FileName returns the attached document name, or "".
func (s *Session) FileName() string { return s.fileName }

// History returns the rendered recent conversation.
func (s *Session) History() string {
	return s.store.History(s.builder.HistoryLimit())
}

// Ask runs one turn: retrieve context for question, build the prompt, stream
// the completion through the reasoning splitter, and record both sides in
// history. onToken receives answer and reasoning deltas in stream order; it
// may be nil.
func (s *Session) Ask(ctx context.Context, question string, onToken func(Token)) (Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, nil
	}

	var results []domain.RetrievalResult
	if s.engine != nil {
		results = s.engine.Query(ctx, question, s.queryOpts)
		s.logger.Debug("context retrieved", "query", question, "results", len(results))
	}

	// History is captured before this turn is recorded so the question
	// appears once, at the end of the prompt.
	history := s.store.History(s.builder.HistoryLimit())
	p := s.builder.Build(question, s.fileName, results, history)
	s.store.Add(conversation.RoleUser, question)

	parser := streaming.NewParser()
	var sentAnswer, sentReasoning int
	emit := func() {
		if onToken == nil {
			sentAnswer = len(parser.Answer())
			sentReasoning = len(parser.Reasoning())
			return
		}
		if a := parser.Answer(); len(a) > sentAnswer {
			onToken(Token{Text: a[sentAnswer:]})
			sentAnswer = len(a)
		}
		if r := parser.Reasoning(); len(r) > sentReasoning {
			onToken(Token{Text: r[sentReasoning:], Reasoning: true})
			sentReasoning = len(r)
		}
	}

	_, err := s.gen.Generate(ctx, llm.GenerateRequest{
		Model:       s.model,
		Prompt:      p,
		Temperature: s.temperature,
	}, func(token string) error {
		parser.Feed(token)
		emit()
		return nil
	})
	if err != nil {
		return Reply{}, err
	}

	answer := parser.Flush()
	emit()
	s.store.Add(conversation.RoleAssistant, answer)

	return Reply{
		Answer:    answer,
		Reasoning: parser.Reasoning(),
		Context:   results,
	}, nil
}

// Reset clears the conversation history.
func (s *Session) Reset() { s.store.Clear() }
