// Package engine implements semantic context retrieval over a single
// document: the document is chunked at construction, embedded and indexed
// lazily on the first query, and queries return ranked, context-expanded
// text blocks.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"chatassist/internal/chunker"
	"chatassist/internal/domain"
	"chatassist/internal/vectorindex"
)

// BackendFactory constructs the embedding backend. It is invoked once, on the
// first query, so that a session that never asks a question never pays the
// backend construction cost.
type BackendFactory func() (domain.Embedder, error)

// QueryOptions controls a single retrieval call.
type QueryOptions struct {
	// TopK caps how many index hits are considered. Values <= 0 fall back
	// to 3.
	TopK int
	// MinScore discards hits whose cosine similarity is below it.
	MinScore float64
	// Window is the number of neighboring chunks included on each side of a
	// matched chunk. Negative values are treated as 0.
	Window int
}

// Engine retrieves relevant document context for natural-language queries.
// The chunk sequence is immutable after construction; the index is built at
// most once and is read-only afterwards, so concurrent queries are safe.
type Engine struct {
	chunks  []domain.Chunk
	factory BackendFactory
	logger  *slog.Logger

	buildOnce sync.Once
	buildErr  error
	embedder  domain.Embedder
	index     *vectorindex.Flat
}

type options struct {
	chunker domain.Chunker
	logger  *slog.Logger
}

// Option configures an Engine at construction.
type Option func(*options)

// WithChunker replaces the default paragraph chunking policy.
func WithChunker(c domain.Chunker) Option {
	return func(o *options) { o.chunker = c }
}

// WithLogger sets the logger used for absorbed runtime failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an engine over already-extracted document text. An empty or
// whitespace-only document is valid and simply yields no chunks.
func New(text string, factory BackendFactory, opts ...Option) *Engine {
	o := options{
		chunker: chunker.NewParagraph(chunker.DefaultConfig()),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		chunks:  o.chunker.Chunk(text),
		factory: factory,
		logger:  o.logger,
	}
}

// NewFromBytes creates an engine from raw document bytes. The bytes must be
// valid UTF-8; binary format decoding belongs to the extraction layer, not
// here.
func NewFromBytes(data []byte, factory BackendFactory, opts ...Option) (*Engine, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("document bytes are not valid UTF-8")
	}
	return New(string(data), factory, opts...), nil
}

// Chunks returns the immutable chunk sequence.
func (e *Engine) Chunks() []domain.Chunk { return e.chunks }

// ensureIndex builds the embedder and index exactly once. A failed build is
// final: the engine degrades to "no index" and every later query returns
// empty results.
func (e *Engine) ensureIndex(ctx context.Context) error {
	e.buildOnce.Do(func() {
		if len(e.chunks) == 0 {
			return
		}
		backend, err := e.factory()
		if err != nil {
			e.buildErr = fmt.Errorf("construct embedding backend: %w", err)
			return
		}
		texts := make([]string, len(e.chunks))
		for i, ch := range e.chunks {
			texts[i] = ch.Text
		}
		vectors, err := backend.Embed(ctx, texts)
		if err != nil {
			e.buildErr = fmt.Errorf("embed %d chunks: %w", len(texts), err)
			return
		}
		if len(vectors) != len(e.chunks) {
			e.buildErr = fmt.Errorf("backend returned %d vectors for %d chunks", len(vectors), len(e.chunks))
			return
		}
		e.embedder = backend
		e.index = vectorindex.Build(vectors)
	})
	return e.buildErr
}

// Query returns context blocks relevant to text, highest score first. It
// fails closed: backend and index failures are logged and produce an empty
// result list, never an error or panic.
func (e *Engine) Query(ctx context.Context, text string, opts QueryOptions) []domain.RetrievalResult {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.Window < 0 {
		opts.Window = 0
	}

	if err := e.ensureIndex(ctx); err != nil {
		e.logger.Warn("context retrieval unavailable", "err", err)
		return nil
	}
	if e.index == nil {
		return nil
	}

	queryVecs, err := e.embedder.Embed(ctx, []string{text})
	if err != nil {
		e.logger.Warn("query embedding failed", "backend", e.embedder.Name(), "err", err)
		return nil
	}
	if len(queryVecs) != 1 {
		e.logger.Warn("query embedding returned unexpected vector count", "count", len(queryVecs))
		return nil
	}

	hits := e.index.Search(queryVecs[0], opts.TopK)
	kept := hits[:0]
	for _, h := range hits {
		if h.Score >= opts.MinScore {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	merged := mergeIntervals(windows(kept, opts.Window, len(e.chunks)))
	results := make([]domain.RetrievalResult, 0, len(merged))
	for _, iv := range merged {
		results = append(results, e.renderBlock(iv))
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].StartID < results[j].StartID
	})
	return results
}
