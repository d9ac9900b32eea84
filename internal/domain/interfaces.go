package domain

import "context"

// Chunk is a contiguous retrieval unit of document text, the smallest
// addressable item in the index. ID equals its position in the chunk
// sequence; StartUnit/EndUnit are the sentence ordinals it covers.
type Chunk struct {
	ID        int
	Text      string
	StartUnit int
	EndUnit   int
}

// QueryHit is a single index match. Score is cosine similarity in [-1, 1],
// higher is more relevant.
type QueryHit struct {
	ChunkID int
	Score   float64
}

// RetrievalResult is a ranked, context-expanded text block returned to the
// caller. StartID/EndID bound the chunk range the block was built from and
// MatchedIDs lists the chunks that actually matched the query.
type RetrievalResult struct {
	Text       string
	Score      float64
	StartID    int
	EndID      int
	MatchedIDs []int
}

// Chunker splits document text into an ordered chunk sequence. Implementations
// must be deterministic: the same text always yields the same chunks.
type Chunker interface {
	Chunk(text string) []Chunk
}

// Embedder converts texts into L2-normalized vectors, one per input,
// preserving order. Implementations batch internally; batch boundaries must
// not change the result.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
