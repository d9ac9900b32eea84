package chunker

import (
	"regexp"
	"strings"

	"chatassist/internal/domain"
)

// Config controls how documents are split into chunks. Word counts are
// whitespace-delimited tokens, used as a cheap proxy for model tokens.
type Config struct {
	MaxWords     int
	MinWords     int
	OverlapWords int
}

// DefaultConfig returns the chunking defaults used by the chat assistant.
func DefaultConfig() Config {
	return Config{MaxWords: 256, MinWords: 16, OverlapWords: 32}
}

// Paragraph splits text into paragraph- and sentence-aware chunks with word
// overlap across chunk boundaries.
type Paragraph struct {
	cfg Config
}

var paragraphSplit = regexp.MustCompile(`\r?\n\s*\r?\n`)

// NewParagraph creates a paragraph chunker, applying defaults for zero or
// invalid config values.
func NewParagraph(cfg Config) *Paragraph {
	def := DefaultConfig()
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = def.MaxWords
	}
	if cfg.MinWords <= 0 {
		cfg.MinWords = def.MinWords
	}
	if cfg.OverlapWords < 0 {
		cfg.OverlapWords = 0
	}
	if cfg.OverlapWords >= cfg.MaxWords {
		cfg.OverlapWords = cfg.MaxWords / 2
	}
	return &Paragraph{cfg: cfg}
}

// Chunk splits text into an ordered chunk sequence. Whitespace-only input
// yields no chunks; any other input yields at least one.
//
// Sentences accumulate into a running chunk until the next sentence would push
// it past MaxWords; the chunk is then flushed and the next one is seeded with
// the last OverlapWords words of the flushed text. A partial chunk left at a
// paragraph boundary is only emitted when it reaches MinWords; shorter
// residues are dropped, not carried over.
func (c *Paragraph) Chunk(text string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var chunks []domain.Chunk
	flush := func(words []string, start, end int) {
		chunks = append(chunks, domain.Chunk{
			ID:        len(chunks),
			Text:      strings.Join(words, " "),
			StartUnit: start,
			EndUnit:   end,
		})
	}

	unit := 0
	for _, para := range c.units(text) {
		var buf []string
		start, last := -1, -1
		for _, sent := range para {
			words := strings.Fields(sent)
			if len(words) == 0 {
				continue
			}
			if len(buf) > 0 && len(buf)+len(words) > c.cfg.MaxWords {
				flush(buf, start, last)
				buf = overlapTail(buf, c.cfg.OverlapWords)
				start = last
			}
			if len(buf) == 0 {
				start = unit
			}
			buf = append(buf, words...)
			last = unit
			unit++
		}
		if len(buf) >= c.cfg.MinWords {
			flush(buf, start, last)
		}
	}

	// Nothing survived the MinWords policy, but the document is non-empty:
	// emit all of it as a single chunk.
	if len(chunks) == 0 {
		end := unit - 1
		if end < 0 {
			end = 0
		}
		flush(strings.Fields(text), 0, end)
	}
	return chunks
}

// units splits the document into paragraphs of sentences. A document with no
// paragraph breaks but several non-blank lines degenerates to one paragraph
// whose units are the raw lines.
func (c *Paragraph) units(text string) [][]string {
	var paragraphs []string
	for _, p := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 1 {
		if lines := nonBlankLines(paragraphs[0]); len(lines) > 1 {
			return [][]string{lines}
		}
	}
	units := make([][]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		units = append(units, splitSentences(p))
	}
	return units
}

// splitSentences cuts a paragraph on terminal punctuation (. ! ?) followed by
// whitespace, keeping the punctuation attached to the sentence.
func splitSentences(p string) []string {
	var out []string
	start := 0
	for i := 0; i < len(p); i++ {
		if !isTerminal(p[i]) {
			continue
		}
		j := i + 1
		for j < len(p) && isTerminal(p[j]) {
			j++
		}
		if j < len(p) && !isSpace(p[j]) {
			i = j - 1
			continue
		}
		if s := strings.TrimSpace(p[start:j]); s != "" {
			out = append(out, s)
		}
		start = j
		i = j - 1
	}
	if tail := strings.TrimSpace(p[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func overlapTail(words []string, n int) []string {
	if n <= 0 || len(words) == 0 {
		return nil
	}
	if n > len(words) {
		n = len(words)
	}
	tail := make([]string, n)
	copy(tail, words[len(words)-n:])
	return tail
}
