// Package prompt assembles the text sent to the language model: system
// instruction, retrieved document context, recent conversation history, and
// the user's question.
package prompt

import (
	"fmt"
	"strings"

	"chatassist/internal/domain"
)

// DefaultSystem is the instruction used when the config does not override it.
const DefaultSystem = "You are an AI assistant, answering user questions accurately."

// DefaultHistoryLimit bounds how many recent messages are included.
const DefaultHistoryLimit = 6

// Builder renders prompts for a single attached document.
type Builder struct {
	system       string
	historyLimit int
}

// Option configures a Builder.
type Option func(*Builder)

// WithSystem overrides the system instruction.
func WithSystem(system string) Option {
	return func(b *Builder) {
		if strings.TrimSpace(system) != "" {
			b.system = system
		}
	}
}

// WithHistoryLimit overrides how many recent messages the prompt carries.
func WithHistoryLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.historyLimit = n
		}
	}
}

// NewBuilder creates a Builder with the default system instruction.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		system:       DefaultSystem,
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HistoryLimit reports how many recent messages Build expects to receive.
func (b *Builder) HistoryLimit() int { return b.historyLimit }

// Build renders the full prompt. fileName and results describe the attached
// document and the context retrieved for the question; history is the
// pre-rendered recent conversation (may be empty).
func (b *Builder) Build(question, fileName string, results []domain.RetrievalResult, history string) string {
	var sb strings.Builder
	sb.WriteString(b.system)
	sb.WriteString("\n\n")

	if block := ContextBlock(fileName, results); block != "" {
		sb.WriteString(block)
		sb.WriteString("\n\n")
	}

	if history != "" {
		sb.WriteString("Conversation so far:\n")
		sb.WriteString(history)
		sb.WriteString("\n\n")
	}

	sb.WriteString("user: ")
	sb.WriteString(question)
	return sb.String()
}

// ContextBlock renders retrieved context in the attachment framing the model
// is prompted with. Returns "" when there is nothing to attach.
func ContextBlock(fileName string, results []domain.RetrievalResult) string {
	if fileName == "" || len(results) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[file name]: %s\n", fileName)
	sb.WriteString("[file content begin]\n")
	for i, r := range results {
		fmt.Fprintf(&sb, "Chunk #%d (Score: %.2f):\n%s\n", i+1, r.Score, r.Text)
		if i < len(results)-1 {
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("[file content end]")
	return sb.String()
}

// FullDocumentBlock renders the entire document as the attachment, used when
// retrieval is disabled or the document is small enough to include whole.
func FullDocumentBlock(fileName, text string) string {
	if fileName == "" || strings.TrimSpace(text) == "" {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[file name]: %s\n", fileName)
	sb.WriteString("[file content begin]\n")
	sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString("[file content end]")
	return sb.String()
}

// BuildFull is Build with the whole document attached instead of retrieved
// chunks.
func (b *Builder) BuildFull(question, fileName, text, history string) string {
	var sb strings.Builder
	sb.WriteString(b.system)
	sb.WriteString("\n\n")

	if block := FullDocumentBlock(fileName, text); block != "" {
		sb.WriteString(block)
		sb.WriteString("\n\n")
	}

	if history != "" {
		sb.WriteString("Conversation so far:\n")
		sb.WriteString(history)
		sb.WriteString("\n\n")
	}

	sb.WriteString("user: ")
	sb.WriteString(question)
	return sb.String()
}
