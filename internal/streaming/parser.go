// Package streaming separates a model's chain-of-thought from its answer
// while tokens arrive. Reasoning models wrap their internal monologue in
// <think> or <thought> tags; the parser routes tagged text to the reasoning
// channel and everything else to the answer, coping with tags split across
// chunk boundaries.
package streaming

import "strings"

const (
	tagThink   = "think"
	tagThought = "thought"

	// holdback keeps enough trailing bytes in the buffer to cover a partial
	// tag at a chunk boundary; "</thought>" is the longest tag we match.
	holdback = len("</thought>")
)

// Parser is a stateful tag splitter. Feed it chunks in arrival order, then
// call Flush once the stream ends. Not safe for concurrent use.
type Parser struct {
	answer     strings.Builder
	reasoning  strings.Builder
	buffer     string
	inThinking bool
	currentTag string
}

// NewParser returns a parser ready for the first chunk.
func NewParser() *Parser { return &Parser{} }

// Feed consumes one chunk of streamed text.
func (p *Parser) Feed(chunk string) {
	p.buffer += chunk

	for p.buffer != "" {
		if !p.inThinking {
			if !p.consumeAnswer() {
				return
			}
		} else {
			if !p.consumeReasoning() {
				return
			}
		}
	}
}

// consumeAnswer moves answer text out of the buffer up to the next opening
// tag. Returns false when the buffer is exhausted for this chunk.
func (p *Parser) consumeAnswer() bool {
	thinkPos := strings.Index(p.buffer, "<"+tagThink+">")
	thoughtPos := strings.Index(p.buffer, "<"+tagThought+">")

	if thinkPos == -1 && thoughtPos == -1 {
		// Keep the tail in case it is the start of a tag split across chunks.
		if len(p.buffer) > holdback {
			p.answer.WriteString(p.buffer[:len(p.buffer)-holdback])
			p.buffer = p.buffer[len(p.buffer)-holdback:]
		}
		return false
	}

	tag := tagThought
	pos := thoughtPos
	if thinkPos != -1 && (thoughtPos == -1 || thinkPos < thoughtPos) {
		tag = tagThink
		pos = thinkPos
	}

	p.answer.WriteString(p.buffer[:pos])
	p.inThinking = true
	p.currentTag = tag
	p.buffer = p.buffer[pos+len("<"+tag+">"):]
	return true
}

// consumeReasoning moves reasoning text out of the buffer up to the closing
// tag of the current reasoning section.
func (p *Parser) consumeReasoning() bool {
	closing := "</" + p.currentTag + ">"
	pos := strings.Index(p.buffer, closing)

	if pos == -1 {
		if len(p.buffer) > holdback {
			p.reasoning.WriteString(p.buffer[:len(p.buffer)-holdback])
			p.buffer = p.buffer[len(p.buffer)-holdback:]
		}
		return false
	}

	p.reasoning.WriteString(p.buffer[:pos])
	p.inThinking = false
	p.buffer = p.buffer[pos+len(closing):]
	return true
}

// Flush drains whatever is still held back and returns the final answer.
// Leftover text belongs to whichever section the stream ended in; an
// unterminated reasoning tag therefore never leaks into the answer.
func (p *Parser) Flush() string {
	if p.buffer != "" {
		if p.inThinking {
			p.reasoning.WriteString(p.buffer)
		} else {
			p.answer.WriteString(p.buffer)
		}
		p.buffer = ""
	}
	return p.answer.String()
}

// Answer returns the answer text accumulated so far.
func (p *Parser) Answer() string { return p.answer.String() }

// Reasoning returns the reasoning text accumulated so far.
func (p *Parser) Reasoning() string { return p.reasoning.String() }

// InReasoning reports whether the parser is currently inside a reasoning
// section, which lets a UI show where freshly streamed text will land.
func (p *Parser) InReasoning() bool { return p.inThinking }
