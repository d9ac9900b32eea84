// Package conversation holds the chat history for a session. The store is
// owned by the caller and passed where needed; prompt construction only ever
// sees a bounded view of the most recent messages.
package conversation

import (
	"strings"
	"sync"
)

// Roles used in history lines and prompt rendering.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    string
	Content string
}

// Store is a mutex-guarded message list.
type Store struct {
	mu       sync.Mutex
	messages []Message
}

// NewStore creates an empty conversation store.
func NewStore() *Store { return &Store{} }

// Add appends a message.
func (s *Store) Add(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: role, Content: content})
}

// Messages returns a copy of the last max messages, or all of them when
// max <= 0.
func (s *Store) Messages(max int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages
	if max > 0 && len(msgs) > max {
		msgs = msgs[len(msgs)-max:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// History renders the last max messages as "role: content" lines for prompt
// context.
func (s *Store) History(max int) string {
	msgs := s.Messages(max)
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.Role + ": " + m.Content
	}
	return strings.Join(lines, "\n")
}

// Len returns the total number of stored messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Clear removes all messages.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
