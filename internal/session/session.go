package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/bowerhall/novia/internal/llm"
)

// DefaultWindowSize bounds the in-memory conversation window.
const DefaultWindowSize = 20

// Session holds the state of one running conversation: a bounded FIFO
// window of role-tagged messages and the exclusive-processing lock.
// The window only lives as long as the process; at session end it is
// summarized, never persisted directly.
type Session struct {
	id         string
	mu         sync.Mutex
	messages   []llm.Message
	capacity   int
	processing sync.Mutex
}

func New(capacity int) *Session {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &Session{
		id:       uuid.NewString(),
		capacity: capacity,
	}
}

// ID is a per-run identifier used to correlate log lines.
func (s *Session) ID() string {
	return s.id
}

// Add appends a message, evicting the oldest once the window is full.
func (s *Session) Add(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, llm.Message{Role: role, Content: content})
	if len(s.messages) > s.capacity {
		s.messages = s.messages[len(s.messages)-s.capacity:]
	}
}

// Messages returns a copy of the current window.
func (s *Session) Messages() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]llm.Message, len(s.messages))
	copy(copied, s.messages)

	return copied
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// TryAcquire attempts to acquire the processing lock. At most one
// completion request may be in flight per session.
func (s *Session) TryAcquire() bool {
	return s.processing.TryLock()
}

// Acquire blocks until the processing lock is free. Teardown uses it
// to wait out an in-flight turn instead of giving up.
func (s *Session) Acquire() {
	s.processing.Lock()
}

// Release releases the processing lock.
func (s *Session) Release() {
	s.processing.Unlock()
}
