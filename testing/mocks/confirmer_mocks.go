package mocks

import "sync"

// Confirmer is a mock implementation of setup.Confirmer that records the
// questions it was asked.
type Confirmer struct {
	mu       sync.Mutex
	messages []string

	// Configurable responses
	Answer bool
	Err    error
}

// NewConfirmer creates a mock confirmer that answers yes to everything.
func NewConfirmer() *Confirmer {
	return &Confirmer{Answer: true}
}

// Confirm implements setup.Confirmer.
func (m *Confirmer) Confirm(message string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return m.Answer, m.Err
}

// Messages returns a copy of the questions asked so far.
func (m *Confirmer) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.messages...)
}
