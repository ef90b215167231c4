package usecase

import (
	"sync"
	"time"
)

// pendingVerification is the transient state of one requested OTP. It
// lives only in process memory; nothing is persisted.
type pendingVerification struct {
	contact   string
	digest    string
	expiresAt time.Time
	attempts  int
}

// pendingStore holds at most one live verification per contact. A new
// request silently replaces any prior entry for the same contact.
type pendingStore struct {
	mu      sync.Mutex
	entries map[string]*pendingVerification
}

func newPendingStore() *pendingStore {
	return &pendingStore{
		entries: make(map[string]*pendingVerification),
	}
}

func (s *pendingStore) put(contact, digest string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[contact] = &pendingVerification{
		contact:   contact,
		digest:    digest,
		expiresAt: expiresAt,
	}
}

func (s *pendingStore) lookup(contact string) (*pendingVerification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[contact]
	return entry, ok
}

func (s *pendingStore) clear(contact string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, contact)
}

// fail records one wrong attempt and reports the new attempt count.
func (s *pendingStore) fail(contact string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[contact]
	if !ok {
		return 0
	}
	entry.attempts++
	return entry.attempts
}
