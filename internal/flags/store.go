package flags

import (
	"fmt"
	"log"
	"sync"
	"time"

	"ChecklistSentinel/internal/checklist"
)

// Store holds the operator's checklist flags with concurrency safety.
// Only keys of the active rubric are accepted; unset keys read as false.
type Store struct {
	mu        sync.Mutex
	rubric    *checklist.Rubric
	flags     map[string]bool
	updatedAt time.Time
}

// NewStore creates a Store seeded with initial flags, rejecting keys the rubric does not know.
func NewStore(rubric *checklist.Rubric, initial map[string]bool) (*Store, error) {
	s := &Store{rubric: rubric, flags: make(map[string]bool, len(initial))}
	for k, v := range initial {
		if !rubric.Has(k) {
			return nil, fmt.Errorf("flag %q: %w", k, checklist.ErrUnknownCriterion)
		}
		s.flags[k] = v
	}
	s.updatedAt = time.Now()
	return s, nil
}

// Rubric returns the rubric the store validates against.
func (s *Store) Rubric() *checklist.Rubric { return s.rubric }

// Set ticks or unticks one criterion.
func (s *Store) Set(key string, checked bool) error {
	if !s.rubric.Has(key) {
		return fmt.Errorf("flag %q: %w", key, checklist.ErrUnknownCriterion)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = checked
	s.updatedAt = time.Now()
	log.Printf("[INFO] flag %s set to %v", key, checked)
	return nil
}

// Toggle flips one criterion and returns its new value.
func (s *Store) Toggle(key string) (bool, error) {
	if !s.rubric.Has(key) {
		return false, fmt.Errorf("flag %q: %w", key, checklist.ErrUnknownCriterion)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = !s.flags[key]
	s.updatedAt = time.Now()
	return s.flags[key], nil
}

// Reset unticks every criterion.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags = make(map[string]bool)
	s.updatedAt = time.Now()
	log.Println("[INFO] all flags reset")
}

// Snapshot returns a copy of the flags with every rubric key present.
func (s *Store) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.flags))
	for _, k := range s.rubric.Keys() {
		out[k] = s.flags[k]
	}
	return out
}

// UpdatedAt is the time of the last change.
func (s *Store) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
