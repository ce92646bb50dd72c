package store

import (
	"context"
	"sync"

	"riskengine/internal/classifier"
	id "riskengine/pkg/domain"
)

// InMemoryStore keeps decisions in process memory. Used in tests and in
// deployments without Postgres configured.
type InMemoryStore struct {
	mu        sync.RWMutex
	decisions map[id.SystemID][]*classifier.ClassificationDecision
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		decisions: make(map[id.SystemID][]*classifier.ClassificationDecision),
	}
}

func (s *InMemoryStore) Save(_ context.Context, decision *classifier.ClassificationDecision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy so later caller mutations cannot reach stored state.
	saved := *decision
	s.decisions[decision.SystemID] = append(s.decisions[decision.SystemID], &saved)
	return nil
}

func (s *InMemoryStore) Latest(_ context.Context, systemID id.SystemID) (*classifier.ClassificationDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.decisions[systemID]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	latest := *history[len(history)-1]
	return &latest, nil
}

func (s *InMemoryStore) History(_ context.Context, systemID id.SystemID) ([]*classifier.ClassificationDecision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.decisions[systemID]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	out := make([]*classifier.ClassificationDecision, len(history))
	for i := range history {
		decision := *history[len(history)-1-i]
		out[i] = &decision
	}
	return out, nil
}
