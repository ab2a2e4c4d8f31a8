package storage

import "sync"

// MemoryStore is the non-persistent Store: seen runs last for the session.
type MemoryStore struct {
	mu   sync.RWMutex
	seen map[string]map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: map[string]map[string]bool{}}
}

func (s *MemoryStore) Visit(taskID, runKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	runs, ok := s.seen[taskID]
	if !ok {
		runs = map[string]bool{}
		s.seen[taskID] = runs
	}
	runs[runKey] = true
}

func (s *MemoryStore) IsVisited(taskID, runKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen[taskID][runKey]
}

func (s *MemoryStore) Forget(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.seen, taskID)
}

func (s *MemoryStore) Close() error {
	return nil
}
