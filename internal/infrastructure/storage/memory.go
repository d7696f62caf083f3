package storage

import (
	"context"
	"sync"

	domainRepo "patient-registration/internal/domain/repository"
)

type memoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage returns a process-local storage. Contents are lost on exit.
func NewMemoryStorage() domainRepo.Storage {
	return &memoryStorage{items: make(map[string]string)}
}

func (s *memoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryStorage) SetItem(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}
