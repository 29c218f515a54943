package session

import "sync"

// Store хранит токен API technet. Единственное место, где живёт токен.
type Store struct {
	mu    sync.RWMutex
	token string
}

func New(token string) *Store {
	return &Store{token: token}
}

func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.token != ""
}

func (s *Store) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}
