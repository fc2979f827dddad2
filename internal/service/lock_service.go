package service

import "sync"

// LockService is the process-wide submission gate. It is purely in-memory:
// a restart always comes back unlocked.
type LockService struct {
	mu     sync.Mutex
	locked bool
}

func NewLockService() *LockService {
	return &LockService{}
}

// IsLocked reports whether submissions are currently blocked.
func (s *LockService) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// SetLocked sets the gate and returns the previous state.
func (s *LockService) SetLocked(locked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.locked
	s.locked = locked
	return previous
}
