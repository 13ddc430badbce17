package services

import (
	"counterapp/internal/repositories"
)

// CounterService handles business logic for the singleton counter.
// Increments are plain read-modify-write: two concurrent increments can
// observe the same base value, which is an accepted limitation.
type CounterService struct {
	repo repositories.CounterRepository
}

// NewCounterService creates a new CounterService.
func NewCounterService(repo repositories.CounterRepository) *CounterService {
	return &CounterService{
		repo: repo,
	}
}

// Get returns the current counter value, creating the row with value 0
// on first access.
func (s *CounterService) Get() (int, error) {
	counter, err := s.repo.GetOrCreate()
	if err != nil {
		return 0, err
	}
	return counter.Count, nil
}

// Increment adds one to the counter and returns the new value.
func (s *CounterService) Increment() (int, error) {
	counter, err := s.repo.GetOrCreate()
	if err != nil {
		return 0, err
	}
	counter.Count++
	if err := s.repo.Save(counter); err != nil {
		return 0, err
	}
	return counter.Count, nil
}

// Reset sets the counter back to zero.
func (s *CounterService) Reset() (int, error) {
	counter, err := s.repo.GetOrCreate()
	if err != nil {
		return 0, err
	}
	counter.Count = 0
	if err := s.repo.Save(counter); err != nil {
		return 0, err
	}
	return counter.Count, nil
}
