package repositories

import (
	"sync"
	"time"

	"counterapp/internal/models"
)

// MockCounterRepository is an in-memory implementation of CounterRepository.
type MockCounterRepository struct {
	counter *models.Counter
	mu      sync.Mutex
}

// NewMockCounterRepository creates a new instance of MockCounterRepository.
func NewMockCounterRepository() *MockCounterRepository {
	return &MockCounterRepository{}
}

// GetOrCreate returns the in-memory counter, creating it on first access.
func (r *MockCounterRepository) GetOrCreate() (*models.Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.counter == nil {
		now := time.Now()
		r.counter = &models.Counter{
			ID:        models.SingletonCounterID,
			Count:     0,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	snapshot := *r.counter
	return &snapshot, nil
}

// Save stores the counter value.
func (r *MockCounterRepository) Save(counter *models.Counter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *counter
	stored.UpdatedAt = time.Now()
	r.counter = &stored
	return nil
}
