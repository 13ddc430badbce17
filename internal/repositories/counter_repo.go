package repositories

import "counterapp/internal/models"

// CounterRepository defines the interface for counter data access.
type CounterRepository interface {
	// GetOrCreate returns the singleton counter row, creating it with
	// count 0 on first access.
	GetOrCreate() (*models.Counter, error)
	Save(counter *models.Counter) error
}
