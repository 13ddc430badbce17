package repositories

import (
	"fmt"

	"counterapp/internal/models"

	"gorm.io/gorm"
)

// GORMCounterRepository is a GORM implementation of CounterRepository.
// The counter is a true singleton: every operation targets the row with
// models.SingletonCounterID, so multiple rows can never accumulate.
type GORMCounterRepository struct {
	db *gorm.DB
}

// NewGORMCounterRepository creates a new instance of GORMCounterRepository.
func NewGORMCounterRepository(db *gorm.DB) *GORMCounterRepository {
	return &GORMCounterRepository{
		db: db,
	}
}

// GetOrCreate returns the singleton counter, inserting it with count 0
// if it does not exist yet.
func (r *GORMCounterRepository) GetOrCreate() (*models.Counter, error) {
	counter := models.Counter{ID: models.SingletonCounterID}
	if err := r.db.Where(models.Counter{ID: models.SingletonCounterID}).FirstOrCreate(&counter).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create counter: %w", err)
	}
	return &counter, nil
}

// Save persists the counter row.
func (r *GORMCounterRepository) Save(counter *models.Counter) error {
	if err := r.db.Save(counter).Error; err != nil {
		return fmt.Errorf("failed to save counter: %w", err)
	}
	return nil
}
