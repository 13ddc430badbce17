package models

import "time"

// Counter is the singleton counter row. The application always
// operates on the row with ID SingletonCounterID, so the table holds
// exactly one meaningful record.
type Counter struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SingletonCounterID is the well-known primary key of the one counter row.
const SingletonCounterID uint = 1
