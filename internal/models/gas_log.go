package models

import "time"

// GasLog: daily gas consumption entry for the curing ovens.
type GasLog struct {
	ID         uint      `gorm:"primaryKey"`
	Date       time.Time `gorm:"index;not null"` // UTC calendar day
	QuantityM3 float64   `gorm:"not null"`
	Note       string    `gorm:"size:255"`
	CreatedAt  time.Time
}
