package models

import "time"

// QCCheck: four-point quality checklist for a coated batch. Passed is derived
// server-side (all four points true) and stored with the record.
type QCCheck struct {
	ID           uint      `gorm:"primaryKey"`
	JobRef       string    `gorm:"size:100;not null"` // free-text work order reference
	Date         time.Time `gorm:"index;not null"`
	SurfaceClean bool      `gorm:"not null"`
	ThicknessOK  bool      `gorm:"not null"`
	AdhesionOK   bool      `gorm:"not null"`
	VisualOK     bool      `gorm:"not null"`
	Passed       bool      `gorm:"not null"`
	Note         string    `gorm:"size:255"`
	CreatedAt    time.Time
}
