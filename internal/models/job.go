package models

import "time"

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusDone       JobStatus = "done"
)

// Job: a production work order, grouped by day on the dashboard.
type Job struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:150;not null"`
	Description string    `gorm:"size:500"`
	Status      JobStatus `gorm:"size:20;not null;default:pending"`
	Assignee    string    `gorm:"size:100"`
	Date        time.Time `gorm:"index;not null"` // UTC calendar day
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
