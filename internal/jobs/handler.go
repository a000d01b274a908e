package jobs

import (
	"errors"
	"strings"
	"time"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateJobRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Assignee    string  `json:"assignee"`
	Date        *string `json:"date"` // defaults to today (UTC)
}

type UpdateJobRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Status      *models.JobStatus `json:"status"`
	Assignee    *string           `json:"assignee"`
}

type JobResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      models.JobStatus `json:"status"`
	Assignee    string           `json:"assignee"`
	Date        string           `json:"date"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func validStatus(s models.JobStatus) bool {
	switch s {
	case models.JobStatusPending, models.JobStatusInProgress, models.JobStatusDone:
		return true
	}
	return false
}

func toJobResponse(j *models.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Status:      j.Status,
		Assignee:    j.Assignee,
		Date:        j.Date.UTC().Format("2006-01-02"),
		CreatedAt:   j.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		UpdatedAt:   j.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// OpenCount counts jobs not yet done, for the dashboard overview.
func OpenCount() (int64, error) {
	var n int64
	err := database.DB.Model(&models.Job{}).
		Where("status <> ?", models.JobStatusDone).
		Count(&n).Error
	return n, err
}

// POST /api/jobs
func CreateJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Title = strings.TrimSpace(body.Title)
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title is required")
		}

		day := todayUTC()
		if body.Date != nil && *body.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", *body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			day = parsed
		}

		job := models.Job{
			Title:       body.Title,
			Description: body.Description,
			Status:      models.JobStatusPending,
			Assignee:    body.Assignee,
			Date:        day,
		}
		if err := database.DB.Create(&job).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create job")
		}

		return c.Status(fiber.StatusCreated).JSON(toJobResponse(&job))
	}
}

// GET /api/jobs/today
func ListTodayJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var jobs []models.Job
		if err := database.DB.
			Where("date = ?", todayUTC()).
			Order("created_at DESC").
			Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list jobs")
		}

		resp := make([]JobResponse, 0, len(jobs))
		for i := range jobs {
			resp = append(resp, toJobResponse(&jobs[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/jobs?status=pending
func ListJobsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("date DESC, created_at DESC")

		if status := c.Query("status"); status != "" {
			if !validStatus(models.JobStatus(status)) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be 'pending', 'in_progress' or 'done'")
			}
			q = q.Where("status = ?", status)
		}

		var jobs []models.Job
		if err := q.Find(&jobs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list jobs")
		}

		resp := make([]JobResponse, 0, len(jobs))
		for i := range jobs {
			resp = append(resp, toJobResponse(&jobs[i]))
		}
		return c.JSON(resp)
	}
}

// PATCH /api/jobs/:id
func UpdateJobHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		var body UpdateJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var job models.Job
		if err := database.DB.First(&job, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Job not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load job")
		}

		if body.Title != nil {
			title := strings.TrimSpace(*body.Title)
			if title == "" {
				return fiber.NewError(fiber.StatusBadRequest, "title cannot be blank")
			}
			job.Title = title
		}
		if body.Description != nil {
			job.Description = *body.Description
		}
		if body.Status != nil {
			if !validStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status must be 'pending', 'in_progress' or 'done'")
			}
			job.Status = *body.Status
		}
		if body.Assignee != nil {
			job.Assignee = *body.Assignee
		}

		if err := database.DB.Save(&job).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update job")
		}

		return c.JSON(toJobResponse(&job))
	}
}
