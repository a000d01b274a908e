package qc

import (
	"math"
	"strings"
	"time"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateQCCheckRequest struct {
	JobRef       string  `json:"job_ref"`
	Date         *string `json:"date"` // defaults to today (UTC)
	SurfaceClean bool    `json:"surface_clean"`
	ThicknessOK  bool    `json:"thickness_ok"`
	AdhesionOK   bool    `json:"adhesion_ok"`
	VisualOK     bool    `json:"visual_ok"`
	Note         string  `json:"note"`
}

type QCCheckResponse struct {
	ID           uint   `json:"id"`
	JobRef       string `json:"job_ref"`
	Date         string `json:"date"`
	SurfaceClean bool   `json:"surface_clean"`
	ThicknessOK  bool   `json:"thickness_ok"`
	AdhesionOK   bool   `json:"adhesion_ok"`
	VisualOK     bool   `json:"visual_ok"`
	Passed       bool   `json:"passed"`
	Note         string `json:"note"`
	CreatedAt    string `json:"created_at"`
}

type QCSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"` // 0..1, zero when no checks exist
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func toQCCheckResponse(q *models.QCCheck) QCCheckResponse {
	return QCCheckResponse{
		ID:           q.ID,
		JobRef:       q.JobRef,
		Date:         q.Date.UTC().Format("2006-01-02"),
		SurfaceClean: q.SurfaceClean,
		ThicknessOK:  q.ThicknessOK,
		AdhesionOK:   q.AdhesionOK,
		VisualOK:     q.VisualOK,
		Passed:       q.Passed,
		Note:         q.Note,
		CreatedAt:    q.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// Stats computes the pass-rate summary, shared with the dashboard overview.
func Stats() (QCSummary, error) {
	var checks []models.QCCheck
	if err := database.DB.Find(&checks).Error; err != nil {
		return QCSummary{}, err
	}

	s := QCSummary{Total: len(checks)}
	for i := range checks {
		if checks[i].Passed {
			s.Passed++
		}
	}
	s.Failed = s.Total - s.Passed
	if s.Total > 0 {
		s.PassRate = math.Round(float64(s.Passed)/float64(s.Total)*1000) / 1000
	}
	return s, nil
}

// POST /api/qc-checks
func CreateQCCheckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateQCCheckRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.JobRef = strings.TrimSpace(body.JobRef)
		if body.JobRef == "" {
			return fiber.NewError(fiber.StatusBadRequest, "job_ref is required")
		}

		day := todayUTC()
		if body.Date != nil && *body.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", *body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			day = parsed
		}

		check := models.QCCheck{
			JobRef:       body.JobRef,
			Date:         day,
			SurfaceClean: body.SurfaceClean,
			ThicknessOK:  body.ThicknessOK,
			AdhesionOK:   body.AdhesionOK,
			VisualOK:     body.VisualOK,
			// Derived on the server so a client cannot claim a pass with
			// failing points.
			Passed: body.SurfaceClean && body.ThicknessOK && body.AdhesionOK && body.VisualOK,
			Note:   body.Note,
		}
		if err := database.DB.Create(&check).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create QC check")
		}

		return c.Status(fiber.StatusCreated).JSON(toQCCheckResponse(&check))
	}
}

// GET /api/qc-checks?limit=50
func ListQCChecksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var checks []models.QCCheck
		if err := database.DB.
			Order("date DESC, created_at DESC").
			Limit(limit).
			Find(&checks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list QC checks")
		}

		resp := make([]QCCheckResponse, 0, len(checks))
		for i := range checks {
			resp = append(resp, toQCCheckResponse(&checks[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/qc-checks/summary
func QCSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := Stats()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute QC summary")
		}
		return c.JSON(s)
	}
}
