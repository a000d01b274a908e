package gas

import (
	"math"
	"time"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateGasLogRequest struct {
	Date       *string `json:"date"` // "2025-08-30", defaults to today (UTC)
	QuantityM3 float64 `json:"quantity_m3"`
	Note       string  `json:"note"`
}

type GasLogResponse struct {
	ID         uint    `json:"id"`
	Date       string  `json:"date"`
	QuantityM3 float64 `json:"quantity_m3"`
	Note       string  `json:"note"`
	CreatedAt  string  `json:"created_at"`
}

type GasTrendPoint struct {
	Date  string  `json:"date"`
	QtyM3 float64 `json:"qty_m3"`
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toGasLogResponse(g *models.GasLog) GasLogResponse {
	return GasLogResponse{
		ID:         g.ID,
		Date:       g.Date.UTC().Format("2006-01-02"),
		QuantityM3: g.QuantityM3,
		Note:       g.Note,
		CreatedAt:  g.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// TodayTotalM3 sums today's gas entries for the dashboard.
func TodayTotalM3() (float64, error) {
	var logs []models.GasLog
	if err := database.DB.Where("date = ?", todayUTC()).Find(&logs).Error; err != nil {
		return 0, err
	}

	total := 0.0
	for i := range logs {
		total += logs[i].QuantityM3
	}
	return round2(total), nil
}

// POST /api/gas-logs
func CreateGasLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGasLogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.QuantityM3 <= 0 || math.IsNaN(body.QuantityM3) || math.IsInf(body.QuantityM3, 0) {
			return fiber.NewError(fiber.StatusBadRequest, "quantity_m3 must be positive")
		}

		day := todayUTC()
		if body.Date != nil && *body.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", *body.Date, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			day = parsed
		}

		entry := models.GasLog{
			Date:       day,
			QuantityM3: body.QuantityM3,
			Note:       body.Note,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create gas log")
		}

		return c.Status(fiber.StatusCreated).JSON(toGasLogResponse(&entry))
	}
}

// GET /api/gas-logs?limit=50
func ListGasLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 0)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var logs []models.GasLog
		if err := database.DB.
			Order("date DESC, created_at DESC").
			Limit(limit).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list gas logs")
		}

		resp := make([]GasLogResponse, 0, len(logs))
		for i := range logs {
			resp = append(resp, toGasLogResponse(&logs[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/gas-logs/trend?days=7
// Same contract as the powder usage trend: contiguous UTC days ending today,
// zero-filled.
func GasTrendHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 7)
		if days < 1 || days > 90 {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 90")
		}

		end := todayUTC()
		start := end.AddDate(0, 0, -(days - 1))

		var logs []models.GasLog
		if err := database.DB.Where("date >= ?", start).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute trend")
		}

		byDay := make(map[string]float64)
		for i := range logs {
			byDay[logs[i].Date.UTC().Format("2006-01-02")] += logs[i].QuantityM3
		}

		points := make([]GasTrendPoint, 0, days)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			points = append(points, GasTrendPoint{Date: key, QtyM3: round2(byDay[key])})
		}

		return c.JSON(fiber.Map{
			"days":   days,
			"points": points,
		})
	}
}
