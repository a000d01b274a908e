package inventory

import (
	"math"
	"time"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	TotalSkus     int     `json:"total_skus"`
	TotalStockKg  float64 `json:"total_stock_kg"`
	LowStockCount int     `json:"low_stock_count"`
}

type TrendPoint struct {
	Date  string  `json:"date"` // "2006-01-02", UTC calendar day
	QtyKg float64 `json:"qty_kg"`
}

type UsageTrendResponse struct {
	Days   int          `json:"days"`
	Points []TrendPoint `json:"points"`
}

// All consumption reporting uses UTC calendar days so results do not depend
// on where the server happens to run.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary computes the inventory totals fresh from the powder table.
// Shared with the dashboard overview.
func Summary() (SummaryResponse, error) {
	var powders []models.Powder
	if err := database.DB.Find(&powders).Error; err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{TotalSkus: len(powders)}
	for i := range powders {
		resp.TotalStockKg += powders[i].CurrentStockKg
		if powders[i].IsLowStock() {
			resp.LowStockCount++
		}
	}
	resp.TotalStockKg = round2(resp.TotalStockKg)
	return resp, nil
}

// TodayConsumedKg sums consume movements timestamped on the current UTC day.
func TodayConsumedKg() (float64, error) {
	start := todayUTC()

	var entries []models.PowderTransaction
	if err := database.DB.
		Where("type = ? AND created_at >= ?", models.TransactionConsume, start).
		Find(&entries).Error; err != nil {
		return 0, err
	}

	total := 0.0
	for i := range entries {
		total += entries[i].QuantityKg
	}
	return round2(total), nil
}

// ConsumptionTrend returns one point per UTC day for the most recent `days`
// days including today. Days without consumption are zero-filled, never
// omitted, so the series is always contiguous and exactly `days` long.
func ConsumptionTrend(days int) (UsageTrendResponse, error) {
	end := todayUTC()
	start := end.AddDate(0, 0, -(days - 1))

	var entries []models.PowderTransaction
	if err := database.DB.
		Where("type = ? AND created_at >= ?", models.TransactionConsume, start).
		Find(&entries).Error; err != nil {
		return UsageTrendResponse{}, err
	}

	byDay := make(map[string]float64)
	for i := range entries {
		day := entries[i].CreatedAt.UTC().Format("2006-01-02")
		byDay[day] += entries[i].QuantityKg
	}

	points := make([]TrendPoint, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		points = append(points, TrendPoint{Date: key, QtyKg: round2(byDay[key])})
	}

	return UsageTrendResponse{Days: days, Points: points}, nil
}

// GET /api/powders/summary
func PowderSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := Summary()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute summary")
		}
		return c.JSON(resp)
	}
}

// GET /api/powders/usage/today
func TodayUsageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := TodayConsumedKg()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute usage")
		}
		return c.JSON(fiber.Map{
			"date":     todayUTC().Format("2006-01-02"),
			"total_kg": total,
		})
	}
}

// GET /api/powders/usage/trend?days=7
func UsageTrendHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 7)
		if days < 1 || days > 90 {
			return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 90")
		}

		resp, err := ConsumptionTrend(days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute trend")
		}
		return c.JSON(resp)
	}
}
