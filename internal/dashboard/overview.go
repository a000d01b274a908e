package dashboard

import (
	"coatops-backend/internal/gas"
	"coatops-backend/internal/inventory"
	"coatops-backend/internal/jobs"
	"coatops-backend/internal/qc"

	"github.com/gofiber/fiber/v2"
)

type OverviewResponse struct {
	Inventory    inventory.SummaryResponse `json:"inventory"`
	TodayUsageKg float64                   `json:"today_usage_kg"`
	TodayGasM3   float64                   `json:"today_gas_m3"`
	OpenJobs     int64                     `json:"open_jobs"`
	QC           qc.QCSummary              `json:"qc"`
}

// GET /api/dashboard/overview
// One call for the landing tab: inventory totals, today's consumption,
// today's gas, open work orders, QC pass rate.
func OverviewHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := inventory.Summary()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute inventory summary")
		}

		usage, err := inventory.TodayConsumedKg()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute today's usage")
		}

		gasTotal, err := gas.TodayTotalM3()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute today's gas total")
		}

		openJobs, err := jobs.OpenCount()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count open jobs")
		}

		qcStats, err := qc.Stats()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute QC summary")
		}

		return c.JSON(OverviewResponse{
			Inventory:    summary,
			TodayUsageKg: usage,
			TodayGasM3:   gasTotal,
			OpenJobs:     openJobs,
			QC:           qcStats,
		})
	}
}
