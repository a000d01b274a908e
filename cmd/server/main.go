package main

import (
	"log"
	"strings"

	"coatops-backend/internal/config"
	"coatops-backend/internal/dashboard"
	"coatops-backend/internal/database"
	"coatops-backend/internal/gas"
	"coatops-backend/internal/inventory"
	"coatops-backend/internal/jobs"
	"coatops-backend/internal/qc"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Powder inventory. Fixed paths come before /powders/:id so the router
	// does not swallow them as ids.
	api.Get("/powders/summary", inventory.PowderSummaryHandler())
	api.Get("/powders/usage/today", inventory.TodayUsageHandler())
	api.Get("/powders/usage/trend", inventory.UsageTrendHandler())
	api.Get("/powders/export/csv", inventory.ExportCSVHandler())
	api.Get("/powders/export/xlsx", inventory.ExportXLSXHandler())
	api.Post("/powders", inventory.CreatePowderHandler())
	api.Get("/powders", inventory.ListPowdersHandler())
	api.Get("/powders/:id", inventory.GetPowderHandler())
	api.Patch("/powders/:id", inventory.UpdatePowderHandler())

	// Transaction ledger
	api.Post("/powders/:id/transactions", inventory.CreateTransactionHandler())
	api.Get("/powders/:id/transactions", inventory.ListTransactionsHandler())

	// Gas consumption
	api.Post("/gas-logs", gas.CreateGasLogHandler())
	api.Get("/gas-logs/trend", gas.GasTrendHandler())
	api.Get("/gas-logs", gas.ListGasLogsHandler())

	// Quality control
	api.Post("/qc-checks", qc.CreateQCCheckHandler())
	api.Get("/qc-checks/summary", qc.QCSummaryHandler())
	api.Get("/qc-checks", qc.ListQCChecksHandler())

	// Production jobs
	api.Post("/jobs", jobs.CreateJobHandler())
	api.Get("/jobs/today", jobs.ListTodayJobsHandler())
	api.Get("/jobs", jobs.ListJobsHandler())
	api.Patch("/jobs/:id", jobs.UpdateJobHandler())

	// Dashboard
	api.Get("/dashboard/overview", dashboard.OverviewHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
