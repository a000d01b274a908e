package inventory

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// stockAsOf reconstructs every powder's balance from the ledger, counting
// movements created strictly before the cutoff. Exact because initial stock
// is itself a ledger row.
func stockAsOf(cutoff time.Time) (map[uint]float64, error) {
	var entries []models.PowderTransaction
	if err := database.DB.
		Where("created_at < ?", cutoff).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	balances := make(map[uint]float64)
	for i := range entries {
		balances[entries[i].PowderID] += entries[i].SignedQuantity()
	}
	return balances, nil
}

// GET /api/powders/export/csv?date=2025-08-30
// Stock snapshot as of the end of the given UTC day (default today).
func ExportCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := todayUTC()
		if dateStr := c.Query("date"); dateStr != "" {
			parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			day = parsed
		}
		cutoff := day.AddDate(0, 0, 1)

		var powders []models.Powder
		if err := database.DB.Order("name ASC").Find(&powders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list powders")
		}

		balances, err := stockAsOf(cutoff)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute snapshot")
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"id", "name", "color", "supplier", "stock_kg", "safety_stock_kg", "low_stock"})
		for i := range powders {
			p := &powders[i]
			stock := round2(balances[p.ID])
			_ = w.Write([]string{
				strconv.FormatUint(uint64(p.ID), 10),
				p.Name,
				p.Color,
				p.Supplier,
				strconv.FormatFloat(stock, 'f', 2, 64),
				strconv.FormatFloat(p.SafetyStockKg, 'f', 2, 64),
				strconv.FormatBool(stock < p.SafetyStockKg),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write CSV")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="powders_%s.csv"`, day.Format("2006-01-02")))
		return c.Send(buf.Bytes())
	}
}

// GET /api/powders/export/xlsx
// Current inventory as a workbook for the office side of the shop.
func ExportXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var powders []models.Powder
		if err := database.DB.Order("name ASC").Find(&powders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list powders")
		}

		f := excelize.NewFile()
		defer func() { _ = f.Close() }()

		sheet := "Inventory"
		f.SetSheetName(f.GetSheetName(0), sheet)

		header := []interface{}{"ID", "Name", "Color", "Supplier", "Stock (kg)", "Safety stock (kg)", "Cost per kg", "Low stock"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
		}

		for i := range powders {
			p := &powders[i]
			cost := ""
			if p.CostPerKg != nil {
				cost = strconv.FormatFloat(*p.CostPerKg, 'f', 2, 64)
			}
			row := []interface{}{p.ID, p.Name, p.Color, p.Supplier, p.CurrentStockKg, p.SafetyStockKg, cost, p.IsLowStock()}
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write workbook")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="powders_%s.xlsx"`, todayUTC().Format("2006-01-02")))
		return c.Send(buf.Bytes())
	}
}
