package inventory

import (
	"errors"
	"fmt"
	"strings"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreatePowderRequest struct {
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	Supplier       string   `json:"supplier"`
	CurrentStockKg float64  `json:"current_stock_kg"` // initial stock, seeds the ledger
	SafetyStockKg  float64  `json:"safety_stock_kg"`
	CostPerKg      *float64 `json:"cost_per_kg"`
}

type UpdatePowderRequest struct {
	Name          *string  `json:"name"`
	Color         *string  `json:"color"`
	Supplier      *string  `json:"supplier"`
	SafetyStockKg *float64 `json:"safety_stock_kg"`
	CostPerKg     *float64 `json:"cost_per_kg"`
	// Stock changes only through the ledger; presence of this field is an error.
	CurrentStockKg *float64 `json:"current_stock_kg"`
}

type PowderResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Color          string   `json:"color"`
	Supplier       string   `json:"supplier"`
	CurrentStockKg float64  `json:"current_stock_kg"`
	SafetyStockKg  float64  `json:"safety_stock_kg"`
	CostPerKg      *float64 `json:"cost_per_kg"`
	LowStock       bool     `json:"low_stock"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

func toPowderResponse(p *models.Powder) PowderResponse {
	return PowderResponse{
		ID:             p.ID,
		Name:           p.Name,
		Color:          p.Color,
		Supplier:       p.Supplier,
		CurrentStockKg: p.CurrentStockKg,
		SafetyStockKg:  p.SafetyStockKg,
		CostPerKg:      p.CostPerKg,
		LowStock:       p.IsLowStock(),
		CreatedAt:      p.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		UpdatedAt:      p.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// POST /api/powders
func CreatePowderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePowderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.CurrentStockKg < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "current_stock_kg cannot be negative")
		}
		if body.SafetyStockKg < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "safety_stock_kg cannot be negative")
		}
		if body.CostPerKg != nil && *body.CostPerKg < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "cost_per_kg cannot be negative")
		}

		powder := models.Powder{
			Name:           body.Name,
			Color:          body.Color,
			Supplier:       body.Supplier,
			CurrentStockKg: body.CurrentStockKg,
			SafetyStockKg:  body.SafetyStockKg,
			CostPerKg:      body.CostPerKg,
		}

		// Initial stock is seeded as a receive movement so the ledger stays
		// the source of truth for every balance, including the first one.
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&powder).Error; err != nil {
				return err
			}
			if body.CurrentStockKg > 0 {
				seed := models.PowderTransaction{
					PowderID:   powder.ID,
					Type:       models.TransactionReceive,
					QuantityKg: body.CurrentStockKg,
					Note:       initialStockNote,
				}
				return tx.Create(&seed).Error
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create powder")
		}

		return c.Status(fiber.StatusCreated).JSON(toPowderResponse(&powder))
	}
}

// GET /api/powders
func ListPowdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var powders []models.Powder
		if err := database.DB.Order("name ASC").Find(&powders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list powders")
		}

		resp := make([]PowderResponse, 0, len(powders))
		for i := range powders {
			resp = append(resp, toPowderResponse(&powders[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/powders/:id
func GetPowderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		var powder models.Powder
		if err := database.DB.First(&powder, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Powder not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load powder")
		}

		return c.JSON(toPowderResponse(&powder))
	}
}

// PATCH /api/powders/:id
// Descriptive fields and the safety threshold only. The stock balance is
// owned by the transaction ledger and cannot be edited here.
func UpdatePowderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		var body UpdatePowderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CurrentStockKg != nil {
			return fiber.NewError(fiber.StatusBadRequest, "current_stock_kg can only change through transactions")
		}

		var powder models.Powder
		if err := database.DB.First(&powder, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Powder not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load powder")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be blank")
			}
			powder.Name = name
		}
		if body.Color != nil {
			powder.Color = *body.Color
		}
		if body.Supplier != nil {
			powder.Supplier = *body.Supplier
		}
		if body.SafetyStockKg != nil {
			if *body.SafetyStockKg < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "safety_stock_kg cannot be negative")
			}
			powder.SafetyStockKg = *body.SafetyStockKg
		}
		if body.CostPerKg != nil {
			if *body.CostPerKg < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "cost_per_kg cannot be negative")
			}
			powder.CostPerKg = body.CostPerKg
		}

		if err := database.DB.Save(&powder).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Could not update powder (ID: %d)", id))
		}

		return c.JSON(toPowderResponse(&powder))
	}
}
