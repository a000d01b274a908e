package inventory

import (
	"errors"

	"coatops-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTransactionRequest struct {
	Type       models.TransactionType `json:"type"` // "receive" | "consume"
	QuantityKg float64                `json:"quantity_kg"`
	Note       string                 `json:"note"`
}

type TransactionResponse struct {
	ID         uint                   `json:"id"`
	PowderID   uint                   `json:"powder_id"`
	Type       models.TransactionType `json:"type"`
	QuantityKg float64                `json:"quantity_kg"`
	Note       string                 `json:"note"`
	CreatedAt  string                 `json:"created_at"`
}

func toTransactionResponse(t *models.PowderTransaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		PowderID:   t.PowderID,
		Type:       t.Type,
		QuantityKg: t.QuantityKg,
		Note:       t.Note,
		CreatedAt:  t.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

// POST /api/powders/:id/transactions
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		entry, err := RecordTransaction(uint(id), body.Type, body.QuantityKg, body.Note)
		if err != nil {
			switch {
			case errors.Is(err, ErrPowderNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Powder not found")
			case errors.Is(err, ErrInvalidType):
				return fiber.NewError(fiber.StatusBadRequest, "type must be 'receive' or 'consume'")
			case errors.Is(err, ErrInvalidQuantity):
				return fiber.NewError(fiber.StatusBadRequest, "quantity_kg must be positive")
			case errors.Is(err, ErrInsufficientStock):
				return fiber.NewError(fiber.StatusBadRequest, "Insufficient stock")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Could not record transaction")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(entry))
	}
}

// GET /api/powders/:id/transactions?limit=50
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		limit := c.QueryInt("limit", 0)
		entries, err := ListTransactions(uint(id), limit)
		if err != nil {
			if errors.Is(err, ErrPowderNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Powder not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}

		resp := make([]TransactionResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toTransactionResponse(&entries[i]))
		}
		return c.JSON(resp)
	}
}
