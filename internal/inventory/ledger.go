package inventory

import (
	"errors"
	"math"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPowderNotFound    = errors.New("powder not found")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrInvalidQuantity   = errors.New("quantity must be a positive number")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const initialStockNote = "initial stock"

// RecordTransaction appends a stock movement for a powder and updates its
// running balance inside one database transaction. The balance update is a
// single guarded statement: the WHERE clause re-checks the balance at update
// time, so two concurrent movements against the same powder cannot lose an
// update, and a consume that would go negative matches no row and leaves
// everything untouched.
func RecordTransaction(powderID uint, txType models.TransactionType, quantityKg float64, note string) (*models.PowderTransaction, error) {
	if txType != models.TransactionReceive && txType != models.TransactionConsume {
		return nil, ErrInvalidType
	}
	if quantityKg <= 0 || math.IsNaN(quantityKg) || math.IsInf(quantityKg, 0) {
		return nil, ErrInvalidQuantity
	}

	entry := models.PowderTransaction{
		PowderID:   powderID,
		Type:       txType,
		QuantityKg: quantityKg,
		Note:       note,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var powder models.Powder
		if err := tx.First(&powder, "id = ?", powderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPowderNotFound
			}
			return err
		}

		delta := entry.SignedQuantity()
		res := tx.Model(&models.Powder{}).
			Where("id = ? AND current_stock_kg + ? >= 0", powderID, delta).
			Update("current_stock_kg", gorm.Expr("current_stock_kg + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListTransactions returns a powder's movements, newest first.
func ListTransactions(powderID uint, limit int) ([]models.PowderTransaction, error) {
	var powder models.Powder
	if err := database.DB.First(&powder, "id = ?", powderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPowderNotFound
		}
		return nil, err
	}

	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var entries []models.PowderTransaction
	if err := database.DB.
		Where("powder_id = ?", powderID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
