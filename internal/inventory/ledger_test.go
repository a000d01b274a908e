package inventory

import (
	"fmt"
	"strings"
	"testing"

	"coatops-backend/internal/database"
	"coatops-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func createTestPowder(t *testing.T, stock, safety float64) *models.Powder {
	t.Helper()
	powder := models.Powder{Name: "RAL 9016", Color: "Traffic White", CurrentStockKg: stock, SafetyStockKg: safety}
	require.NoError(t, database.DB.Create(&powder).Error)
	if stock > 0 {
		seed := models.PowderTransaction{PowderID: powder.ID, Type: models.TransactionReceive, QuantityKg: stock, Note: initialStockNote}
		require.NoError(t, database.DB.Create(&seed).Error)
	}
	return &powder
}

func currentStock(t *testing.T, id uint) float64 {
	t.Helper()
	var powder models.Powder
	require.NoError(t, database.DB.First(&powder, "id = ?", id).Error)
	return powder.CurrentStockKg
}

func ledgerCount(t *testing.T, id uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(&models.PowderTransaction{}).Where("powder_id = ?", id).Count(&n).Error)
	return n
}

func TestRecordTransaction_ReceiveAndConsume(t *testing.T) {
	setupTestDB(t)
	powder := createTestPowder(t, 50, 20)

	entry, err := RecordTransaction(powder.ID, models.TransactionReceive, 25, "delivery")
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, models.TransactionReceive, entry.Type)
	assert.Equal(t, 75.0, currentStock(t, powder.ID))

	_, err = RecordTransaction(powder.ID, models.TransactionConsume, 30, "job 41")
	require.NoError(t, err)
	assert.Equal(t, 45.0, currentStock(t, powder.ID))

	// Balance always equals the signed sum of the ledger.
	var entries []models.PowderTransaction
	require.NoError(t, database.DB.Where("powder_id = ?", powder.ID).Find(&entries).Error)
	sum := 0.0
	for i := range entries {
		sum += entries[i].SignedQuantity()
	}
	assert.Equal(t, currentStock(t, powder.ID), sum)
}

func TestRecordTransaction_InvalidQuantity(t *testing.T) {
	setupTestDB(t)
	powder := createTestPowder(t, 50, 20)

	for _, qty := range []float64{0, -5} {
		_, err := RecordTransaction(powder.ID, models.TransactionReceive, qty, "")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	// Failed calls leave the ledger and the balance untouched.
	assert.Equal(t, int64(1), ledgerCount(t, powder.ID))
	assert.Equal(t, 50.0, currentStock(t, powder.ID))
}

func TestRecordTransaction_InvalidType(t *testing.T) {
	setupTestDB(t)
	powder := createTestPowder(t, 50, 20)

	_, err := RecordTransaction(powder.ID, "transfer", 5, "")
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Equal(t, int64(1), ledgerCount(t, powder.ID))
}

func TestRecordTransaction_UnknownPowder(t *testing.T) {
	setupTestDB(t)

	_, err := RecordTransaction(999, models.TransactionReceive, 5, "")
	assert.ErrorIs(t, err, ErrPowderNotFound)
}

func TestRecordTransaction_InsufficientStock(t *testing.T) {
	setupTestDB(t)
	powder := createTestPowder(t, 10, 0)

	_, err := RecordTransaction(powder.ID, models.TransactionConsume, 10.01, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10.0, currentStock(t, powder.ID))
	assert.Equal(t, int64(1), ledgerCount(t, powder.ID))

	// Consuming exactly the balance is allowed, zero is not negative.
	_, err = RecordTransaction(powder.ID, models.TransactionConsume, 10, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, currentStock(t, powder.ID))

	_, err = RecordTransaction(powder.ID, models.TransactionConsume, 0.01, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestListTransactions(t *testing.T) {
	setupTestDB(t)
	powder := createTestPowder(t, 0, 0)

	for i := 1; i <= 5; i++ {
		_, err := RecordTransaction(powder.ID, models.TransactionReceive, float64(i), "")
		require.NoError(t, err)
	}

	entries, err := ListTransactions(powder.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	// Newest first.
	assert.Equal(t, 5.0, entries[0].QuantityKg)
	assert.Equal(t, 1.0, entries[4].QuantityKg)

	limited, err := ListTransactions(powder.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = ListTransactions(999, 0)
	assert.ErrorIs(t, err, ErrPowderNotFound)
}

func TestIsLowStock_StrictThreshold(t *testing.T) {
	p := models.Powder{CurrentStockKg: 20, SafetyStockKg: 20}
	assert.False(t, p.IsLowStock(), "equal stock is not low")

	p.CurrentStockKg = 19.9999
	assert.True(t, p.IsLowStock())
}
