package models

import "time"

// Powder: a coating powder SKU. CurrentStockKg is a running balance
// maintained exclusively by the transaction ledger; handlers never set it
// directly.
type Powder struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:100;not null;index"`
	Color          string  `gorm:"size:50"`
	Supplier       string  `gorm:"size:100"`
	CurrentStockKg float64 `gorm:"not null;default:0"`
	SafetyStockKg  float64 `gorm:"not null;default:0"`
	CostPerKg      *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLowStock: strictly below the safety threshold. Equal is not low.
func (p *Powder) IsLowStock() bool {
	return p.CurrentStockKg < p.SafetyStockKg
}
