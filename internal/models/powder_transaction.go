package models

import "time"

type TransactionType string

const (
	TransactionReceive TransactionType = "receive"
	TransactionConsume TransactionType = "consume"
)

// PowderTransaction: immutable stock movement record. Append-only, no update
// or delete path exists anywhere in the codebase (audit trail).
type PowderTransaction struct {
	ID         uint `gorm:"primaryKey"`
	PowderID   uint `gorm:"index;not null"`
	Powder     Powder
	Type       TransactionType `gorm:"size:10;not null"`
	QuantityKg float64         `gorm:"not null"`
	Note       string          `gorm:"size:255"`
	CreatedAt  time.Time       `gorm:"index"`
}

// SignedQuantity: receive counts positive, consume negative.
func (t *PowderTransaction) SignedQuantity() float64 {
	if t.Type == TransactionConsume {
		return -t.QuantityKg
	}
	return t.QuantityKg
}
