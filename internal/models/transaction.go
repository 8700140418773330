package models

import "time"

// Transaction type values.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense movement on an account.
// AmountCent is always stored unsigned; the direction comes from Type.
// Rows are created, updated and deleted only through the ledger package,
// which keeps the owning account's balance consistent.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	AccountID   uint      `gorm:"index;not null"`
	CategoryID  uint      `gorm:"index;not null"`
	Type        string    `gorm:"size:16;index;not null"` // income / expense
	AmountCent  int64     `gorm:"not null"`
	Description string    `gorm:"size:255"`
	Date        time.Time `gorm:"index;not null"` // calendar date the transaction happened
	CreatedAt   time.Time

	Account  Account  `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:CASCADE"`
}
