package models

import "time"

// Account is a money container (checking, savings, cash...).
// BalanceCent is kept equal to the balance at creation plus the signed sum
// of all transactions referencing the account; only the ledger operations
// may adjust it relative to transactions. Direct account edits overwrite it.
type Account struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"size:64;not null"`
	Type        string `gorm:"size:32;not null"` // free-form tag, e.g. "Checking"
	BalanceCent int64  `gorm:"not null"`         // store in cents to avoid float
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
