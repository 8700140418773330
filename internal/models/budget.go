package models

import "time"

// Budget caps spending for one category over a period.
type Budget struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	CategoryID  uint      `gorm:"index;not null"`
	AmountCent  int64     `gorm:"not null"`
	PeriodStart time.Time `gorm:"index;not null"`
	PeriodEnd   time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:CASCADE"`
}
