package models

import "time"

// Category represents income/expense category.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_categories_user_name;not null"`
	Name      string `gorm:"size:64;uniqueIndex:idx_categories_user_name;not null"`
	Type      string `gorm:"size:16;index;not null"` // income / expense
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
