package models

import "time"

// Goal status values.
const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalAbandoned = "abandoned"
)

// Goal is a savings target.
type Goal struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"size:64;not null"`
	TargetCent  int64  `gorm:"not null"`
	CurrentCent int64  `gorm:"not null;default:0"`
	TargetDate  *time.Time
	Status      string `gorm:"size:16;index;not null;default:active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
