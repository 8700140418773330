package database

import (
	"fmt"

	"github.com/Zenthoriax/personal-finance-app/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Account{},
		&models.Category{},
		&models.Budget{},
		&models.Goal{},
		&models.Transaction{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
