package migrations

import (
	"inventory_manager/internal/models"

	"gorm.io/gorm"
)

// Reset drops and recreates every table. Used by the init script only; the
// server migrates additively on boot.
func Reset(db *gorm.DB) error {
	err := db.Migrator().DropTable(
		&models.Item{},
		&models.Order{},
		&models.OrderLine{},
		&models.CostEntry{},
		&models.Category{},
		&models.APIKey{},
		&models.Activity{},
	)
	if err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.Item{},
		&models.Order{},
		&models.OrderLine{},
		&models.CostEntry{},
		&models.Category{},
		&models.APIKey{},
		&models.Activity{},
	)
}
