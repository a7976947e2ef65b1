package database

import (
	"fmt"

	"gorm.io/gorm"
)

// MigrateSchema creates or updates the tables used by the server.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&PortfolioRecord{}); err != nil {
		return fmt.Errorf("failed to migrate portfolios table: %w", err)
	}

	// Backfill scans for rows without output
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_portfolios_pending
		ON portfolios(created_at)
		WHERE output_json = '';
	`).Error
	if err != nil {
		return fmt.Errorf("failed to create pending index: %w", err)
	}

	return nil
}

func (d *Database) RunMigrations() error {
	if err := MigrateSchema(d.db); err != nil {
		return err
	}
	d.logger.Info("Database migrations completed")
	return nil
}
