package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Running AutoMigrate")
	return AutoMigrateAll(s.db)
}
