package database

import (
	"fmt"
	"log"
	"parts_manager/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	// Configure GORM; TranslateError turns unique violations into
	// gorm.ErrDuplicatedKey so the MRR constraint can be surfaced as a conflict.
	config := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate all models
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Seed reference statuses
	if err := seedStatuses(db); err != nil {
		return nil, fmt.Errorf("failed to seed statuses: %w", err)
	}

	log.Println("Database connected and migrated successfully")
	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Factory{},
		&models.FactorySection{},
		&models.Machine{},
		&models.Department{},
		&models.Part{},
		&models.Status{},
		&models.Order{},
		&models.OrderedPart{},
		&models.MachinePart{},
		&models.StoragePart{},
		&models.DamagedGoods{},
		&models.StatusTrackerEntry{},
	)
}

func seedStatuses(db *gorm.DB) error {
	for _, name := range models.AllStatusNames {
		status := models.Status{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&status).Error; err != nil {
			return err
		}
	}
	return nil
}
