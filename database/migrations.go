package database

import (
	"github.com/MRabbani007/tasker/logger"
	"github.com/MRabbani007/tasker/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations runs database migrations to ensure tables are up to date
func RunMigrations(db *gorm.DB) error {
	logger.Log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.TaskList{},
		&models.Task{},
		&models.Note{},
		&models.JournalEntry{},
		&models.Event{},
	)

	if err != nil {
		logger.Log.Error("migration failed", zap.Error(err))
		return err
	}

	return nil
}
