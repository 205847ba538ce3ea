package services

import (
	"fmt"
	"time"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/logger"
	"github.com/MRabbani007/tasker/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type SweeperServiceInterface interface {
	Start() error
	Stop()
}

// SweeperService runs the periodic housekeeping jobs: deactivating expired
// sessions and purging trash rows past the retention window.
type SweeperService struct {
	db        *database.Database
	cron      *cron.Cron
	interval  time.Duration
	retention time.Duration
}

func NewSweeperService(db *database.Database, sweepIntervalMinutes, trashRetentionDays int) *SweeperService {
	return &SweeperService{
		db:        db,
		cron:      cron.New(),
		interval:  time.Duration(sweepIntervalMinutes) * time.Minute,
		retention: time.Duration(trashRetentionDays) * 24 * time.Hour,
	}
}

func (s *SweeperService) Start() error {
	spec := fmt.Sprintf("@every %ds", int(s.interval.Seconds()))

	if _, err := s.cron.AddFunc(spec, s.sweepSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(spec, s.purgeTrash); err != nil {
		return err
	}

	s.cron.Start()
	logger.Log.Info("sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("trash_retention", s.retention))
	return nil
}

func (s *SweeperService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// sweepSessions deactivates sessions whose expiry has passed. Rows are kept
// for the login history.
func (s *SweeperService) sweepSessions() {
	result := s.db.DB.Model(&models.Session{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, time.Now().UTC()).
		Update("is_active", false)
	if result.Error != nil {
		logger.Log.Error("failed to sweep expired sessions", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		logger.Log.Info("deactivated expired sessions", zap.Int64("count", result.RowsAffected))
	}
}

// purgeTrash hard deletes soft-deleted rows older than the retention window.
func (s *SweeperService) purgeTrash() {
	cutoff := time.Now().UTC().Add(-s.retention)

	for _, target := range []interface{}{&models.Task{}, &models.TaskList{}, &models.Note{}, &models.JournalEntry{}} {
		result := s.db.DB.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", cutoff).
			Delete(target)
		if result.Error != nil {
			logger.Log.Error("failed to purge trash", zap.Error(result.Error))
			continue
		}
		if result.RowsAffected > 0 {
			logger.Log.Info("purged trashed rows", zap.Int64("count", result.RowsAffected))
		}
	}
}

var SweeperServiceInstance SweeperServiceInterface
