package services

import (
	"errors"
	"time"

	"github.com/MRabbani007/tasker/broker"
	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/utils/normalize"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalServiceInterface interface {
	CreateEntry(db *database.Database, userID uuid.UUID, entryData map[string]interface{}) (models.JournalEntry, error)
	GetEntries(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.JournalEntry, int64, error)
	UpdateEntry(db *database.Database, userID uuid.UUID, id string, entryData map[string]interface{}) (models.JournalEntry, error)
	DeleteEntry(db *database.Database, userID uuid.UUID, id string) error
}

type JournalService struct{}

func (s *JournalService) buildEntry(entry *models.JournalEntry, data map[string]interface{}) error {
	entryType, err := models.JournalEntryTypeFromString(stringField(data, "type"))
	if err != nil {
		return ErrInvalidInput
	}
	entry.Type = entryType
	entry.Subject = stringField(data, "subject")
	entry.Content = stringField(data, "content")
	entry.SortIndex = int(normalize.Number(data["sort_index"], 0))

	occurredOn := normalize.Date(data["occurred_on"])
	if occurredOn == nil {
		return ErrInvalidInput
	}
	// The day key is the date at midnight UTC; occurred_at keeps the merged
	// date+time when a time of day was supplied.
	day := time.Date(occurredOn.Year(), occurredOn.Month(), occurredOn.Day(), 0, 0, 0, 0, time.UTC)
	entry.OccurredOn = day
	entry.OccurredAt = normalize.Date(data["occurred_at"])
	if entry.OccurredAt == nil {
		entry.OccurredAt = occurredOn
	}
	return nil
}

func (s *JournalService) CreateEntry(db *database.Database, userID uuid.UUID, entryData map[string]interface{}) (models.JournalEntry, error) {
	entry := models.JournalEntry{
		ID:     uuid.New(),
		UserID: userID,
	}
	if err := s.buildEntry(&entry, entryData); err != nil {
		return models.JournalEntry{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.JournalEntry{}, tx.Error
	}

	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return models.JournalEntry{}, err
	}

	if err := s.recordEvent(tx, broker.JournalCreated, entry); err != nil {
		tx.Rollback()
		return models.JournalEntry{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.JournalEntry{}, err
	}

	return entry, nil
}

// GetEntries lists journal entries, primarily filtered by day.
func (s *JournalService) GetEntries(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.JournalEntry, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", userID)
		if v, ok := filters["day"]; ok {
			if day := normalize.Date(v); day != nil {
				start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
				q = q.Where("occurred_on = ?", start)
			}
		}
		if v, ok := filters["type"]; ok {
			q = q.Where("type = ?", v)
		}
		return q
	}

	var entries []models.JournalEntry
	total, err := database.FindPage(db.DB, page, sort.Clause("sort_index ASC"), &entries, scope)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *JournalService) UpdateEntry(db *database.Database, userID uuid.UUID, id string, entryData map[string]interface{}) (models.JournalEntry, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.JournalEntry{}, tx.Error
	}

	var entry models.JournalEntry
	if err := tx.Where("user_id = ?", userID).First(&entry, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.JournalEntry{}, ErrJournalNotFound
		}
		return models.JournalEntry{}, err
	}

	if err := s.buildEntry(&entry, entryData); err != nil {
		tx.Rollback()
		return models.JournalEntry{}, err
	}

	if err := tx.Model(&models.JournalEntry{}).Where("id = ?", entry.ID).
		Select("type", "subject", "content", "occurred_on", "occurred_at", "sort_index").
		Updates(&entry).Error; err != nil {
		tx.Rollback()
		return models.JournalEntry{}, err
	}

	if err := s.recordEvent(tx, broker.JournalUpdated, entry); err != nil {
		tx.Rollback()
		return models.JournalEntry{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.JournalEntry{}, err
	}

	return entry, nil
}

func (s *JournalService) DeleteEntry(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var entry models.JournalEntry
	if err := tx.Where("user_id = ?", userID).First(&entry, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJournalNotFound
		}
		return err
	}

	if err := tx.Delete(&entry).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := s.recordEvent(tx, broker.JournalDeleted, entry); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *JournalService) recordEvent(tx *gorm.DB, eventType broker.EventType, entry models.JournalEntry) error {
	event, err := models.NewEvent(string(eventType), "journal", entry.UserID, map[string]interface{}{
		"journal_entry_id": entry.ID.String(),
		"user_id":          entry.UserID.String(),
		"type":             string(entry.Type),
		"occurred_on":      entry.OccurredOn.Format("2006-01-02"),
	})
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

var JournalServiceInstance JournalServiceInterface = &JournalService{}
