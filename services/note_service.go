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

type NoteServiceInterface interface {
	CreateNote(db *database.Database, userID uuid.UUID, noteData map[string]interface{}) (models.Note, error)
	GetNoteById(db *database.Database, userID uuid.UUID, id string) (models.Note, error)
	GetNotes(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.Note, int64, error)
	UpdateNote(db *database.Database, userID uuid.UUID, id string, noteData map[string]interface{}) (models.Note, error)
	TogglePin(db *database.Database, userID uuid.UUID, id string, pinned bool) (models.Note, error)
	ToggleOpen(db *database.Database, userID uuid.UUID, id string, open bool) (models.Note, error)
	DeleteNote(db *database.Database, userID uuid.UUID, id string) error
}

type NoteService struct{}

// CreateNote creates a note in the open state: it lands in the active
// workspace until explicitly closed.
func (s *NoteService) CreateNote(db *database.Database, userID uuid.UUID, noteData map[string]interface{}) (models.Note, error) {
	title := stringField(noteData, "title")
	if title == "" {
		return models.Note{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Details:   stringField(noteData, "details"),
		SortIndex: int(normalize.Number(noteData["sort_index"], 0)),
		OpenedAt:  &now,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	if err := tx.Create(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := s.recordEvent(tx, broker.NoteCreated, note); err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	return note, nil
}

func (s *NoteService) GetNoteById(db *database.Database, userID uuid.UUID, id string) (models.Note, error) {
	var note models.Note
	if err := db.DB.Where("user_id = ?", userID).First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}
	return note, nil
}

func (s *NoteService) GetNotes(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.Note, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", userID)
		if v, ok := filters["state"]; ok {
			switch models.NoteState(v) {
			case models.NoteClosed:
				q = q.Where("opened_at IS NULL")
			case models.NoteOpen:
				q = q.Where("opened_at IS NOT NULL AND pinned_at IS NULL")
			case models.NotePinned:
				q = q.Where("opened_at IS NOT NULL AND pinned_at IS NOT NULL")
			}
		}
		if v, ok := filters["search"]; ok {
			q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+v+"%")
		}
		return q
	}

	var notes []models.Note
	total, err := database.FindPage(db.DB, page, sort.Clause("sort_index ASC"), &notes, scope)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (s *NoteService) UpdateNote(db *database.Database, userID uuid.UUID, id string, noteData map[string]interface{}) (models.Note, error) {
	title := stringField(noteData, "title")
	if title == "" {
		return models.Note{}, ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	var note models.Note
	if err := tx.Where("user_id = ?", userID).First(&note, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	note.Title = title
	note.Details = stringField(noteData, "details")
	note.SortIndex = int(normalize.Number(noteData["sort_index"], float64(note.SortIndex)))

	if err := tx.Model(&models.Note{}).Where("id = ?", note.ID).
		Select("title", "details", "sort_index").
		Updates(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := s.recordEvent(tx, broker.NoteUpdated, note); err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	return note, nil
}

// TogglePin sets or clears the pinned timestamp. Closing state is
// independent; pinning a closed note also opens it, matching the workspace
// semantics where the pinned section is part of the open workspace.
func (s *NoteService) TogglePin(db *database.Database, userID uuid.UUID, id string, pinned bool) (models.Note, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	var note models.Note
	if err := tx.Where("user_id = ?", userID).First(&note, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{}
	if pinned {
		note.PinnedAt = &now
		updates["pinned_at"] = &now
		if note.OpenedAt == nil {
			note.OpenedAt = &now
			updates["opened_at"] = &now
		}
	} else {
		note.PinnedAt = nil
		updates["pinned_at"] = nil
	}

	if err := tx.Model(&models.Note{}).Where("id = ?", note.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := s.recordEvent(tx, broker.NotePinned, note); err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	return note, nil
}

// ToggleOpen moves the note in or out of the active workspace. Closing
// clears opened_at regardless of pin state.
func (s *NoteService) ToggleOpen(db *database.Database, userID uuid.UUID, id string, open bool) (models.Note, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	var note models.Note
	if err := tx.Where("user_id = ?", userID).First(&note, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	var openedAt *time.Time
	if open {
		now := time.Now().UTC()
		openedAt = &now
	}
	note.OpenedAt = openedAt

	if err := tx.Model(&models.Note{}).Where("id = ?", note.ID).
		Update("opened_at", openedAt).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := s.recordEvent(tx, broker.NoteOpened, note); err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	return note, nil
}

func (s *NoteService) DeleteNote(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var note models.Note
	if err := tx.Where("user_id = ?", userID).First(&note, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if err := tx.Delete(&note).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := s.recordEvent(tx, broker.NoteDeleted, note); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *NoteService) recordEvent(tx *gorm.DB, eventType broker.EventType, note models.Note) error {
	event, err := models.NewEvent(string(eventType), "note", note.UserID, map[string]interface{}{
		"note_id": note.ID.String(),
		"user_id": note.UserID.String(),
		"title":   note.Title,
		"state":   string(note.State()),
	})
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

var NoteServiceInstance NoteServiceInterface = &NoteService{}
