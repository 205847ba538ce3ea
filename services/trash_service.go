package services

import (
	"github.com/MRabbani007/tasker/broker"
	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"

	"github.com/google/uuid"
)

type TrashServiceInterface interface {
	GetTrashedItems(db *database.Database, userID uuid.UUID) (map[string]interface{}, error)
	RestoreItem(db *database.Database, itemType string, itemID string, userID uuid.UUID) error
	PermanentlyDeleteItem(db *database.Database, itemType string, itemID string, userID uuid.UUID) error
	EmptyTrash(db *database.Database, userID uuid.UUID) error
}

type TrashService struct{}

func (s *TrashService) GetTrashedItems(db *database.Database, userID uuid.UUID) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	var trashedTasks []models.Task
	if err := db.DB.Unscoped().Where("user_id = ? AND deleted_at IS NOT NULL", userID).Find(&trashedTasks).Error; err != nil {
		return nil, err
	}

	var trashedLists []models.TaskList
	if err := db.DB.Unscoped().Where("user_id = ? AND deleted_at IS NOT NULL", userID).Find(&trashedLists).Error; err != nil {
		return nil, err
	}

	var trashedNotes []models.Note
	if err := db.DB.Unscoped().Where("user_id = ? AND deleted_at IS NOT NULL", userID).Find(&trashedNotes).Error; err != nil {
		return nil, err
	}

	result["tasks"] = trashedTasks
	result["task_lists"] = trashedLists
	result["notes"] = trashedNotes

	return result, nil
}

// RestoreItem clears the soft-delete marker on a trashed item. Restoring a
// task list also restores the tasks that were trashed with it.
func (s *TrashService) RestoreItem(db *database.Database, itemType, itemID string, userID uuid.UUID) error {
	parsedItemID, err := uuid.Parse(itemID)
	if err != nil {
		return ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var eventType broker.EventType
	var entityType string

	switch itemType {
	case "task":
		result := tx.Unscoped().Model(&models.Task{}).
			Where("id = ? AND user_id = ?", parsedItemID, userID).
			Update("deleted_at", nil)
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrTaskNotFound
		}
		eventType = broker.TaskRestored
		entityType = "task"

	case "tasklist":
		result := tx.Unscoped().Model(&models.TaskList{}).
			Where("id = ? AND user_id = ?", parsedItemID, userID).
			Update("deleted_at", nil)
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrTaskListNotFound
		}

		if err := tx.Unscoped().Model(&models.Task{}).
			Where("task_list_id = ? AND user_id = ?", parsedItemID, userID).
			Update("deleted_at", nil).Error; err != nil {
			tx.Rollback()
			return err
		}
		eventType = broker.TaskListRestored
		entityType = "tasklist"

	case "note":
		result := tx.Unscoped().Model(&models.Note{}).
			Where("id = ? AND user_id = ?", parsedItemID, userID).
			Update("deleted_at", nil)
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrNoteNotFound
		}
		eventType = broker.NoteRestored
		entityType = "note"

	default:
		tx.Rollback()
		return ErrInvalidInput
	}

	event, err := models.NewEvent(string(eventType), entityType, userID, map[string]interface{}{
		entityType + "_id": itemID,
		"user_id":          userID.String(),
	})
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// PermanentlyDeleteItem removes a trashed item for good.
func (s *TrashService) PermanentlyDeleteItem(db *database.Database, itemType, itemID string, userID uuid.UUID) error {
	parsedItemID, err := uuid.Parse(itemID)
	if err != nil {
		return ErrInvalidInput
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	switch itemType {
	case "task":
		result := tx.Unscoped().
			Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", parsedItemID, userID).
			Delete(&models.Task{})
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrTaskNotFound
		}

	case "tasklist":
		// Tasks belonging to the list survive as unfiled rather than being
		// destroyed with their container.
		if err := tx.Unscoped().Model(&models.Task{}).
			Where("task_list_id = ? AND user_id = ?", parsedItemID, userID).
			Update("task_list_id", nil).Error; err != nil {
			tx.Rollback()
			return err
		}

		result := tx.Unscoped().
			Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", parsedItemID, userID).
			Delete(&models.TaskList{})
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrTaskListNotFound
		}

	case "note":
		result := tx.Unscoped().
			Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", parsedItemID, userID).
			Delete(&models.Note{})
		if result.Error != nil {
			tx.Rollback()
			return result.Error
		}
		if result.RowsAffected == 0 {
			tx.Rollback()
			return ErrNoteNotFound
		}

	default:
		tx.Rollback()
		return ErrInvalidInput
	}

	return tx.Commit().Error
}

// EmptyTrash hard deletes every trashed task, list and note of the user.
func (s *TrashService) EmptyTrash(db *database.Database, userID uuid.UUID) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Unscoped().Where("user_id = ? AND deleted_at IS NOT NULL", userID).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Unscoped().Where("user_id = ? AND deleted_at IS NOT NULL", userID).Delete(&models.TaskList{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Unscoped().Where("user_id = ? AND deleted_at IS NOT NULL", userID).Delete(&models.Note{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(string(broker.TrashEmptied), "trash", userID, map[string]interface{}{
		"user_id": userID.String(),
	})
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// NewTrashService creates a new instance of TrashService
func NewTrashService() TrashServiceInterface {
	return &TrashService{}
}

var TrashServiceInstance TrashServiceInterface = &TrashService{}
