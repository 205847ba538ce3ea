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

type TaskListServiceInterface interface {
	CreateTaskList(db *database.Database, userID uuid.UUID, listData map[string]interface{}) (models.TaskList, error)
	GetTaskListById(db *database.Database, userID uuid.UUID, id string) (models.TaskList, error)
	GetTaskLists(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.TaskList, int64, error)
	UpdateTaskList(db *database.Database, userID uuid.UUID, id string, listData map[string]interface{}) (models.TaskList, error)
	TogglePin(db *database.Database, userID uuid.UUID, id string, pinned bool) (models.TaskList, error)
	DeleteTaskList(db *database.Database, userID uuid.UUID, id string) error
}

type TaskListService struct{}

func (s *TaskListService) applyFields(list *models.TaskList, data map[string]interface{}) error {
	title := stringField(data, "title")
	if title == "" {
		return ErrInvalidInput
	}
	list.Title = title
	list.Subtitle = stringField(data, "subtitle")
	list.Details = stringField(data, "details")
	list.Status = stringField(data, "status")
	list.Type = stringField(data, "type")
	list.Icon = stringField(data, "icon")
	list.SortIndex = int(normalize.Number(data["sort_index"], 0))
	return nil
}

func (s *TaskListService) CreateTaskList(db *database.Database, userID uuid.UUID, listData map[string]interface{}) (models.TaskList, error) {
	list := models.TaskList{
		ID:     uuid.New(),
		UserID: userID,
	}
	if err := s.applyFields(&list, listData); err != nil {
		return models.TaskList{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.TaskList{}, tx.Error
	}

	if err := tx.Create(&list).Error; err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	if err := s.recordEvent(tx, broker.TaskListCreated, list); err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	return list, nil
}

func (s *TaskListService) GetTaskListById(db *database.Database, userID uuid.UUID, id string) (models.TaskList, error) {
	var list models.TaskList
	if err := db.DB.Where("user_id = ?", userID).First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TaskList{}, ErrTaskListNotFound
		}
		return models.TaskList{}, err
	}
	return list, nil
}

// GetTaskLists returns one page of lists plus the total count for
// pagination, read from a single snapshot. Default order is ascending
// sort index; callers may override with sort. Partitioning into pinned and
// general groups is the caller's job.
func (s *TaskListService) GetTaskLists(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.TaskList, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", userID)
		if v, ok := filters["status"]; ok {
			q = q.Where("status = ?", v)
		}
		if v, ok := filters["type"]; ok {
			q = q.Where("type = ?", v)
		}
		if v, ok := filters["pinned"]; ok {
			if v == "true" {
				q = q.Where("pinned_at IS NOT NULL")
			} else {
				q = q.Where("pinned_at IS NULL")
			}
		}
		if v, ok := filters["search"]; ok {
			q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+v+"%")
		}
		return q
	}

	var lists []models.TaskList
	total, err := database.FindPage(db.DB, page, sort.Clause("sort_index ASC"), &lists, scope)
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

func (s *TaskListService) UpdateTaskList(db *database.Database, userID uuid.UUID, id string, listData map[string]interface{}) (models.TaskList, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.TaskList{}, tx.Error
	}

	var list models.TaskList
	if err := tx.Where("user_id = ?", userID).First(&list, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TaskList{}, ErrTaskListNotFound
		}
		return models.TaskList{}, err
	}

	if err := s.applyFields(&list, listData); err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	if err := tx.Model(&models.TaskList{}).Where("id = ?", list.ID).
		Select("title", "subtitle", "details", "status", "type", "icon", "sort_index").
		Updates(&list).Error; err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	if err := s.recordEvent(tx, broker.TaskListUpdated, list); err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	return list, nil
}

// TogglePin sets or clears the pinned timestamp. Pinned is presence, not a
// boolean column.
func (s *TaskListService) TogglePin(db *database.Database, userID uuid.UUID, id string, pinned bool) (models.TaskList, error) {
	var pinnedAt *time.Time
	if pinned {
		now := time.Now().UTC()
		pinnedAt = &now
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.TaskList{}, tx.Error
	}

	var list models.TaskList
	if err := tx.Where("user_id = ?", userID).First(&list, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TaskList{}, ErrTaskListNotFound
		}
		return models.TaskList{}, err
	}

	list.PinnedAt = pinnedAt
	if err := tx.Model(&models.TaskList{}).Where("id = ?", list.ID).
		Update("pinned_at", pinnedAt).Error; err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	if err := s.recordEvent(tx, broker.TaskListPinned, list); err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.TaskList{}, err
	}

	return list, nil
}

func (s *TaskListService) DeleteTaskList(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var list models.TaskList
	if err := tx.Where("user_id = ?", userID).First(&list, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskListNotFound
		}
		return err
	}

	if err := tx.Delete(&list).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := s.recordEvent(tx, broker.TaskListDeleted, list); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *TaskListService) recordEvent(tx *gorm.DB, eventType broker.EventType, list models.TaskList) error {
	event, err := models.NewEvent(string(eventType), "tasklist", list.UserID, map[string]interface{}{
		"task_list_id": list.ID.String(),
		"user_id":      list.UserID.String(),
		"title":        list.Title,
		"pinned":       list.Pinned(),
	})
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

var TaskListServiceInstance TaskListServiceInterface = &TaskListService{}
