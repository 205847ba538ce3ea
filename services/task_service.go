package services

import (
	"errors"
	"strings"
	"time"

	"github.com/MRabbani007/tasker/broker"
	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/utils/normalize"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskServiceInterface interface {
	CreateTask(db *database.Database, userID uuid.UUID, taskData map[string]interface{}) (models.Task, error)
	GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	GetTasks(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.Task, int64, error)
	GetBoard(db *database.Database, userID uuid.UUID, listID string) (map[string][]models.Task, error)
	UpdateTask(db *database.Database, userID uuid.UUID, id string, taskData map[string]interface{}) (models.Task, error)
	ToggleComplete(db *database.Database, userID uuid.UUID, id string, completed bool, completedAt *time.Time) (models.Task, error)
	MoveTask(db *database.Database, userID uuid.UUID, id string, taskListID string) (models.Task, error)
	ChangeStatus(db *database.Database, userID uuid.UUID, id string, status string) (models.Task, error)
	DeleteTask(db *database.Database, userID uuid.UUID, id string) error
}

type TaskService struct{}

// parseListID resolves the optional list association. A blank or
// whitespace-only id means "no list", never an invalid reference.
func parseListID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrInvalidInput
	}
	return &id, nil
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}

// applyFields copies the mutable attributes from a raw payload onto the
// task, coercing as it goes. Completion fields and the delete marker are
// excluded: those have dedicated transitions.
func (s *TaskService) applyFields(task *models.Task, data map[string]interface{}) error {
	title := stringField(data, "title")
	if title == "" {
		return ErrInvalidInput
	}
	task.Title = title
	task.Objective = stringField(data, "task")
	task.Details = stringField(data, "details")
	task.Notes = stringField(data, "notes")
	task.Color = stringField(data, "color")
	task.Link = stringField(data, "link")
	task.LinkText = stringField(data, "link_text")
	task.Status = stringField(data, "status")
	task.DueTime = stringField(data, "due_time")
	task.DueDate = normalize.Date(data["due_date"])

	priority := int(normalize.Number(data["priority"], 3))
	if priority < 1 {
		priority = 1
	}
	if priority > 5 {
		priority = 5
	}
	task.Priority = priority
	task.SortIndex = int(normalize.Number(data["sort_index"], 0))
	task.PlannerSortIndex = int(normalize.Number(data["planner_sort_index"], 0))

	listID, err := parseListID(stringField(data, "task_list_id"))
	if err != nil {
		return err
	}
	task.TaskListID = listID
	return nil
}

func (s *TaskService) CreateTask(db *database.Database, userID uuid.UUID, taskData map[string]interface{}) (models.Task, error) {
	task := models.Task{
		ID:     uuid.New(),
		UserID: userID,
	}
	if err := s.applyFields(&task, taskData); err != nil {
		return models.Task{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if task.TaskListID != nil {
		var listCount int64
		if err := tx.Model(&models.TaskList{}).
			Where("id = ? AND user_id = ?", task.TaskListID, userID).
			Count(&listCount).Error; err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
		if listCount == 0 {
			tx.Rollback()
			return models.Task{}, ErrTaskListNotFound
		}
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := s.recordEvent(tx, broker.TaskCreated, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	var task models.Task
	if err := db.DB.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// GetTasks returns one page of the user's tasks plus the total count,
// both taken from a single snapshot.
func (s *TaskService) GetTasks(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.Task, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", userID)
		if v, ok := filters["task_list_id"]; ok {
			if v == "none" {
				q = q.Where("task_list_id IS NULL")
			} else {
				q = q.Where("task_list_id = ?", v)
			}
		}
		if v, ok := filters["completed"]; ok {
			q = q.Where("completed = ?", v == "true")
		}
		if v, ok := filters["status"]; ok {
			q = q.Where("status = ?", v)
		}
		if v, ok := filters["priority"]; ok {
			q = q.Where("priority = ?", int(normalize.Number(v, 0)))
		}
		if v, ok := filters["search"]; ok {
			q = q.Where("LOWER(title) LIKE LOWER(?)", "%"+v+"%")
		}
		return q
	}

	var tasks []models.Task
	total, err := database.FindPage(db.DB, page, sort.Clause("sort_index ASC"), &tasks, scope)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// GetBoard groups the user's tasks into kanban columns for one list (or the
// unfiled board when listID is blank). Unrecognized status strings come back
// under their own key; the client renders icons only for columns it knows.
func (s *TaskService) GetBoard(db *database.Database, userID uuid.UUID, listID string) (map[string][]models.Task, error) {
	query := db.DB.Where("user_id = ?", userID)
	if listID == "" {
		query = query.Where("task_list_id IS NULL")
	} else {
		query = query.Where("task_list_id = ?", listID)
	}

	var tasks []models.Task
	if err := query.Order("sort_index ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	board := map[string][]models.Task{
		models.StatusNew:        {},
		models.StatusTodo:       {},
		models.StatusInProgress: {},
		models.StatusDone:       {},
	}
	for _, task := range tasks {
		status := task.Status
		if status == "" {
			status = models.StatusNew
		}
		board[status] = append(board[status], task)
	}
	return board, nil
}

// UpdateTask replaces the mutable attributes after re-validating the full
// payload. Completion state and the delete marker are untouched.
func (s *TaskService) UpdateTask(db *database.Database, userID uuid.UUID, id string, taskData map[string]interface{}) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if err := s.applyFields(&task, taskData); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
		Select("title", "task", "details", "notes", "priority", "color", "link",
			"link_text", "status", "sort_index", "planner_sort_index",
			"due_date", "due_time", "task_list_id").
		Updates(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := s.recordEvent(tx, broker.TaskUpdated, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// ToggleComplete flips the completion pair as one transition. When marking
// complete without an explicit timestamp the current time is used, so
// completed == true always implies a non-nil completed_at.
func (s *TaskService) ToggleComplete(db *database.Database, userID uuid.UUID, id string, completed bool, completedAt *time.Time) (models.Task, error) {
	if completed && completedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}
	if !completed {
		completedAt = nil
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	task.Completed = completed
	task.CompletedAt = completedAt

	if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
		Select("completed", "completed_at").
		Updates(map[string]interface{}{
			"completed":    completed,
			"completed_at": completedAt,
		}).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := s.recordEvent(tx, broker.TaskCompleted, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// MoveTask changes the owning list. Moving to the list the task is already
// in is a no-op: no write, no event.
func (s *TaskService) MoveTask(db *database.Database, userID uuid.UUID, id string, taskListID string) (models.Task, error) {
	target, err := parseListID(taskListID)
	if err != nil {
		return models.Task{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if sameList(task.TaskListID, target) {
		tx.Rollback()
		return task, nil
	}

	if target != nil {
		var listCount int64
		if err := tx.Model(&models.TaskList{}).
			Where("id = ? AND user_id = ?", target, userID).
			Count(&listCount).Error; err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
		if listCount == 0 {
			tx.Rollback()
			return models.Task{}, ErrTaskListNotFound
		}
	}

	task.TaskListID = target
	if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
		Update("task_list_id", target).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := s.recordEvent(tx, broker.TaskMoved, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func sameList(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ChangeStatus persists the kanban column verbatim. Any string is accepted;
// the board just renders no icon for values it does not recognize.
func (s *TaskService) ChangeStatus(db *database.Database, userID uuid.UUID, id string, status string) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	task.Status = status
	if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
		Update("status", status).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := s.recordEvent(tx, broker.TaskStatus, task); err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// DeleteTask soft deletes, scoped to the requesting user. Restore and
// permanent delete live in the trash service.
func (s *TaskService) DeleteTask(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := s.recordEvent(tx, broker.TaskDeleted, task); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func (s *TaskService) recordEvent(tx *gorm.DB, eventType broker.EventType, task models.Task) error {
	payload := map[string]interface{}{
		"task_id":   task.ID.String(),
		"user_id":   task.UserID.String(),
		"title":     task.Title,
		"status":    task.Status,
		"completed": task.Completed,
	}
	if task.TaskListID != nil {
		payload["task_list_id"] = task.TaskListID.String()
	}

	event, err := models.NewEvent(string(eventType), "task", task.UserID, payload)
	if err != nil {
		return err
	}
	return tx.Create(event).Error
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
