package routes

import (
	"net/http"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/utils/normalize"

	"github.com/gin-gonic/gin"
)

// taskFilterKeys maps incoming query keys to canonical filter fields.
var taskFilterKeys = map[string]string{
	"list":      "task_list_id",
	"completed": "completed",
	"status":    "status",
	"priority":  "priority",
	"q":         "search",
}

var taskSortFields = map[string]bool{
	"sort_index":         true,
	"planner_sort_index": true,
	"priority":           true,
	"due_date":           true,
	"created_at":         true,
}

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	group.PATCH("/tasks/:id/complete", func(c *gin.Context) { ToggleTaskComplete(c, db, taskService) })
	group.PATCH("/tasks/:id/status", func(c *gin.Context) { ChangeTaskStatus(c, db, taskService) })
	group.PATCH("/tasks/:id/move", func(c *gin.Context) { MoveTask(c, db, taskService) })
	group.GET("/board", func(c *gin.Context) { GetBoard(c, db, taskService) })
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	createdTask, err := taskService.CreateTask(db, userID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.Created("task created", createdTask))
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := normalize.Filters(c.Request.URL.Query(), taskFilterKeys)
	tasks, total, err := taskService.GetTasks(db, userID, filters, pageFromQuery(c), sortFromQuery(c, taskSortFields))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKCount("tasks", tasks, total))
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.GetTaskById(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("task", task))
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	updatedTask, err := taskService.UpdateTask(db, userID, c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("task updated", updatedTask))
}

// ToggleTaskComplete flips the completion pair. The payload carries
// completed plus an optional completed_at; the service guarantees the pair
// stays consistent.
func ToggleTaskComplete(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	completed := normalize.Bool(payload["completed"])
	completedAt := normalize.Date(payload["completed_at"])

	task, err := taskService.ToggleComplete(db, userID, c.Param("id"), completed, completedAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("task completion updated", task))
}

// ChangeTaskStatus persists the kanban column from a board drag.
func ChangeTaskStatus(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	task, err := taskService.ChangeStatus(db, userID, c.Param("id"), stringValue(payload, "status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("task status updated", task))
}

func MoveTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	task, err := taskService.MoveTask(db, userID, c.Param("id"), stringValue(payload, "task_list_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("task moved", task))
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("task deleted", nil))
}

func GetBoard(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	board, err := taskService.GetBoard(db, userID, c.Query("list"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("board", board))
}

func stringValue(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
