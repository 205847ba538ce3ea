package routes

import (
	"net/http"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/utils/normalize"

	"github.com/gin-gonic/gin"
)

var taskListFilterKeys = map[string]string{
	"status": "status",
	"type":   "type",
	"pinned": "pinned",
	"q":      "search",
}

var taskListSortFields = map[string]bool{
	"sort_index": true,
	"title":      true,
	"created_at": true,
}

func RegisterTaskListRoutes(group *gin.RouterGroup, db *database.Database, listService services.TaskListServiceInterface) {
	group.GET("/lists", func(c *gin.Context) { GetTaskLists(c, db, listService) })
	group.POST("/lists", func(c *gin.Context) { CreateTaskList(c, db, listService) })
	group.GET("/lists/:id", func(c *gin.Context) { GetTaskListById(c, db, listService) })
	group.PUT("/lists/:id", func(c *gin.Context) { UpdateTaskList(c, db, listService) })
	group.DELETE("/lists/:id", func(c *gin.Context) { DeleteTaskList(c, db, listService) })
	group.PATCH("/lists/:id/pin", func(c *gin.Context) { ToggleTaskListPin(c, db, listService) })
}

func CreateTaskList(c *gin.Context, db *database.Database, listService services.TaskListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	list, err := listService.CreateTaskList(db, userID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.Created("list created", list))
}

// GetTaskLists returns one page of lists split into the pinned and general
// groups, plus the total count for pagination.
func GetTaskLists(c *gin.Context, db *database.Database, listService services.TaskListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := normalize.Filters(c.Request.URL.Query(), taskListFilterKeys)
	lists, total, err := listService.GetTaskLists(db, userID, filters, pageFromQuery(c), sortFromQuery(c, taskListSortFields))
	if err != nil {
		respondError(c, err)
		return
	}

	pinned := []models.TaskList{}
	general := []models.TaskList{}
	for _, list := range lists {
		if list.Pinned() {
			pinned = append(pinned, list)
		} else {
			general = append(general, list)
		}
	}

	c.JSON(http.StatusOK, models.OKCount("lists", gin.H{
		"pinned":  pinned,
		"general": general,
	}, total))
}

func GetTaskListById(c *gin.Context, db *database.Database, listService services.TaskListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := listService.GetTaskListById(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("list", list))
}

func UpdateTaskList(c *gin.Context, db *database.Database, listService services.TaskListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	list, err := listService.UpdateTaskList(db, userID, c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("list updated", list))
}

func ToggleTaskListPin(c *gin.Context, db *database.Database, listService services.TaskListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	list, err := listService.TogglePin(db, userID, c.Param("id"), normalize.Bool(payload["pinned"]))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("list pin updated", list))
}

func DeleteTaskList(c *gin.Context, db *database.Database, listService services.TaskListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := listService.DeleteTaskList(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("list deleted", nil))
}
