package routes

import (
	"net/http"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"

	"github.com/gin-gonic/gin"
)

func RegisterTrashRoutes(group *gin.RouterGroup, db *database.Database, trashService services.TrashServiceInterface) {
	group.GET("/trash", func(c *gin.Context) { GetTrashedItems(c, db, trashService) })
	group.POST("/trash/:type/:id/restore", func(c *gin.Context) { RestoreTrashedItem(c, db, trashService) })
	group.DELETE("/trash/:type/:id", func(c *gin.Context) { PermanentlyDeleteItem(c, db, trashService) })
	group.DELETE("/trash", func(c *gin.Context) { EmptyTrash(c, db, trashService) })
}

func GetTrashedItems(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := trashService.GetTrashedItems(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("trashed items", items))
}

func RestoreTrashedItem(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := trashService.RestoreItem(db, c.Param("type"), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("item restored", nil))
}

func PermanentlyDeleteItem(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := trashService.PermanentlyDeleteItem(db, c.Param("type"), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("item permanently deleted", nil))
}

func EmptyTrash(c *gin.Context, db *database.Database, trashService services.TrashServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := trashService.EmptyTrash(db, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("trash emptied", nil))
}
