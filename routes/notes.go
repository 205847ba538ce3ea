package routes

import (
	"net/http"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/utils/normalize"

	"github.com/gin-gonic/gin"
)

var noteFilterKeys = map[string]string{
	"state": "state",
	"q":     "search",
}

var noteSortFields = map[string]bool{
	"sort_index": true,
	"title":      true,
	"created_at": true,
}

func RegisterNoteRoutes(group *gin.RouterGroup, db *database.Database, noteService services.NoteServiceInterface) {
	group.GET("/notes", func(c *gin.Context) { GetNotes(c, db, noteService) })
	group.POST("/notes", func(c *gin.Context) { CreateNote(c, db, noteService) })
	group.GET("/notes/:id", func(c *gin.Context) { GetNoteById(c, db, noteService) })
	group.PUT("/notes/:id", func(c *gin.Context) { UpdateNote(c, db, noteService) })
	group.DELETE("/notes/:id", func(c *gin.Context) { DeleteNote(c, db, noteService) })
	group.PATCH("/notes/:id/pin", func(c *gin.Context) { ToggleNotePin(c, db, noteService) })
	group.PATCH("/notes/:id/open", func(c *gin.Context) { ToggleNoteOpen(c, db, noteService) })
}

func CreateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	note, err := noteService.CreateNote(db, userID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.Created("note created", note))
}

func GetNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := normalize.Filters(c.Request.URL.Query(), noteFilterKeys)
	notes, total, err := noteService.GetNotes(db, userID, filters, pageFromQuery(c), sortFromQuery(c, noteSortFields))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKCount("notes", notes, total))
}

func GetNoteById(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	note, err := noteService.GetNoteById(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("note", note))
}

func UpdateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	note, err := noteService.UpdateNote(db, userID, c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("note updated", note))
}

func ToggleNotePin(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	note, err := noteService.TogglePin(db, userID, c.Param("id"), normalize.Bool(payload["pinned"]))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("note pin updated", note))
}

func ToggleNoteOpen(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	note, err := noteService.ToggleOpen(db, userID, c.Param("id"), normalize.Bool(payload["open"]))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("note workspace state updated", note))
}

func DeleteNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := noteService.DeleteNote(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("note deleted", nil))
}
