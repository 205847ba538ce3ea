package routes

import (
	"net/http"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/utils/normalize"

	"github.com/gin-gonic/gin"
)

var journalFilterKeys = map[string]string{
	"day":  "day",
	"type": "type",
}

var journalSortFields = map[string]bool{
	"sort_index":  true,
	"occurred_at": true,
}

func RegisterJournalRoutes(group *gin.RouterGroup, db *database.Database, journalService services.JournalServiceInterface) {
	group.GET("/journal", func(c *gin.Context) { GetJournalEntries(c, db, journalService) })
	group.POST("/journal", func(c *gin.Context) { CreateJournalEntry(c, db, journalService) })
	group.PUT("/journal/:id", func(c *gin.Context) { UpdateJournalEntry(c, db, journalService) })
	group.DELETE("/journal/:id", func(c *gin.Context) { DeleteJournalEntry(c, db, journalService) })
}

func CreateJournalEntry(c *gin.Context, db *database.Database, journalService services.JournalServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	entry, err := journalService.CreateEntry(db, userID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.Created("journal entry created", entry))
}

func GetJournalEntries(c *gin.Context, db *database.Database, journalService services.JournalServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filters := normalize.Filters(c.Request.URL.Query(), journalFilterKeys)
	entries, total, err := journalService.GetEntries(db, userID, filters, pageFromQuery(c), sortFromQuery(c, journalSortFields))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OKCount("journal entries", entries, total))
}

func UpdateJournalEntry(c *gin.Context, db *database.Database, journalService services.JournalServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	entry, err := journalService.UpdateEntry(db, userID, c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("journal entry updated", entry))
}

func DeleteJournalEntry(c *gin.Context, db *database.Database, journalService services.JournalServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := journalService.DeleteEntry(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("journal entry deleted", nil))
}
