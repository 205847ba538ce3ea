package routes

import (
	"net/http"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"

	"github.com/gin-gonic/gin"
)

// RegisterSearchRoutes wires the cross-entity search endpoint. It lives on
// /api/search (outside the versioned group) to match the original client,
// but sits behind the same session auth: an unauthenticated caller gets a
// real 403 response, not an error payload on a 200.
func RegisterSearchRoutes(router *gin.Engine, db *database.Database, searchService services.SearchServiceInterface, authMiddleware gin.HandlerFunc) {
	router.GET("/api/search", authMiddleware, func(c *gin.Context) { Search(c, db, searchService) })
}

func Search(c *gin.Context, db *database.Database, searchService services.SearchServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	results, err := searchService.Search(db, userID, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("search results", results))
}
