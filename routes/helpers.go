package routes

import (
	"errors"
	"net/http"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/utils/normalize"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID reads the authenticated user from the context. The auth
// middleware is responsible for putting it there; a miss is an authorization
// failure, checked before anything else in every handler.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusForbidden, models.Fail(403, "authentication required", "unauthorized"))
		return uuid.Nil, false
	}
	return userIDValue.(uuid.UUID), true
}

// bindPayload accepts either a JSON body or a form submission and returns a
// uniform raw payload for the entity validators.
func bindPayload(c *gin.Context) (map[string]interface{}, bool) {
	payload := make(map[string]interface{})

	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, models.Fail(400, "missing or invalid data", "invalid input"))
			return nil, false
		}
		return payload, true
	}

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(400, "missing or invalid data", "invalid input"))
		return nil, false
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload, true
}

// respondError maps a service error onto the envelope taxonomy: validation
// to 400, authorization to 403, missing rows to 404, duplicate email to 409,
// everything else to a generic 500 that leaks no detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.Fail(400, "missing or invalid data", "invalid input"))
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, models.Fail(403, "not authorized", "unauthorized"))
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskListNotFound),
		errors.Is(err, services.ErrNoteNotFound),
		errors.Is(err, services.ErrJournalNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, models.Fail(404, "not found", err.Error()))
	case errors.Is(err, services.ErrEmailExists):
		c.JSON(http.StatusConflict, models.Fail(409, "email already registered", "conflict"))
	default:
		c.JSON(http.StatusInternalServerError, models.Fail(500, "something went wrong", "server error"))
	}
}

// pageFromQuery reads page/itemsPerPage with the usual defaults.
func pageFromQuery(c *gin.Context) database.Page {
	return database.Page{
		Page:         int(normalize.Number(c.Query("page"), 1)),
		ItemsPerPage: int(normalize.Number(c.Query("itemsPerPage"), database.DefaultItemsPerPage)),
	}
}

// sortFromQuery reads the optional {field, direction} ordering override.
func sortFromQuery(c *gin.Context, allowed map[string]bool) database.Sort {
	field := c.Query("sortField")
	if !allowed[field] {
		field = ""
	}
	return database.Sort{
		Field:     field,
		Direction: c.Query("sortDirection"),
	}
}
