package routes

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/MRabbani007/tasker/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// authenticatedAs stands in for the session middleware: it puts a fixed user
// on the context the way AuthMiddleware would after validating a session.
func authenticatedAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var envelope models.Envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}
