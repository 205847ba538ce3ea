package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/middleware"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAuthRouter(authService *testutils.MockAuthService, userService *testutils.MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterAuthRoutes(router, &database.Database{}, authService, userService)
	return router
}

func TestLogin_SetsCookie(t *testing.T) {
	authService := new(testutils.MockAuthService)
	userService := new(testutils.MockUserService)
	router := setupAuthRouter(authService, userService)

	userID := uuid.New()
	expires := time.Now().UTC().Add(168 * time.Hour)
	session := models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		User:      &models.User{ID: userID, Email: "jamie@example.com"},
		Token:     "opaque-session-token",
		IsActive:  true,
		ExpiresAt: &expires,
		CreatedAt: time.Now().UTC(),
	}
	authService.On("Login", mock.Anything, "jamie@example.com", "hunter2", mock.Anything).
		Return(session, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/auth/login",
		bytes.NewBufferString(`{"email":"jamie@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookieName {
			found = true
			assert.Equal(t, "opaque-session-token", cookie.Value)
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found, "login must set the session cookie")
	authService.AssertExpectations(t)
}

func TestLogin_BadCredentials(t *testing.T) {
	authService := new(testutils.MockAuthService)
	userService := new(testutils.MockUserService)
	router := setupAuthRouter(authService, userService)

	authService.On("Login", mock.Anything, "jamie@example.com", "wrong", mock.Anything).
		Return(models.Session{}, services.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/auth/login",
		bytes.NewBufferString(`{"email":"jamie@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
}

func TestLogin_MissingFields(t *testing.T) {
	router := setupAuthRouter(new(testutils.MockAuthService), new(testutils.MockUserService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/auth/login",
		bytes.NewBufferString(`{"email":"jamie@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_AutoLogin(t *testing.T) {
	authService := new(testutils.MockAuthService)
	userService := new(testutils.MockUserService)
	router := setupAuthRouter(authService, userService)

	userID := uuid.New()
	user := models.User{ID: userID, Email: "new@example.com"}
	userService.On("Register", mock.Anything, mock.Anything).Return(user, nil)
	authService.On("CreateSession", mock.Anything, userID, mock.Anything).
		Return(models.Session{ID: uuid.New(), UserID: userID, Token: "fresh-token", IsActive: true}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/auth/register",
		bytes.NewBufferString(`{"email":"new@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	authService.AssertExpectations(t)
	userService.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	authService := new(testutils.MockAuthService)
	userService := new(testutils.MockUserService)
	router := setupAuthRouter(authService, userService)

	userService.On("Register", mock.Anything, mock.Anything).
		Return(models.User{}, services.ErrEmailExists)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/auth/register",
		bytes.NewBufferString(`{"email":"taken@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogout_IsIdempotent(t *testing.T) {
	authService := new(testutils.MockAuthService)
	router := setupAuthRouter(authService, new(testutils.MockUserService))

	// Even when the token is unknown the response is a clean 200.
	authService.On("Logout", mock.Anything, "stale-token").
		Return(services.ErrSessionNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "stale-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionProbe_Unauthenticated(t *testing.T) {
	authService := new(testutils.MockAuthService)
	router := setupAuthRouter(authService, new(testutils.MockUserService))

	authService.On("ValidateSession", mock.Anything, "").
		Return(models.Session{}, services.ErrUnauthorized)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/auth/session", nil)
	router.ServeHTTP(w, req)

	// The probe is the one endpoint that answers 200 either way; the body
	// carries the authenticated flag.
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Authenticated bool             `json:"authenticated"`
		User          *json.RawMessage `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Authenticated)
	assert.Nil(t, body.User)
}

func TestSessionProbe_Authenticated(t *testing.T) {
	authService := new(testutils.MockAuthService)
	router := setupAuthRouter(authService, new(testutils.MockUserService))

	userID := uuid.New()
	session := models.Session{
		ID:       uuid.New(),
		UserID:   userID,
		User:     &models.User{ID: userID, Email: "jamie@example.com"},
		IsActive: true,
	}
	authService.On("ValidateSession", mock.Anything, "live-token").Return(session, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "live-token"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Authenticated bool               `json:"authenticated"`
		User          *models.PublicUser `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Authenticated)
	if assert.NotNil(t, body.User) {
		assert.Equal(t, "jamie@example.com", body.User.Email)
	}
}
