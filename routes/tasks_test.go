package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/services"
	"github.com/MRabbani007/tasker/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTaskRouter(userID uuid.UUID, mockService *testutils.MockTaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1", authenticatedAs(userID))
	RegisterTaskRoutes(group, &database.Database{}, mockService)
	return router
}

func TestCreateTask(t *testing.T) {
	userID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	mockService.On("CreateTask", mock.Anything, userID, mock.Anything).
		Return(models.Task{ID: uuid.New(), UserID: userID, Title: "Test Task"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/tasks", bytes.NewBufferString(`{"title":"Test Task"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, 201, envelope.Status)
	assert.True(t, envelope.Success)
	mockService.AssertExpectations(t)
}

func TestCreateTask_InvalidInput(t *testing.T) {
	userID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	mockService.On("CreateTask", mock.Anything, userID, mock.Anything).
		Return(models.Task{}, services.ErrInvalidInput)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/tasks", bytes.NewBufferString(`{"details":"no title"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, 400, envelope.Status)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)
}

func TestGetTasks_PassesFiltersAndCount(t *testing.T) {
	userID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	expectedFilters := map[string]string{
		"task_list_id": "none",
		"completed":    "false",
	}
	mockService.On("GetTasks", mock.Anything, userID, expectedFilters,
		database.Page{Page: 2, ItemsPerPage: 10}, mock.Anything).
		Return([]models.Task{{ID: uuid.New(), UserID: userID, Title: "One"}}, int64(13), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/tasks?list=none&completed=false&page=2&itemsPerPage=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
	if assert.NotNil(t, envelope.Count) {
		assert.Equal(t, int64(13), *envelope.Count)
	}
	mockService.AssertExpectations(t)
}

func TestGetTaskById_NotFound(t *testing.T) {
	userID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	mockService.On("GetTaskById", mock.Anything, userID, mock.Anything).
		Return(models.Task{}, services.ErrTaskNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/tasks/"+uuid.New().String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, 404, envelope.Status)
	assert.False(t, envelope.Success)
}

func TestToggleTaskComplete(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	mockService.On("ToggleComplete", mock.Anything, userID, taskID.String(), true, mock.Anything).
		Return(models.Task{ID: taskID, UserID: userID, Title: "Done", Completed: true}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/v1/tasks/"+taskID.String()+"/complete",
		bytes.NewBufferString(`{"completed":"true"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestToggleTaskComplete_NativeJSONBool(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	// JSON clients send a real boolean, not the string "true".
	mockService.On("ToggleComplete", mock.Anything, userID, taskID.String(), true, mock.Anything).
		Return(models.Task{ID: taskID, UserID: userID, Title: "Done", Completed: true}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/v1/tasks/"+taskID.String()+"/complete",
		bytes.NewBufferString(`{"completed":true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestMoveTask(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	listID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	movedTo := listID
	mockService.On("MoveTask", mock.Anything, userID, taskID.String(), listID.String()).
		Return(models.Task{ID: taskID, UserID: userID, Title: "Moved", TaskListID: &movedTo}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/v1/tasks/"+taskID.String()+"/move",
		bytes.NewBufferString(`{"task_list_id":"`+listID.String()+`"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestGetBoard(t *testing.T) {
	userID := uuid.New()
	mockService := new(testutils.MockTaskService)
	router := setupTaskRouter(userID, mockService)

	mockService.On("GetBoard", mock.Anything, userID, "").
		Return(map[string][]models.Task{
			models.StatusNew:        {},
			models.StatusTodo:       {{ID: uuid.New(), UserID: userID, Title: "Queued", Status: models.StatusTodo}},
			models.StatusInProgress: {},
			models.StatusDone:       {},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/board", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
	mockService.AssertExpectations(t)
}

func TestTaskRoutes_RequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1") // no auth context
	RegisterTaskRoutes(group, &database.Database{}, new(testutils.MockTaskService))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/tasks", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
