package testutils

import (
	"time"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/utils/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTaskService mocks the TaskServiceInterface for testing
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(db *database.Database, userID uuid.UUID, taskData map[string]interface{}) (models.Task, error) {
	args := m.Called(db, userID, taskData)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	args := m.Called(db, userID, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTasks(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.Task, int64, error) {
	args := m.Called(db, userID, filters, page, sort)
	return args.Get(0).([]models.Task), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskService) GetBoard(db *database.Database, userID uuid.UUID, listID string) (map[string][]models.Task, error) {
	args := m.Called(db, userID, listID)
	return args.Get(0).(map[string][]models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(db *database.Database, userID uuid.UUID, id string, taskData map[string]interface{}) (models.Task, error) {
	args := m.Called(db, userID, id, taskData)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) ToggleComplete(db *database.Database, userID uuid.UUID, id string, completed bool, completedAt *time.Time) (models.Task, error) {
	args := m.Called(db, userID, id, completed, completedAt)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) MoveTask(db *database.Database, userID uuid.UUID, id string, taskListID string) (models.Task, error) {
	args := m.Called(db, userID, id, taskListID)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) ChangeStatus(db *database.Database, userID uuid.UUID, id string, status string) (models.Task, error) {
	args := m.Called(db, userID, id, status)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(db *database.Database, userID uuid.UUID, id string) error {
	args := m.Called(db, userID, id)
	return args.Error(0)
}

// MockTaskListService mocks the TaskListServiceInterface for testing
type MockTaskListService struct {
	mock.Mock
}

func (m *MockTaskListService) CreateTaskList(db *database.Database, userID uuid.UUID, listData map[string]interface{}) (models.TaskList, error) {
	args := m.Called(db, userID, listData)
	return args.Get(0).(models.TaskList), args.Error(1)
}

func (m *MockTaskListService) GetTaskListById(db *database.Database, userID uuid.UUID, id string) (models.TaskList, error) {
	args := m.Called(db, userID, id)
	return args.Get(0).(models.TaskList), args.Error(1)
}

func (m *MockTaskListService) GetTaskLists(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.TaskList, int64, error) {
	args := m.Called(db, userID, filters, page, sort)
	return args.Get(0).([]models.TaskList), args.Get(1).(int64), args.Error(2)
}

func (m *MockTaskListService) UpdateTaskList(db *database.Database, userID uuid.UUID, id string, listData map[string]interface{}) (models.TaskList, error) {
	args := m.Called(db, userID, id, listData)
	return args.Get(0).(models.TaskList), args.Error(1)
}

func (m *MockTaskListService) TogglePin(db *database.Database, userID uuid.UUID, id string, pinned bool) (models.TaskList, error) {
	args := m.Called(db, userID, id, pinned)
	return args.Get(0).(models.TaskList), args.Error(1)
}

func (m *MockTaskListService) DeleteTaskList(db *database.Database, userID uuid.UUID, id string) error {
	args := m.Called(db, userID, id)
	return args.Error(0)
}

// MockNoteService mocks the NoteServiceInterface for testing
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) CreateNote(db *database.Database, userID uuid.UUID, noteData map[string]interface{}) (models.Note, error) {
	args := m.Called(db, userID, noteData)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) GetNoteById(db *database.Database, userID uuid.UUID, id string) (models.Note, error) {
	args := m.Called(db, userID, id)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) GetNotes(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.Note, int64, error) {
	args := m.Called(db, userID, filters, page, sort)
	return args.Get(0).([]models.Note), args.Get(1).(int64), args.Error(2)
}

func (m *MockNoteService) UpdateNote(db *database.Database, userID uuid.UUID, id string, noteData map[string]interface{}) (models.Note, error) {
	args := m.Called(db, userID, id, noteData)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) TogglePin(db *database.Database, userID uuid.UUID, id string, pinned bool) (models.Note, error) {
	args := m.Called(db, userID, id, pinned)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) ToggleOpen(db *database.Database, userID uuid.UUID, id string, open bool) (models.Note, error) {
	args := m.Called(db, userID, id, open)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) DeleteNote(db *database.Database, userID uuid.UUID, id string) error {
	args := m.Called(db, userID, id)
	return args.Error(0)
}

// MockJournalService mocks the JournalServiceInterface for testing
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(db *database.Database, userID uuid.UUID, entryData map[string]interface{}) (models.JournalEntry, error) {
	args := m.Called(db, userID, entryData)
	return args.Get(0).(models.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntries(db *database.Database, userID uuid.UUID, filters map[string]string, page database.Page, sort database.Sort) ([]models.JournalEntry, int64, error) {
	args := m.Called(db, userID, filters, page, sort)
	return args.Get(0).([]models.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalService) UpdateEntry(db *database.Database, userID uuid.UUID, id string, entryData map[string]interface{}) (models.JournalEntry, error) {
	args := m.Called(db, userID, id, entryData)
	return args.Get(0).(models.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(db *database.Database, userID uuid.UUID, id string) error {
	args := m.Called(db, userID, id)
	return args.Error(0)
}

// MockSearchService mocks the SearchServiceInterface for testing
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(db *database.Database, userID uuid.UUID, query string) ([]models.SearchResult, error) {
	args := m.Called(db, userID, query)
	return args.Get(0).([]models.SearchResult), args.Error(1)
}

// MockTrashService mocks the TrashServiceInterface for testing
type MockTrashService struct {
	mock.Mock
}

func (m *MockTrashService) GetTrashedItems(db *database.Database, userID uuid.UUID) (map[string]interface{}, error) {
	args := m.Called(db, userID)
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockTrashService) RestoreItem(db *database.Database, itemType string, itemID string, userID uuid.UUID) error {
	args := m.Called(db, itemType, itemID, userID)
	return args.Error(0)
}

func (m *MockTrashService) PermanentlyDeleteItem(db *database.Database, itemType string, itemID string, userID uuid.UUID) error {
	args := m.Called(db, itemType, itemID, userID)
	return args.Error(0)
}

func (m *MockTrashService) EmptyTrash(db *database.Database, userID uuid.UUID) error {
	args := m.Called(db, userID)
	return args.Error(0)
}

// MockUserService mocks the UserServiceInterface for testing
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(db *database.Database, userData map[string]interface{}) (models.User, error) {
	args := m.Called(db, userData)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) GetUserById(db *database.Database, id string) (models.User, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(db *database.Database, id string, profile map[string]interface{}) (models.User, error) {
	args := m.Called(db, id, profile)
	return args.Get(0).(models.User), args.Error(1)
}

// MockAuthService mocks the AuthServiceInterface for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(db *database.Database, email, password string, client models.ClientInfo) (models.Session, error) {
	args := m.Called(db, email, password, client)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockAuthService) CreateSession(db *database.Database, userID uuid.UUID, client models.ClientInfo) (models.Session, error) {
	args := m.Called(db, userID, client)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockAuthService) ValidateSession(db *database.Database, tokenString string) (models.Session, error) {
	args := m.Called(db, tokenString)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockAuthService) Logout(db *database.Database, tokenString string) error {
	args := m.Called(db, tokenString)
	return args.Error(0)
}

func (m *MockAuthService) GenerateChannelToken(session models.Session) (string, error) {
	args := m.Called(session)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateChannelToken(tokenString string) (*token.ChannelClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.ChannelClaims), args.Error(1)
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ComparePasswords(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}
