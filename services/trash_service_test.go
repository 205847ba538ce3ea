package services

import (
	"testing"
	"time"

	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetTrashedItems(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	deletedAt := time.Now().UTC().Add(-time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "deleted_at"}).
			AddRow(uuid.New(), userID, "Trashed task", deletedAt))
	mock.ExpectQuery(`SELECT (.+) FROM "task_lists"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "deleted_at"}))
	mock.ExpectQuery(`SELECT (.+) FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "deleted_at"}).
			AddRow(uuid.New(), userID, "Trashed note", deletedAt))

	trashService := &TrashService{}
	items, err := trashService.GetTrashedItems(db, userID)

	assert.NoError(t, err)
	assert.Len(t, items["tasks"].([]models.Task), 1)
	assert.Len(t, items["task_lists"].([]models.TaskList), 0)
	assert.Len(t, items["notes"].([]models.Note), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreItem_InvalidID(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	trashService := &TrashService{}
	err := trashService.RestoreItem(db, "task", "not-a-uuid", uuid.New())

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreItem_UnknownType(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	trashService := &TrashService{}
	err := trashService.RestoreItem(db, "journal", uuid.New().String(), uuid.New())

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreItem_TaskNotInTrash(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	trashService := &TrashService{}
	err := trashService.RestoreItem(db, "task", uuid.New().String(), uuid.New())

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestoreItem_TaskListCascadesToTasks(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "task_lists" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnRows(testutils.MockEventInsert())
	mock.ExpectCommit()

	trashService := &TrashService{}
	err := trashService.RestoreItem(db, "tasklist", uuid.New().String(), uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermanentlyDeleteItem_TaskListOrphansTasks(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "task_lists"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	trashService := &TrashService{}
	err := trashService.PermanentlyDeleteItem(db, "tasklist", uuid.New().String(), uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmptyTrash(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "task_lists"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "notes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnRows(testutils.MockEventInsert())
	mock.ExpectCommit()

	trashService := &TrashService{}
	assert.NoError(t, trashService.EmptyTrash(db, uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
