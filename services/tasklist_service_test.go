package services

import (
	"testing"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateTaskList_MissingTitle(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	listService := &TaskListService{}
	_, err := listService.CreateTaskList(db, uuid.New(), map[string]interface{}{
		"subtitle": "no title",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTaskLists_SecondPage(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "user_id", "title"})
	for i := 0; i < 5; i++ {
		rows.AddRow(uuid.New(), userID, "List")
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "task_lists"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT (.+) FROM "task_lists"`).
		WillReturnRows(rows)
	mock.ExpectCommit()

	listService := &TaskListService{}
	lists, total, err := listService.GetTaskLists(db, userID, map[string]string{},
		database.Page{Page: 2, ItemsPerPage: 20}, database.Sort{})

	assert.NoError(t, err)
	assert.Equal(t, int64(25), total, "count reflects the full filtered set, not the page")
	assert.Len(t, lists, 5)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTogglePin_SetsTimestamp(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	listID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "task_lists"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "pinned_at"}).
			AddRow(listID, userID, "Groceries", nil))
	mock.ExpectExec(`UPDATE "task_lists" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnRows(testutils.MockEventInsert())
	mock.ExpectCommit()

	listService := &TaskListService{}
	list, err := listService.TogglePin(db, userID, listID.String(), true)

	assert.NoError(t, err)
	assert.True(t, list.Pinned())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTaskList_NotFound(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "task_lists"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	listService := &TaskListService{}
	err := listService.DeleteTaskList(db, uuid.New(), uuid.New().String())

	assert.ErrorIs(t, err, ErrTaskListNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
