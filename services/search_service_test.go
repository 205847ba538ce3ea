package services

import (
	"testing"

	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSearch_ShortQuerySkipsStore(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	searchService := &SearchService{}
	results, err := searchService.Search(db, uuid.New(), "a")

	assert.NoError(t, err)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet(), "a one-character query never reaches the store")
}

func TestSearch_ShortQueryCountsRunesNotBytes(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	searchService := &SearchService{}
	// "é" is two bytes but still a single character.
	results, err := searchService.Search(db, uuid.New(), "é")

	assert.NoError(t, err)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_TagsResultsByEntity(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()
	listID := uuid.New()
	taskID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "task_lists"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "details"}).
			AddRow(listID, userID, "Groceries", "weekly shop"))
	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "details"}).
			AddRow(taskID, userID, "Buy groceries", ""))
	mock.ExpectQuery(`SELECT (.+) FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "details"}))

	searchService := &SearchService{}
	results, err := searchService.Search(db, userID, "grocer")

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, models.SearchTaskList, results[0].Type)
	assert.Equal(t, listID, results[0].ID)
	assert.Equal(t, models.SearchTask, results[1].Type)
	assert.Equal(t, taskID, results[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_TruncatesTotal(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	userID := uuid.New()

	listRows := sqlmock.NewRows([]string{"id", "user_id", "title"})
	taskRows := sqlmock.NewRows([]string{"id", "user_id", "title"})
	noteRows := sqlmock.NewRows([]string{"id", "user_id", "title"})
	for i := 0; i < searchPerEntityLimit; i++ {
		listRows.AddRow(uuid.New(), userID, "match")
		taskRows.AddRow(uuid.New(), userID, "match")
		noteRows.AddRow(uuid.New(), userID, "match")
	}
	// A sixth note would exceed the per-entity cap, so the store never
	// returns one; the total cap is what this test exercises.
	mock.ExpectQuery(`SELECT (.+) FROM "task_lists"`).WillReturnRows(listRows)
	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).WillReturnRows(taskRows)
	mock.ExpectQuery(`SELECT (.+) FROM "notes"`).WillReturnRows(noteRows)

	searchService := &SearchService{}
	results, err := searchService.Search(db, userID, "match")

	assert.NoError(t, err)
	assert.LessOrEqual(t, len(results), searchTotalLimit)
	assert.NoError(t, mock.ExpectationsWereMet())
}
