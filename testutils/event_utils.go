package testutils

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/MRabbani007/tasker/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

// MockEventRows creates mock SQL rows for events testing
func MockEventRows(events []models.Event) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "event", "version", "entity", "user_id",
		"timestamp", "data", "dispatched", "dispatched_at",
	})

	for _, event := range events {
		if event.ID == uuid.Nil {
			event.ID = uuid.New()
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now()
		}
		if event.Data == nil {
			event.Data = json.RawMessage(`{}`)
		}

		rows.AddRow(
			event.ID,
			event.Event,
			event.Version,
			event.Entity,
			event.UserID,
			event.Timestamp,
			event.Data,
			event.Dispatched,
			event.DispatchedAt,
		)
	}

	return rows
}

func MockEventInsert() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(uuid.New())
}

func NewResult(lastInsertID, rowsAffected int64) driver.Result {
	return sqlmock.NewResult(lastInsertID, rowsAffected)
}
