package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	userID := uuid.New()
	event, err := NewEvent("task.created", "task", userID, map[string]interface{}{
		"task_id": "abc",
	})

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "task.created", event.Event)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "task", event.Entity)
	assert.Equal(t, userID, event.UserID)
	assert.False(t, event.Dispatched)
	assert.Nil(t, event.DispatchedAt)
	assert.False(t, event.Timestamp.IsZero())

	var data map[string]interface{}
	assert.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "abc", data["task_id"])
}

func TestNewEvent_RejectsUnmarshalableData(t *testing.T) {
	_, err := NewEvent("task.created", "task", uuid.New(), map[string]interface{}{
		"bad": make(chan int),
	})
	assert.Error(t, err)
}
