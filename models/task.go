package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kanban column identifiers. Status is free-form on the wire: unrecognized
// values are persisted verbatim and the board simply renders no icon for
// them. An empty status means the task is unsorted.
const (
	StatusNew        = "NEW"
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

type Task struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TaskListID       *uuid.UUID     `gorm:"type:uuid;index" json:"task_list_id,omitempty"`
	Title            string         `gorm:"not null" json:"title"`
	Objective        string         `gorm:"column:task" json:"task"`
	Details          string         `json:"details"`
	Notes            string         `json:"notes"`
	Priority         int            `gorm:"default:3" json:"priority"`
	Color            string         `json:"color"`
	Link             string         `json:"link"`
	LinkText         string         `json:"link_text"`
	SortIndex        int            `gorm:"default:0" json:"sort_index"`
	PlannerSortIndex int            `gorm:"default:0" json:"planner_sort_index"`
	Completed        bool           `gorm:"default:false" json:"completed"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	Status           string         `json:"status"`
	DueDate          *time.Time     `json:"due_date,omitempty"`
	DueTime          string         `json:"due_time"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Task) FromJSON(data []byte) error {
	return json.Unmarshal(data, t)
}

func (t *Task) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}
