package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskList is a collection of tasks. A non-nil PinnedAt promotes the list to
// the pinned section; DeletedAt is the soft-delete marker shared with the
// trash workflow.
type TaskList struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"not null" json:"title"`
	Subtitle  string         `json:"subtitle"`
	Details   string         `json:"details"`
	Status    string         `json:"status"`
	Type      string         `json:"type"`
	Icon      string         `json:"icon"`
	SortIndex int            `gorm:"default:0" json:"sort_index"`
	PinnedAt  *time.Time     `json:"pinned_at,omitempty"`
	Tasks     []Task         `gorm:"foreignKey:TaskListID" json:"tasks,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (l *TaskList) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *TaskList) Pinned() bool {
	return l.PinnedAt != nil
}

func (l *TaskList) FromJSON(data []byte) error {
	return json.Unmarshal(data, l)
}

func (l *TaskList) ToJSON() ([]byte, error) {
	return json.Marshal(l)
}
