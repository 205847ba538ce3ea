package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalEntryType string

const (
	JournalTask       JournalEntryType = "task"
	JournalNote       JournalEntryType = "note"
	JournalHighlight  JournalEntryType = "highlight"
	JournalRoutine    JournalEntryType = "routine"
	JournalReflection JournalEntryType = "reflection"
)

// JournalEntryTypeFromString converts a string to a JournalEntryType.
func JournalEntryTypeFromString(s string) (JournalEntryType, error) {
	switch s {
	case "task":
		return JournalTask, nil
	case "note":
		return JournalNote, nil
	case "highlight":
		return JournalHighlight, nil
	case "routine":
		return JournalRoutine, nil
	case "reflection":
		return JournalReflection, nil
	default:
		return "", errors.New("invalid journal entry type")
	}
}

// JournalEntry is one dated item on the journal timeline. OccurredOn carries
// the day (midnight UTC), OccurredAt the merged date+time when a time of day
// was supplied.
type JournalEntry struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type       JournalEntryType `gorm:"type:varchar(20);not null" json:"type"`
	Subject    string           `json:"subject"`
	Content    string           `json:"content"`
	OccurredOn time.Time        `gorm:"not null;index" json:"occurred_on"`
	OccurredAt *time.Time       `json:"occurred_at,omitempty"`
	SortIndex  int              `gorm:"default:0" json:"sort_index"`
	CreatedAt  time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt   `gorm:"index" json:"deleted_at,omitempty"`
}

func (j *JournalEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

func (j *JournalEntry) FromJSON(data []byte) error {
	return json.Unmarshal(data, j)
}

func (j *JournalEntry) ToJSON() ([]byte, error) {
	return json.Marshal(j)
}
