package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteState is the three-way lifecycle derived from the two nullable
// timestamps: closed (OpenedAt nil), open (OpenedAt set, PinnedAt nil),
// pinned (both set).
type NoteState string

const (
	NoteClosed NoteState = "closed"
	NoteOpen   NoteState = "open"
	NotePinned NoteState = "pinned"
)

type Note struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"not null" json:"title"`
	Details   string         `json:"details"`
	SortIndex int            `gorm:"default:0" json:"sort_index"`
	OpenedAt  *time.Time     `json:"opened_at,omitempty"`
	PinnedAt  *time.Time     `json:"pinned_at,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (n *Note) State() NoteState {
	if n.OpenedAt == nil {
		return NoteClosed
	}
	if n.PinnedAt == nil {
		return NoteOpen
	}
	return NotePinned
}

func (n *Note) FromJSON(data []byte) error {
	return json.Unmarshal(data, n)
}

func (n *Note) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
