package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientInfo is the request metadata captured on each new session.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// Session is a server-side login session. The opaque token is what the
// client presents (cookie or bearer header); logout deactivates the row
// rather than deleting it so the login history survives.
type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Token     string     `gorm:"unique;not null;index" json:"-"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Valid reports whether the session can authenticate a request: it must be
// active and either unexpiring or not yet past its expiry.
func (s *Session) Valid(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}
