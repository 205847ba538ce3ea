package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/utils/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthServiceInterface interface {
	Login(db *database.Database, email, password string, client models.ClientInfo) (models.Session, error)
	CreateSession(db *database.Database, userID uuid.UUID, client models.ClientInfo) (models.Session, error)
	ValidateSession(db *database.Database, tokenString string) (models.Session, error)
	Logout(db *database.Database, tokenString string) error
	GenerateChannelToken(session models.Session) (string, error)
	ValidateChannelToken(tokenString string) (*token.ChannelClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	sessionTTL         time.Duration
	channelTokenSecret []byte
	channelTokenTTL    time.Duration
}

func NewAuthService(sessionExpirationHours int, channelTokenSecret string, channelTokenTTLMinutes int) *AuthService {
	return &AuthService{
		sessionTTL:         time.Duration(sessionExpirationHours) * time.Hour,
		channelTokenSecret: []byte(channelTokenSecret),
		channelTokenTTL:    time.Duration(channelTokenTTLMinutes) * time.Minute,
	}
}

func (s *AuthService) Login(db *database.Database, email, password string, client models.ClientInfo) (models.Session, error) {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}

	session, err := s.CreateSession(db, user.ID, client)
	if err != nil {
		return models.Session{}, err
	}
	session.User = &user
	return session, nil
}

// CreateSession issues a fresh opaque token for the user. Called on login and
// on registration.
func (s *AuthService) CreateSession(db *database.Database, userID uuid.UUID, client models.ClientInfo) (models.Session, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return models.Session{}, err
	}

	expires := time.Now().UTC().Add(s.sessionTTL)
	session := models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     hex.EncodeToString(raw),
		IsActive:  true,
		ExpiresAt: &expires,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
	}

	if err := db.DB.Create(&session).Error; err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// ValidateSession looks up the token and enforces the validity rule: active
// and not past expiry. The owning user is preloaded for the caller.
func (s *AuthService) ValidateSession(db *database.Database, tokenString string) (models.Session, error) {
	if tokenString == "" {
		return models.Session{}, ErrUnauthorized
	}

	var session models.Session
	if err := db.DB.Preload("User").Where("token = ?", tokenString).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, ErrUnauthorized
		}
		return models.Session{}, err
	}

	if !session.Valid(time.Now().UTC()) {
		return models.Session{}, ErrUnauthorized
	}

	return session, nil
}

// Logout deactivates the session; the row is kept, never deleted.
func (s *AuthService) Logout(db *database.Database, tokenString string) error {
	result := db.DB.Model(&models.Session{}).
		Where("token = ? AND is_active = ?", tokenString, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// GenerateChannelToken exchanges a validated session for the short-lived
// signed token used on the WebSocket handshake.
func (s *AuthService) GenerateChannelToken(session models.Session) (string, error) {
	return token.GenerateChannelToken(session.UserID, session.ID, s.channelTokenSecret, s.channelTokenTTL)
}

func (s *AuthService) ValidateChannelToken(tokenString string) (*token.ChannelClaims, error) {
	return token.ValidateChannelToken(tokenString, s.channelTokenSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface
