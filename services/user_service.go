package services

import (
	"errors"
	"strings"

	"github.com/MRabbani007/tasker/broker"
	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/models"
	"github.com/MRabbani007/tasker/utils/normalize"

	"gorm.io/gorm"
)

type UserServiceInterface interface {
	Register(db *database.Database, userData map[string]interface{}) (models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
	UpdateProfile(db *database.Database, id string, profile map[string]interface{}) (models.User, error)
}

type UserService struct {
	auth AuthServiceInterface
}

func NewUserService(auth AuthServiceInterface) *UserService {
	return &UserService{auth: auth}
}

// Register creates a user with a hashed password. A duplicate email is
// reported as ErrEmailExists so the caller can map it to a conflict.
func (s *UserService) Register(db *database.Database, userData map[string]interface{}) (models.User, error) {
	email, _ := userData["email"].(string)
	password, _ := userData["password"].(string)
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	firstName, _ := userData["first_name"].(string)
	lastName, _ := userData["last_name"].(string)

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		DateOfBirth:  normalize.Date(userData["date_of_birth"]),
		IsActive:     true,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var existing int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if existing > 0 {
		tx.Rollback()
		return models.User{}, ErrEmailExists
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	event, err := models.NewEvent(
		string(broker.UserCreated),
		"user",
		user.ID,
		map[string]interface{}{
			"user_id": user.ID.String(),
			"email":   user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile updates the editable profile fields. Credentials are not
// touched here.
func (s *UserService) UpdateProfile(db *database.Database, id string, profile map[string]interface{}) (models.User, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	updates := map[string]interface{}{}
	if v, ok := profile["first_name"].(string); ok {
		updates["first_name"] = v
	}
	if v, ok := profile["last_name"].(string); ok {
		updates["last_name"] = v
	}
	if _, ok := profile["date_of_birth"]; ok {
		updates["date_of_birth"] = normalize.Date(profile["date_of_birth"])
	}

	if len(updates) > 0 {
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.User{}, err
		}
	}

	event, err := models.NewEvent(
		string(broker.UserUpdated),
		"user",
		user.ID,
		map[string]interface{}{
			"user_id": user.ID.String(),
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

var UserServiceInstance UserServiceInterface
