package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	Username         string    `gorm:"uniqueIndex;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"column:hashed_password;not null" json:"-"` // never serialized
	RegistrationDate time.Time `gorm:"autoCreateTime" json:"registration_date"`
	UserAge          *int      `json:"user_age,omitempty"`
	IsAdmin          bool      `gorm:"not null;default:false" json:"is_admin"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// Role maps the admin flag onto the role names used by the auth middleware.
func (user *User) Role() string {
	if user.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

func (User) TableName() string {
	return "users"
}
