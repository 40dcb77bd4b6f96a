package dto

import "playnext/internal/microservices/http-api/models"

// RegisterRequest: payload for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	UserAge  *int   `json:"user_age" binding:"omitempty,min=0,max=150"`
}

// UpdateUserDTO: partial update, only non-nil fields are applied
type UpdateUserDTO struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	UserAge  *int    `json:"user_age" binding:"omitempty,min=0,max=150"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ApplyTo copies the supplied profile fields onto u. Password and admin
// flag are left to the service, which hashes and authorizes them.
func (d UpdateUserDTO) ApplyTo(u *models.User) {
	if d.Username != nil {
		u.Username = *d.Username
	}
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.UserAge != nil {
		u.UserAge = d.UserAge
	}
}
