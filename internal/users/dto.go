package users

import (
	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
)

// UserDTO is the transport shape for a user. Only the id, email, and admin
// flag are serialized; the password hash and row timestamps never leave the
// service, the lookup endpoints being reachable without a session.
type UserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Admin        bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Admin: u.Admin,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Admin:        c.Admin,
	}
}

// UpdateUserInput is the body accepted by the user update endpoint.
// Both fields are optional; absent fields leave the stored value alone.
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

// ListQuery filters the user listing endpoint.
type ListQuery struct {
	Email string
	Limit int
}
