// AngelaMos | 2026
// dto.go

package user

import (
	"math"
	"time"

	"github.com/carterperez-dev/holidays-api/internal/core"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// UpdateUserRequest carries only the fields a caller supplied. Nil fields
// are left untouched.
type UpdateUserRequest struct {
	Email  *string `json:"email,omitempty"  validate:"omitempty,email,max=255"`
	Name   *string `json:"name,omitempty"   validate:"omitempty,min=1,max=100"`
	Role   *string `json:"role,omitempty"   validate:"omitempty,oneof=user admin"`
	Active *bool   `json:"active,omitempty"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page   int
	Limit  int
	Active *bool
}

func (p *ListUsersParams) Normalize() error {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Page > math.MaxInt/p.Limit {
		return core.ValidationError("Page is out of range")
	}
	return nil
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
