package domain

import (
	"errors"
	"fmt"
	"time"

	authdomain "github.com/gigflow/gigflow-backend/internal/auth/domain"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrForbidden = errors.New("not allowed to modify this user")
)

// FieldError is a constraint violation that belongs to one input field,
// e.g. a duplicate username.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// User is a marketplace account. PasswordHash and IsStaff never leave the
// server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	UserType     *string   `json:"user_type"`
	CategoryID   *int64    `json:"category"`
	PhoneNumber  *string   `json:"phone_number"`
	Resume       *string   `json:"resume"`
	IsStaff      bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// Principal projects the user onto the identity used by auth middleware.
func (u *User) Principal() *authdomain.Principal {
	p := &authdomain.Principal{ID: u.ID, Username: u.Username, IsStaff: u.IsStaff}
	if u.UserType != nil {
		p.UserType = *u.UserType
	}
	return p
}

// CreateUserRequest is a validated sign-up.
type CreateUserRequest struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	UserType    *string
	CategoryID  *int64
	PhoneNumber *string
	Resume      *string
}

// UpdateUserRequest carries only the fields the caller sent.
type UpdateUserRequest struct {
	Username    *string
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	UserType    *string
	CategoryID  *int64
	PhoneNumber *string
	Resume      *string
}

// Apply copies the set fields onto u. Password is handled by the service.
func (r *UpdateUserRequest) Apply(u *User) {
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.UserType != nil {
		u.UserType = r.UserType
	}
	if r.CategoryID != nil {
		u.CategoryID = r.CategoryID
	}
	if r.PhoneNumber != nil {
		u.PhoneNumber = r.PhoneNumber
	}
	if r.Resume != nil {
		u.Resume = r.Resume
	}
}
