package http

import (
	"context"

	"github.com/gigflow/gigflow-backend/internal/users/domain"
)

// Service is the user logic the handlers depend on.
type Service interface {
	Register(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, callerID, targetID int64, req *domain.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, callerID, targetID int64) error
}

type Handler struct {
	svc Service
}

func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

type signupReq struct {
	Username    string  `json:"username" binding:"required,max=150"`
	Email       string  `json:"email" binding:"required,email,max=254"`
	Password    string  `json:"password" binding:"required,min=8,max=72"`
	FirstName   string  `json:"first_name" binding:"max=150"`
	LastName    string  `json:"last_name" binding:"max=150"`
	UserType    *string `json:"user_type" binding:"omitempty,oneof=freelancer employer"`
	Category    *int64  `json:"category" binding:"omitempty,gt=0"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=10,numeric"`
	Resume      *string `json:"resume" binding:"omitempty,max=255"`
}

func (r *signupReq) toDomain() *domain.CreateUserRequest {
	return &domain.CreateUserRequest{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		UserType:    r.UserType,
		CategoryID:  r.Category,
		PhoneNumber: r.PhoneNumber,
		Resume:      r.Resume,
	}
}

type updateReq struct {
	Username    *string `json:"username" binding:"omitempty,max=150"`
	Email       *string `json:"email" binding:"omitempty,email,max=254"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=72"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=150"`
	LastName    *string `json:"last_name" binding:"omitempty,max=150"`
	UserType    *string `json:"user_type" binding:"omitempty,oneof=freelancer employer"`
	Category    *int64  `json:"category" binding:"omitempty,gt=0"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=10,numeric"`
	Resume      *string `json:"resume" binding:"omitempty,max=255"`
}

func (r *updateReq) toDomain() *domain.UpdateUserRequest {
	return &domain.UpdateUserRequest{
		Username:    r.Username,
		Email:       r.Email,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		UserType:    r.UserType,
		CategoryID:  r.Category,
		PhoneNumber: r.PhoneNumber,
		Resume:      r.Resume,
	}
}
