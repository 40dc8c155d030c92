package http

import (
	"encoding/json"

	"github.com/gigflow/gigflow-backend/internal/projects/domain"
	"github.com/gigflow/gigflow-backend/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

// price accepts both 150 and "150.00".
type createReq struct {
	Name        string      `json:"name" binding:"required,max=255"`
	Description string      `json:"description" binding:"required"`
	Category    int64       `json:"category" binding:"required,gt=0"`
	Deadline    string      `json:"deadline" binding:"required,max=255"`
	Price       json.Number `json:"price" binding:"required,price"`
}

func (r *createReq) toDomain() *domain.CreateProjectRequest {
	return &domain.CreateProjectRequest{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.Category,
		Deadline:    r.Deadline,
		Price:       r.Price.String(),
	}
}

type updateReq struct {
	Name        *string      `json:"name" binding:"omitempty,max=255"`
	Description *string      `json:"description"`
	Category    *int64       `json:"category" binding:"omitempty,gt=0"`
	Deadline    *string      `json:"deadline" binding:"omitempty,max=255"`
	Price       *json.Number `json:"price" binding:"omitempty,price"`
}

func (r *updateReq) toDomain() *domain.UpdateProjectRequest {
	out := &domain.UpdateProjectRequest{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.Category,
		Deadline:    r.Deadline,
	}
	if r.Price != nil {
		p := r.Price.String()
		out.Price = &p
	}
	return out
}
