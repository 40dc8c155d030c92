package service

import (
	"context"

	authdomain "github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/projects/domain"
)

// Store is the persistence the service needs;
// *repository.ProjectRepository satisfies it.
type Store interface {
	List(ctx context.Context, f domain.ProjectFilter, limit, offset int) ([]domain.Project, int, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	GetOwned(ctx context.Context, userID, id int64) (*domain.Project, error)
	Create(ctx context.Context, userID int64, req *domain.CreateProjectRequest) (*domain.Project, error)
	Update(ctx context.Context, userID int64, p *domain.Project) (*domain.Project, error)
	SoftDelete(ctx context.Context, userID, id int64) (bool, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo Store
}

// NewProjectService creates a new project service
func NewProjectService(repo Store) *ProjectService {
	return &ProjectService{
		repo: repo,
	}
}

// List returns a filtered page of live projects
func (s *ProjectService) List(ctx context.Context, f domain.ProjectFilter, limit, offset int) ([]domain.Project, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.Get(ctx, id)
}

// Create posts a project owned by the caller. Freelancers cannot post.
func (s *ProjectService) Create(ctx context.Context, user *authdomain.Principal, req *domain.CreateProjectRequest) (*domain.Project, error) {
	if user.IsFreelancer() {
		return nil, domain.ErrEmployersOnly
	}
	return s.repo.Create(ctx, user.ID, req)
}

// Update applies a partial update to one of the caller's projects. Projects
// owned by someone else are reported as not found.
func (s *ProjectService) Update(ctx context.Context, user *authdomain.Principal, id int64, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	p, err := s.repo.GetOwned(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}
	req.Apply(p)
	return s.repo.Update(ctx, user.ID, p)
}

// Delete soft-deletes one of the caller's projects. Only employers delete.
func (s *ProjectService) Delete(ctx context.Context, user *authdomain.Principal, id int64) error {
	if !user.IsEmployer() {
		return domain.ErrEmployersOnly
	}
	ok, err := s.repo.SoftDelete(ctx, user.ID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
