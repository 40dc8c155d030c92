package samplework

import (
	"context"

	authdomain "github.com/gigflow/gigflow-backend/internal/auth/domain"
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]SampleWork, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) Get(ctx context.Context, id int64) (*SampleWork, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, user *authdomain.Principal, req *createReq) (*SampleWork, error) {
	if !user.IsFreelancer() {
		return nil, ErrFreelancersOnly
	}
	w := &SampleWork{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
		Skill:       req.Skill,
		Image:       req.Image,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Update applies a partial update. Unknown ids are not found; someone
// else's sample work is forbidden.
func (s *Service) Update(ctx context.Context, user *authdomain.Principal, id int64, req *updateReq) (*SampleWork, error) {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.UserID != user.ID {
		return nil, ErrNotOwner
	}
	req.apply(w)
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, user *authdomain.Principal, id int64) error {
	if !user.IsFreelancer() {
		return ErrFreelancersOnly
	}
	ok, err := s.repo.SoftDelete(ctx, user.ID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
