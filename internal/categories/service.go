package categories

import (
	"context"

	"github.com/gigflow/gigflow-backend/internal/platform/logging"
	"github.com/gigflow/gigflow-backend/internal/platform/pagination"
)

// Service fronts the repository with the list cache. Cache errors are
// logged and never fail a request.
type Service struct {
	repo  *Repo
	cache *Cache
}

func NewService(repo *Repo, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context, page pagination.Request) (*ListResult, error) {
	log := logging.NewLogger(ctx)

	cached, version, ok, err := s.cache.Get(ctx, page.Number, page.Size)
	if err != nil {
		log.LogWarnf("categories.cache_get", "error=%v", err)
	}
	if ok {
		return cached, nil
	}

	res, err := s.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, version, page.Number, page.Size, res); err != nil {
		log.LogWarnf("categories.cache_set", "error=%v", err)
	}
	return res, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string) (*Category, error) {
	c, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *Service) Rename(ctx context.Context, id int64, name string) (*Category, error) {
	c, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logging.NewLogger(ctx).LogWarnf("categories.cache_invalidate", "error=%v", err)
	}
}
