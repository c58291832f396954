package material

import (
	"context"
	"time"

	"github.com/tiss/tiss/pkg/pagination"
)

type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Material, error) {
	m := in.toModel()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Material, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]*Material, int, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Search(ctx context.Context, filters map[string]string, p pagination.Params) ([]*Material, int, error) {
	return s.repo.Search(ctx, filters, &p)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Material, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(m)
	m.UpdatedAt = time.Now().UTC()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
