package autorizacao

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

func (s *Service) Create(ctx context.Context, in CreateInput) (*Autorizacao, error) {
	a := in.toModel()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Autorizacao, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]*Autorizacao, int, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Search(ctx context.Context, filters map[string]string, p pagination.Params) ([]*Autorizacao, int, error) {
	return s.repo.Search(ctx, filters, &p)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Autorizacao, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(a)
	a.UpdatedAt = time.Now().UTC()
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
