package guia

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

func (s *Service) Create(ctx context.Context, in CreateInput) (*Guia, error) {
	g := in.toModel()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Guia, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]*Guia, int, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Search(ctx context.Context, filters map[string]string, p pagination.Params) ([]*Guia, int, error) {
	return s.repo.Search(ctx, filters, &p)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Guia, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(g)
	g.UpdatedAt = time.Now().UTC()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
