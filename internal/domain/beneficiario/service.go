package beneficiario

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

func (s *Service) Create(ctx context.Context, in CreateInput) (*Beneficiario, error) {
	b := in.toModel()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetOrCreate reuses the beneficiário already registered under the same
// identificador, creating one only when none exists. Composite claim intake
// relies on this to avoid duplicating people.
func (s *Service) GetOrCreate(ctx context.Context, in CreateInput) (*Beneficiario, error) {
	b := in.toModel()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	existing, _, err := s.repo.Search(ctx, map[string]string{"identificador": b.Identificador}, nil)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing[0], nil
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Beneficiario, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]*Beneficiario, int, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Search(ctx context.Context, filters map[string]string, p pagination.Params) ([]*Beneficiario, int, error) {
	return s.repo.Search(ctx, filters, &p)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Beneficiario, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(b)
	b.UpdatedAt = time.Now().UTC()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
