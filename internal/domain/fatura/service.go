package fatura

import (
	"context"
	"strconv"
	"time"

	"github.com/tiss/tiss/pkg/pagination"
)

type Service struct {
	repo  Repo
	links LinkRepo
}

func NewService(repo Repo, links LinkRepo) *Service {
	return &Service{repo: repo, links: links}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Fatura, error) {
	f := in.toModel()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Fatura, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]*Fatura, int, error) {
	return s.repo.List(ctx, p)
}

func (s *Service) Search(ctx context.Context, filters map[string]string, p pagination.Params) ([]*Fatura, int, error) {
	return s.repo.Search(ctx, filters, &p)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Fatura, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(f)
	f.UpdatedAt = time.Now().UTC()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// AddGuia links a guia into the fatura. The unique index on guia_id turns a
// second linkage of the same guia into a Conflict.
func (s *Service) AddGuia(ctx context.Context, faturaID int64, in AddGuiaInput) (*FaturaGuia, error) {
	if _, err := s.repo.GetByID(ctx, faturaID); err != nil {
		return nil, err
	}
	link := in.toLink(faturaID)
	if err := link.Validate(); err != nil {
		return nil, err
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// ListGuias pages through the links of one fatura.
func (s *Service) ListGuias(ctx context.Context, faturaID int64, p pagination.Params) ([]*FaturaGuia, int, error) {
	if _, err := s.repo.GetByID(ctx, faturaID); err != nil {
		return nil, 0, err
	}
	filters := map[string]string{"fatura_id": strconv.FormatInt(faturaID, 10)}
	return s.links.Search(ctx, filters, &p)
}

// RemoveGuia unlinks a guia from the fatura, reporting whether a link existed.
func (s *Service) RemoveGuia(ctx context.Context, faturaID, guiaID int64) (bool, error) {
	filters := map[string]string{
		"fatura_id": strconv.FormatInt(faturaID, 10),
		"guia_id":   strconv.FormatInt(guiaID, 10),
	}
	links, _, err := s.links.Search(ctx, filters, nil)
	if err != nil {
		return false, err
	}
	if len(links) == 0 {
		return false, nil
	}
	return s.links.Delete(ctx, links[0].ID)
}
