package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// ListProducts returns the products in page order. A non-empty query keeps
// only products whose name contains it, ignoring case. The limit is clamped
// to [1, 100] with 20 as default.
func (s *Service) ListProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, min(limit, len(all)))
	for _, p := range all {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
