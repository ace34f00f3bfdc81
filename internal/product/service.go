package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("product_id", id).Msg("failed to get product by id")
		return nil, fmt.Errorf("failed to get product by id '%s': %w", id, err)
	}
	return p, nil
}
