package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyOrder  = errors.New("order has no items")
	ErrOrderFailed = errors.New("failed to place order")
)

type Service interface {
	Place(ctx context.Context, userID uuid.UUID, placement *Placement) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Place(ctx context.Context, userID uuid.UUID, placement *Placement) (int64, error) {
	if len(placement.Items) == 0 {
		return 0, ErrEmptyOrder
	}

	orderID, err := s.repo.CreateOrder(ctx, userID, placement)
	if err != nil {
		// The cause stays in the logs; callers get a generic failure so no
		// storage detail leaks through the API.
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to place order")
		return 0, fmt.Errorf("%w: %w", ErrOrderFailed, err)
	}

	return orderID, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	orders, err := s.repo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
