package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/farhan-shop/shop-api/internal/product"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)

type Service interface {
	// AddItem reports whether a new line was created (true) or an existing
	// line's quantity was incremented (false).
	AddItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) (bool, error)
	ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error)
	SetQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
}

type service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) Service {
	return &service{repo: repo, products: products}
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}

	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return false, ErrProductNotFound
		}
		log.Error().Err(err).Str("product_id", productID).Msg("failed to validate product for cart add")
		return false, fmt.Errorf("failed to validate product: %w", err)
	}

	if p.Stock < quantity {
		return false, ErrInsufficientStock
	}

	line, err := s.repo.GetLine(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			if err := s.repo.InsertLine(ctx, userID, productID, quantity); err != nil {
				log.Error().Err(err).Stringer("user_id", userID).Msg("failed to insert cart line")
				return false, fmt.Errorf("failed to add item to cart: %w", err)
			}
			return true, nil
		}
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to fetch cart line")
		return false, fmt.Errorf("failed to fetch cart line: %w", err)
	}

	if err := s.repo.UpdateLineQuantity(ctx, userID, productID, line.Quantity+quantity); err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to update cart line quantity")
		return false, fmt.Errorf("failed to update cart quantity: %w", err)
	}
	return false, nil
}

func (s *service) ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to list cart items")
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// SetQuantity overwrites the stored quantity. Zero removes the line. The new
// quantity is not re-checked against stock.
func (s *service) SetQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	if quantity == 0 {
		if err := s.repo.DeleteLine(ctx, userID, productID); err != nil {
			log.Error().Err(err).Stringer("user_id", userID).Msg("failed to delete cart line")
			return fmt.Errorf("failed to remove cart line: %w", err)
		}
		return nil
	}

	if err := s.repo.UpdateLineQuantity(ctx, userID, productID, quantity); err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to set cart quantity")
		return fmt.Errorf("failed to set cart quantity: %w", err)
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	if err := s.repo.DeleteLine(ctx, userID, productID); err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}
