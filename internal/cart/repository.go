package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrLineNotFound = errors.New("cart line not found")

type Repository interface {
	GetLine(ctx context.Context, userID uuid.UUID, productID string) (*Line, error)
	InsertLine(ctx context.Context, userID uuid.UUID, productID string, quantity int) error
	UpdateLineQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error
	DeleteLine(ctx context.Context, userID uuid.UUID, productID string) error
	ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error)
}

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	db DB
}

func NewRepository(db DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetLine(ctx context.Context, userID uuid.UUID, productID string) (*Line, error) {
	query := `
		SELECT id, user_id, product_id, quantity
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`

	var line Line
	err := r.db.QueryRow(ctx, query, userID, productID).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLineNotFound
		}
		return nil, fmt.Errorf("repository: failed to select cart line for user %s: %w", userID, err)
	}

	return &line, nil
}

func (r *postgresRepository) InsertLine(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	query := `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("repository: failed to insert cart line for user %s: %w", userID, err)
	}
	return nil
}

func (r *postgresRepository) UpdateLineQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	query := `
		UPDATE carts
		SET quantity = $1
		WHERE user_id = $2 AND product_id = $3
	`
	_, err := r.db.Exec(ctx, query, quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("repository: failed to update cart quantity for user %s: %w", userID, err)
	}
	return nil
}

// DeleteLine removes the line if present. Deleting an absent line is not an
// error.
func (r *postgresRepository) DeleteLine(ctx context.Context, userID uuid.UUID, productID string) error {
	query := `
		DELETE FROM carts
		WHERE user_id = $1 AND product_id = $2
	`
	_, err := r.db.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("repository: failed to delete cart line for user %s: %w", userID, err)
	}
	return nil
}

func (r *postgresRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	query := `
		SELECT c.product_id AS id, p.name, p.price, p.image_url, c.quantity
		FROM carts c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query cart items for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var item Item
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Price,
			&item.ImageURL,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan cart item for user %s: %w", userID, err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating cart items for user %s: %w", userID, err)
	}

	return items, nil
}
