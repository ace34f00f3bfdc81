package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var ErrInsufficientStock = errors.New("insufficient stock for ordered product")

type Repository interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, placement *Placement) (int64, error)
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]Order, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

// CreateOrder runs the whole checkout in one transaction: order header, order
// items with the submitted prices, stock decrements, and the cart clear.
// Either everything commits or nothing does. The stock decrement is
// conditional on sufficient remaining stock, so two concurrent checkouts
// cannot both drain the same units.
func (r *postgresRepository) CreateOrder(ctx context.Context, userID uuid.UUID, placement *Placement) (orderID int64, err error) {
	tx, beginErr := r.db.Begin(ctx)
	if beginErr != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic_value", p).Stringer("user_id", userID).Msg("Panic recovered during CreateOrder, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("user_id", userID).Msg("Failed to rollback transaction after panic")
			}
			panic(p)
		} else if err != nil {
			log.Warn().Err(err).Stringer("user_id", userID).Msg("Transaction for CreateOrder failed, rolling back")
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error().Err(rbErr).Stringer("user_id", userID).Msg("Failed to rollback transaction")
			}
		} else {
			if commitErr := tx.Commit(ctx); commitErr != nil {
				err = fmt.Errorf("repository: failed to commit transaction: %w", commitErr)
				log.Error().Err(commitErr).Int64("order_id", orderID).Msg("Failed to commit transaction")
			}
		}
	}()

	orderDate := time.Now().UTC()

	queryOrder := `
		INSERT INTO orders (user_id, order_date, total_amount, full_name, address, city, zip_code, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err = tx.QueryRow(ctx, queryOrder,
		userID,
		orderDate,
		placement.TotalAmount,
		placement.FullName,
		placement.Address,
		placement.City,
		placement.ZipCode,
		placement.Phone,
		placement.Email,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert order: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4)
	`
	queryStock := `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`
	for _, item := range placement.Items {
		_, err = tx.Exec(ctx, queryItem, orderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return 0, fmt.Errorf("repository: failed to insert order item for order %d: %w", orderID, err)
		}

		cmdTag, execErr := tx.Exec(ctx, queryStock, item.Quantity, item.ProductID)
		if execErr != nil {
			err = fmt.Errorf("repository: failed to decrement stock for product %s: %w", item.ProductID, execErr)
			return 0, err
		}
		if cmdTag.RowsAffected() == 0 {
			err = fmt.Errorf("repository: product %s: %w", item.ProductID, ErrInsufficientStock)
			return 0, err
		}
	}

	_, err = tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to clear cart for user %s: %w", userID, err)
	}

	return orderID, nil
}

func (r *postgresRepository) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	userOrdersQuery := `
		SELECT id, user_id, order_date, total_amount, full_name, address, city, zip_code, phone, email
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC
	`

	orderRows, err := r.db.Query(ctx, userOrdersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders for user id %s: %w", userID, err)
	}
	defer orderRows.Close()

	ordersMap := make(map[int64]*Order)
	var orderIDs []int64

	for orderRows.Next() {
		var o Order
		err := orderRows.Scan(
			&o.ID,
			&o.UserID,
			&o.OrderDate,
			&o.TotalAmount,
			&o.FullName,
			&o.Address,
			&o.City,
			&o.ZipCode,
			&o.Phone,
			&o.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order for user id %s: %w", userID, err)
		}
		o.Items = make([]Item, 0)
		ordersMap[o.ID] = &o
		orderIDs = append(orderIDs, o.ID)
	}

	if err = orderRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders for user id %s: %w", userID, err)
	}

	if len(orderIDs) == 0 {
		return []Order{}, nil
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, price_at_purchase
		FROM order_items
		WHERE order_id = ANY($1)
	`
	itemRows, err := r.db.Query(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query order items for user id %s: %w", userID, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item Item
		err := itemRows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.PriceAtPurchase,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order item for user id %s: %w", userID, err)
		}

		if o, ok := ordersMap[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	if err = itemRows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating order items for user id %s: %w", userID, err)
	}

	orders := make([]Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		if o, ok := ordersMap[id]; ok {
			orders = append(orders, *o)
		}
	}

	return orders, nil
}
