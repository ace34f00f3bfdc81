package order

import (
	"time"

	"github.com/gofrs/uuid"
)

type Order struct {
	ID          int64     `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	OrderDate   time.Time `json:"order_date" db:"order_date"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	FullName    string    `json:"full_name" db:"full_name"`
	Address     string    `json:"address" db:"address"`
	City        string    `json:"city" db:"city"`
	ZipCode     string    `json:"zip_code" db:"zip_code"`
	Phone       string    `json:"phone" db:"phone"`
	Email       string    `json:"email" db:"email"`
	Items       []Item    `json:"items" db:"-"`
}

// Item snapshots the purchased quantity and price. PriceAtPurchase is fixed at
// checkout and never follows later catalog price changes.
type Item struct {
	ID              int64   `json:"id" db:"id"`
	OrderID         int64   `json:"order_id" db:"order_id"`
	ProductID       string  `json:"product_id" db:"product_id"`
	Quantity        int     `json:"quantity" db:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase" db:"price_at_purchase"`
}

// Placement is the checkout input: shipping contact fields plus the item
// snapshot as submitted by the client.
type Placement struct {
	FullName    string
	Address     string
	City        string
	ZipCode     string
	Phone       string
	Email       string
	TotalAmount float64
	Items       []PlacementItem
}

type PlacementItem struct {
	ProductID string
	Quantity  int
	Price     float64
}
