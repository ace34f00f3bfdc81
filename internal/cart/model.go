package cart

import "github.com/gofrs/uuid"

// Line is a stored cart row: one per (user, product) pair.
type Line struct {
	ID        int64     `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ProductID string    `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// Item is a cart line joined with its product's display fields, as returned
// to the client. ID carries the product id.
type Item struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Price    float64 `json:"price" db:"price"`
	ImageURL string  `json:"image_url" db:"image_url"`
	Quantity int     `json:"quantity" db:"quantity"`
}
