package product

type Product struct {
	ID            string   `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	Description   string   `json:"description" db:"description"`
	Price         float64  `json:"price" db:"price"`
	OriginalPrice *float64 `json:"original_price" db:"original_price"`
	Discount      int      `json:"discount" db:"discount"`
	ImageURL      string   `json:"image_url" db:"image_url"`
	Stock         int      `json:"stock" db:"stock"`
}
