package domain

// CartItem is one line in a shopper's cart. A line is identified by the
// (ProductID, SizeLabel) pair, so two sizes of the same perfume are
// separate lines.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	SizeLabel string  `json:"size"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image"`
	ImageAlt  string  `json:"alt"`
}
