package types

// Product is one catalog entry. AvailableQty seeds the advisory stock
// ledger at load time; the backend keeps the authoritative count.
type Product struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Price        float64 `json:"price" yaml:"price"`
	Image        string  `json:"image" yaml:"image"`
	Category     string  `json:"category,omitempty" yaml:"category,omitempty"`
	AvailableQty int     `json:"available_qty" yaml:"available_qty"`
}

// StockRecord is the ledger's view of one product's remaining availability.
type StockRecord struct {
	ProductID    string `json:"product_id"`
	AvailableQty int    `json:"available_qty"`
}
