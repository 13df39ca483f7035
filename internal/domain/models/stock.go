package models

// StockRecord captures the known stock position of a single catalog item.
type StockRecord struct {
	Category    string         `json:"category"`
	MaxQuantity int            `json:"maxQuantity"`
	PerLocation map[string]int `json:"perLocation"`
}

// QuantityAt returns the recorded quantity at a location. A location absent
// from PerLocation is quantity 0, never an error.
func (r StockRecord) QuantityAt(location string) int {
	return r.PerLocation[location]
}

// StockModel maps item names to stock records. A model is built wholesale
// from one feed response and replaced by reference on every refresh; it is
// never mutated after construction.
type StockModel map[string]StockRecord

// Catalog is the ordered list of item names offered for transfer.
type Catalog []string
