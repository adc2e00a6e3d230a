package cart

import "github.com/shopspring/decimal"

// LineItem is one product entry held in the cart before submission.
type LineItem struct {
	Nankey             int64           `json:"nankey"`
	Description        string          `json:"description"`
	InventarioSala     int             `json:"inventarioSala"`
	InventarioDeposito int             `json:"inventarioDeposito"`
	InventarioFrio     int             `json:"inventarioFrio"`
	Precio             decimal.Decimal `json:"precio"`
}

// HasInventory reports whether at least one of the three inventory counts is
// positive. Items without any inventory are never accepted into the cart.
func (i LineItem) HasInventory() bool {
	return i.InventarioSala > 0 || i.InventarioDeposito > 0 || i.InventarioFrio > 0
}

// GeneralInfo carries the header fields shared by every line item in one
// submission batch.
type GeneralInfo struct {
	Cluster string `json:"cluster"`
	Email   string `json:"email"`
	Codigo  string `json:"codigo"`
}

// Empty reports whether no header field has been filled yet.
func (g GeneralInfo) Empty() bool {
	return g.Cluster == "" && g.Email == "" && g.Codigo == ""
}
