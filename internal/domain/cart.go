package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSize is stored for products sold without sizes.
const DefaultSize = "default"

// CartLine is keyed by (ProductID, Size). Product is the snapshot taken when the line was added.
type CartLine struct {
	ProductID int64   `json:"productId"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

func (l CartLine) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NormalizeSize maps an empty or blank size to DefaultSize.
func NormalizeSize(size string) string {
	size = strings.TrimSpace(size)
	if size == "" {
		return DefaultSize
	}
	return size
}
