package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Sizes           string          `json:"sizes"`
	QuantityInStock int             `json:"quantityInStock"`
	CreatedAt       Timestamp       `json:"createdAt"`
	UpdatedAt       Timestamp       `json:"updatedAt"`
}

// SizeList decodes Sizes. The backend stores either a JSON array or a comma separated list.
func (p Product) SizeList() []string {
	raw := strings.TrimSpace(p.Sizes)
	if raw == "" {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return compactSizes(parsed)
	}
	if strings.HasPrefix(raw, "[") {
		// a JSON value that is not a list of strings
		return nil
	}
	return compactSizes(strings.Split(raw, ","))
}

func (p Product) HasSizes() bool {
	return len(p.SizeList()) > 0
}

func compactSizes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ProductInput is the admin payload for creating or updating a product.
type ProductInput struct {
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	Sizes           string          `json:"sizes"`
	QuantityInStock int             `json:"quantityInStock"`
}
