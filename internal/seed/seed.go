package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"localwear-storefront/internal/domain"
)

// Catalog is the admin surface the seeder needs. *gateway.Client satisfies it.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
}

type productSeed struct {
	Name        string
	Description string
	Price       string
	Category    string
	Sizes       string
	Quantity    int
}

var demoProducts = []productSeed{
	{"Classic Cotton Tee", "Soft organic cotton crew neck", "499", "T-Shirts", `["S","M","L","XL"]`, 40},
	{"Linen Kurta", "Handwoven linen, relaxed fit", "1299", "Ethnic Wear", `["M","L","XL"]`, 15},
	{"Slim Fit Denim", "Stretch denim with a tapered leg", "1799", "Jeans", `["30","32","34","36"]`, 20},
	{"Block Print Dupatta", "Hand block printed cotton", "699", "Accessories", "", 25},
	{"Oxford Shirt", "Button down collar, everyday oxford weave", "999", "Shirts", `["S","M","L"]`, 18},
}

// Apply creates the demo catalog. Products already present by name are skipped, so running
// it twice adds nothing.
func Apply(ctx context.Context, catalog Catalog) (int, error) {
	existing, err := catalog.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[strings.ToLower(p.Name)] = struct{}{}
	}

	created := 0
	for _, p := range demoProducts {
		if _, ok := seen[strings.ToLower(p.Name)]; ok {
			continue
		}
		in := domain.ProductInput{
			Name:            p.Name,
			Description:     p.Description,
			Price:           decimal.RequireFromString(p.Price),
			Category:        p.Category,
			Sizes:           p.Sizes,
			QuantityInStock: p.Quantity,
		}
		if _, err := catalog.CreateProduct(ctx, in); err != nil {
			return created, fmt.Errorf("create product %s: %w", p.Name, err)
		}
		created++
	}
	return created, nil
}
