package httpserver

import (
	"github.com/shopspring/decimal"
	"localwear-storefront/internal/domain"
)

type productView struct {
	domain.Product
	SizeOptions []string `json:"sizeOptions"`
	InStock     bool     `json:"inStock"`
}

func toProductView(p domain.Product) productView {
	sizes := p.SizeList()
	if sizes == nil {
		sizes = []string{}
	}
	return productView{Product: p, SizeOptions: sizes, InStock: p.QuantityInStock > 0}
}

func toProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

type cartLineView struct {
	ProductID int64          `json:"productId"`
	Size      string         `json:"size"`
	Quantity  int            `json:"quantity"`
	Product   domain.Product `json:"product"`
	LineTotal string         `json:"lineTotal"`
}

type cartResponse struct {
	Lines     []cartLineView `json:"lines"`
	ItemCount int            `json:"itemCount"`
	Total     string         `json:"total"`
}

func toCartResponse(lines []domain.CartLine, total decimal.Decimal) cartResponse {
	resp := cartResponse{Lines: make([]cartLineView, 0, len(lines)), Total: total.StringFixed(2)}
	for _, l := range lines {
		resp.ItemCount += l.Quantity
		resp.Lines = append(resp.Lines, cartLineView{
			ProductID: l.ProductID,
			Size:      l.Size,
			Quantity:  l.Quantity,
			Product:   l.Product,
			LineTotal: l.Total().StringFixed(2),
		})
	}
	return resp
}

type orderView struct {
	domain.Order
	Progress int `json:"progress"`
}

func toOrderViews(orders []domain.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView{Order: o, Progress: o.Status.Progress()})
	}
	return out
}
