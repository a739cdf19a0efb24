package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "PLACED"
	StatusPacked    OrderStatus = "PACKED"
	StatusDelivered OrderStatus = "DELIVERED"
)

// ParseOrderStatus accepts any casing and reports whether the status is known.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusPlaced, StatusPacked, StatusDelivered:
		return s, true
	}
	return "", false
}

// Progress is the order timeline completion in percent.
func (s OrderStatus) Progress() int {
	switch s {
	case StatusPlaced:
		return 33
	case StatusPacked:
		return 66
	case StatusDelivered:
		return 100
	default:
		return 0
	}
}

type OrderItem struct {
	ID       int64           `json:"id"`
	Product  Product         `json:"product"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type Order struct {
	ID              int64           `json:"id"`
	User            Identity        `json:"user"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	ShippingAddress string          `json:"shippingAddress"`
	Status          OrderStatus     `json:"status"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       Timestamp       `json:"createdAt"`
	UpdatedAt       Timestamp       `json:"updatedAt"`
}

// OrderLine is one requested line of a new order.
type OrderLine struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderInput struct {
	ShippingAddress string      `json:"shippingAddress"`
	Items           []OrderLine `json:"items"`
}
