package models

import "time"

// OrderStatus is the lifecycle state of an order. Pending is the only state
// with outgoing transitions; the other three are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "Paid"
	StatusFailure   OrderStatus = "Failure"
	StatusCancelled OrderStatus = "Cancelled"
)

// Terminal reports whether no transition out of s is defined.
func (s OrderStatus) Terminal() bool {
	return s != StatusPending
}

// Order represents a single checkout submission recorded in the ledger
type Order struct {
	OrderID     string      `json:"order_id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Street      string      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Pincode     string      `json:"pincode"`
	Quantity    int         `json:"quantity"` // pack size in grams
	Price       int         `json:"price"`
	ProductName string      `json:"product_name"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
