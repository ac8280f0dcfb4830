package domain

import "time"

type Order struct {
	ID             string
	ClientID       string
	Status         string
	Currency       string
	Customer       Customer
	SubTotalAmount int64
	TotalAmount    int64
	OrderItems     []OrderItem
	CreatedAt      time.Time
}

// Customer is who the simulated purchase is shipped to.
type Customer struct {
	Name     string
	Email    string
	Province string
}

type OrderItem struct {
	ID              string
	OrderID         string
	Name            string
	UnitAmount      int64
	Quantity        int
	LineTotalAmount int64
}

type CreateOrderRequest struct {
	ClientID string
	Currency string
	Customer Customer
	Items    []OrderItemRequest
}

type OrderItemRequest struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

type OrderResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}
