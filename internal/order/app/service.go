package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

var (
	ErrEmptyOrder = errors.New("order has no items")
	ErrNotFound   = errors.New("order not found")
)

type Service struct {
	repo OrderRepo
}

const (
	OrderStatusConfirmed = "CONFIRMED"
	DefaultCurrency      = "ARS"
)

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// CreateOrder records a simulated purchase. Nothing is charged or sent
// anywhere; the order is confirmed as soon as it is stored.
func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, ErrEmptyOrder
	}

	orderItem := make([]domain.OrderItem, 0, len(req.Items))
	var subTotalAmount int64 = 0

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.OrderResponse{}, fmt.Errorf("item %d: quantity must be positive, got %d", i, item.Quantity)
		}
		if item.UnitAmount < 0 {
			return domain.OrderResponse{}, fmt.Errorf("item %d: unit amount cannot be negative, got %d", i, item.UnitAmount)
		}

		orderItem = append(orderItem, domain.OrderItem{
			Name:            item.Name,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: item.UnitAmount * int64(item.Quantity),
		})

		subTotalAmount += item.UnitAmount * int64(item.Quantity)
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	order := domain.Order{
		ClientID:       req.ClientID,
		Status:         OrderStatusConfirmed,
		Currency:       currency,
		Customer:       req.Customer,
		SubTotalAmount: subTotalAmount,
		TotalAmount:    subTotalAmount,
		OrderItems:     orderItem,
	}

	createdOrder, err := s.repo.CreateOrderTx(ctx, order)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.OrderResponse{
		ID:          createdOrder.ID,
		Status:      createdOrder.Status,
		TotalAmount: createdOrder.TotalAmount,
		CreatedAt:   createdOrder.CreatedAt,
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}
