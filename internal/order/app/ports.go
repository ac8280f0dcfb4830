package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderRepo interface {
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
}
