package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/handoff"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

// DOMReader scans the live storefront panel of a tab, if one is open.
type DOMReader interface {
	ReadDOM(ctx context.Context, id handoff.Identity) ([]handoff.Item, bool)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.OrderResponse, error)
}

// CartEmptier empties the live storefront cart of a tab.
type CartEmptier interface {
	Empty(ctx context.Context, id handoff.Identity)
}
