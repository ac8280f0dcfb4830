package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/google/uuid"
)

type OrderRepo struct {
	mu     sync.RWMutex
	now    func() time.Time
	orders map[string]domain.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{now: time.Now, orders: make(map[string]domain.Order)}
}

// CreateOrderTx stores the order and its items in one step, assigning ids.
func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	order.ID = uuid.NewString()
	order.CreatedAt = r.now().UTC()
	items := make([]domain.OrderItem, len(order.OrderItems))
	for i, it := range order.OrderItems {
		it.ID = uuid.NewString()
		it.OrderID = order.ID
		items[i] = it
	}
	order.OrderItems = items

	r.mu.Lock()
	r.orders[order.ID] = order
	r.mu.Unlock()
	return order, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, app.ErrNotFound
	}
	return o, nil
}
