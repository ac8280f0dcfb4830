package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/validation"
	"github.com/dwikikusuma/storefront/internal/handoff"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNoSummary    = errors.New("checkout page not loaded")
)

type Service struct {
	resolver *Resolver
	tab      storage.Store
	durable  storage.Store
	orders   OrderCreator
	cart     CartEmptier
	log      *slog.Logger

	now func() time.Time

	mu        sync.Mutex
	summaries map[string]*page
}

// page is the summary of one open checkout tab.
type page struct {
	sum  *domain.Summary
	seen time.Time
}

// NewService wires the checkout page. cart may be nil when no storefront
// runs in the same process.
func NewService(resolver *Resolver, orders OrderCreator, cart CartEmptier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		resolver:  resolver,
		tab:       resolver.tab,
		durable:   resolver.durable,
		orders:    orders,
		cart:      cart,
		log:       log,
		now:       time.Now,
		summaries: make(map[string]*page),
	}
}

func (s *Service) Resolver() *Resolver { return s.resolver }

// Load is the checkout page load: the cart is resolved again and a fresh
// summary replaces any previous one for the tab.
func (s *Service) Load(ctx context.Context, id handoff.Identity) (*domain.Summary, domain.Resolution, error) {
	if err := checkIdentity(id); err != nil {
		return nil, domain.Resolution{}, err
	}
	res := s.resolver.ResolveCart(ctx, id)
	sum := RenderSummary(res.Items)

	s.mu.Lock()
	s.summaries[id.TabID] = &page{sum: sum, seen: s.now()}
	s.mu.Unlock()
	return sum.Clone(), res, nil
}

func (s *Service) Summary(id handoff.Identity) (*domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.summaries[id.TabID]
	if !ok {
		return nil, ErrNoSummary
	}
	p.seen = s.now()
	return p.sum.Clone(), nil
}

// Input applies a live edit of a quantity field.
func (s *Service) Input(id handoff.Identity, idx int, raw string) (*domain.Summary, error) {
	return s.edit(id, func(sum *domain.Summary) error {
		_, err := sum.Input(idx, raw)
		return err
	})
}

// Change commits a quantity field.
func (s *Service) Change(id handoff.Identity, idx int) (*domain.Summary, error) {
	return s.edit(id, func(sum *domain.Summary) error {
		_, err := sum.Change(idx)
		return err
	})
}

func (s *Service) edit(id handoff.Identity, fn func(*domain.Summary) error) (*domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.summaries[id.TabID]
	if !ok {
		return nil, ErrNoSummary
	}
	p.seen = s.now()
	if err := fn(p.sum); err != nil {
		return nil, err
	}
	return p.sum.Clone(), nil
}

// Sweep forgets the summaries of tabs last used before cutoff and reports
// how many it dropped.
func (s *Service) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for tab, p := range s.summaries {
		if p.seen.Before(cutoff) {
			delete(s.summaries, tab)
			n++
		}
	}
	return n
}

// Submit validates the form and places the simulated order. Personal data is
// checked first; payment data is only checked once it passes. On success
// nothing of the cart is left behind.
func (s *Service) Submit(ctx context.Context, id handoff.Identity, form validation.Form) (orderdomain.OrderResponse, error) {
	if err := checkIdentity(id); err != nil {
		return orderdomain.OrderResponse{}, err
	}
	if err := validation.ValidatePersonal(form); err != nil {
		return orderdomain.OrderResponse{}, err
	}
	if err := validation.ValidatePayment(form); err != nil {
		return orderdomain.OrderResponse{}, err
	}

	sum, err := s.Summary(id)
	if err != nil {
		return orderdomain.OrderResponse{}, err
	}
	if sum.Empty() {
		return orderdomain.OrderResponse{}, ErrEmptyCart
	}

	req := orderdomain.CreateOrderRequest{
		ClientID: id.ClientID,
		Customer: orderdomain.Customer{
			Name:     strings.TrimSpace(form.Nombre + " " + form.Apellido),
			Email:    form.Email1,
			Province: form.Provincia,
		},
		Items: make([]orderdomain.OrderItemRequest, 0, len(sum.Lines)),
	}
	for _, l := range sum.Lines {
		req.Items = append(req.Items, orderdomain.OrderItemRequest{
			Name:       l.Name,
			UnitAmount: l.Price,
			Quantity:   max(1, l.Quantity()),
		})
	}

	resp, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		return orderdomain.OrderResponse{}, err
	}
	s.log.Info("order confirmed",
		slog.String("order_id", resp.ID),
		slog.String("client", id.ClientID),
		slog.Int64("total", resp.TotalAmount))

	s.finish(ctx, id)
	return resp, nil
}

// Cancel abandons the checkout.
func (s *Service) Cancel(ctx context.Context, id handoff.Identity) error {
	if err := checkIdentity(id); err != nil {
		return err
	}
	s.finish(ctx, id)
	return nil
}

// Acknowledge closes the purchase confirmation.
func (s *Service) Acknowledge(ctx context.Context, id handoff.Identity) error {
	if err := checkIdentity(id); err != nil {
		return err
	}
	s.finish(ctx, id)
	return nil
}

// finish clears every hand-off and ambient key and the live cart so the next
// visit starts empty.
func (s *Service) finish(ctx context.Context, id handoff.Identity) {
	if s.cart != nil {
		s.cart.Empty(ctx, id)
	}
	ch := handoff.Bind(s.tab, s.durable, id)
	if err := ch.ClearAll(ctx); err != nil {
		s.log.Warn("clear cart channels failed", slog.Any("err", err))
	}

	s.mu.Lock()
	delete(s.summaries, id.TabID)
	s.mu.Unlock()
}

func checkIdentity(id handoff.Identity) error {
	if strings.TrimSpace(id.TabID) == "" || strings.TrimSpace(id.ClientID) == "" {
		return ErrInvalidInput
	}
	return nil
}
