package app

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/internal/normalize"
	"github.com/dwikikusuma/storefront/internal/storage"
)

// Resolver finds the cart a checkout page should show.
type Resolver struct {
	tab     storage.Store
	durable storage.Store
	dom     DOMReader
	page    *url.URL
	log     *slog.Logger
}

// NewResolver reads from the shared tab and durable stores. dom may be nil.
// page is the checkout page address images are resolved against.
func NewResolver(tab, durable storage.Store, dom DOMReader, page *url.URL, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{tab: tab, durable: durable, dom: dom, page: page, log: log}
}

// ResolveCart tries the tab hand-off, the durable hand-off, the legacy keys
// and the live storefront panel, in that order. The first non-empty cart
// wins. Finding nothing is not an error.
func (r *Resolver) ResolveCart(ctx context.Context, id handoff.Identity) domain.Resolution {
	ch := handoff.Bind(r.tab, r.durable, id)

	res := r.resolve(ctx, ch, id)
	for i := range res.Items {
		if img := res.Items[i].Img; img != nil {
			res.Items[i].Img = normalize.NormalizeImagePath(*img, r.page)
		}
	}
	r.log.Debug("checkout cart resolved",
		slog.String("tab", id.TabID),
		slog.String("source", res.Source.String()),
		slog.Int("items", len(res.Items)))
	return res
}

func (r *Resolver) resolve(ctx context.Context, ch handoff.Channels, id handoff.Identity) domain.Resolution {
	if items, ok := ch.ReadCheckout(ctx); ok && len(items) > 0 {
		return domain.Resolution{Items: items, Source: domain.SourceTab, Key: handoff.KeyCheckout}
	}
	if items, ok := ch.ReadCheckoutDurable(ctx); ok && len(items) > 0 {
		return domain.Resolution{Items: items, Source: domain.SourceDurable, Key: handoff.KeyCheckoutDurable}
	}
	if items, key, ok := ch.ReadLegacy(ctx); ok {
		return domain.Resolution{Items: items, Source: domain.SourceLegacy, Key: key}
	}
	if r.dom != nil {
		if items, ok := r.dom.ReadDOM(ctx, id); ok && len(items) > 0 {
			return domain.Resolution{Items: items, Source: domain.SourceDOM}
		}
	}
	return domain.Resolution{Items: []handoff.Item{}, Source: domain.SourceNone}
}

// RenderSummary builds the order summary rows, seeding every quantity field
// from the snapshot.
func RenderSummary(items []handoff.Item) *domain.Summary {
	s := &domain.Summary{Lines: make([]domain.Line, 0, len(items))}
	for i, it := range items {
		s.Lines = append(s.Lines, domain.Line{
			Index: i,
			Name:  it.Name,
			Price: it.Price,
			Img:   it.Img,
			Input: strconv.Itoa(max(1, it.Qty)),
		})
	}
	return s
}
