package handoff

import (
	"context"
	"strconv"
	"time"

	"github.com/dwikikusuma/storefront/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Channels binds the snapshot keys to one tab's stores. Tab is the
// short-lived store; Durable outlives reloads.
type Channels struct {
	Tab     storage.Store
	Durable storage.Store
}

// WriteCheckout stores items under both hand-off keys. Both writes are
// attempted before it returns.
func (c Channels) WriteCheckout(ctx context.Context, items []Item) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	errTab := c.Tab.Set(ctx, KeyCheckout, raw)
	errDurable := c.Durable.Set(ctx, KeyCheckoutDurable, raw)
	if errTab != nil {
		return errTab
	}
	return errDurable
}

// WriteAmbient stores items as the ambient persisted cart.
func (c Channels) WriteAmbient(ctx context.Context, items []Item, now time.Time) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	if err := c.Durable.Set(ctx, KeyAmbient, raw); err != nil {
		return err
	}
	return c.Durable.Set(ctx, KeyAmbientTS, strconv.FormatInt(now.UnixMilli(), 10))
}

// ReadAmbient returns the ambient persisted cart if one parses.
func (c Channels) ReadAmbient(ctx context.Context) ([]Item, bool) {
	return read(ctx, c.Durable, KeyAmbient, Decode)
}

// ReadCheckout returns the tab hand-off if one parses.
func (c Channels) ReadCheckout(ctx context.Context) ([]Item, bool) {
	return read(ctx, c.Tab, KeyCheckout, Decode)
}

// ReadCheckoutDurable returns the durable hand-off if one parses.
func (c Channels) ReadCheckoutDurable(ctx context.Context) ([]Item, bool) {
	return read(ctx, c.Durable, KeyCheckoutDurable, Decode)
}

// ReadLegacy walks LegacyKeys and returns the first non-empty cart, together
// with the key it came from.
func (c Channels) ReadLegacy(ctx context.Context) ([]Item, string, bool) {
	for _, k := range LegacyKeys {
		if items, ok := read(ctx, c.Durable, k, DecodeLegacy); ok && len(items) > 0 {
			return items, k, true
		}
	}
	return nil, "", false
}

// ClearCheckout removes both hand-off keys.
func (c Channels) ClearCheckout(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Tab.Remove(ctx, KeyCheckout) })
	g.Go(func() error { return c.Durable.Remove(ctx, KeyCheckoutDurable) })
	return g.Wait()
}

// ClearAll removes the hand-off keys and the ambient cart.
func (c Channels) ClearAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.Tab.Remove(ctx, KeyCheckout) })
	g.Go(func() error {
		for _, k := range []string{KeyCheckoutDurable, KeyAmbient, KeyAmbientTS} {
			if err := c.Durable.Remove(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	return g.Wait()
}

func read(ctx context.Context, s storage.Store, key string, dec func(string) ([]Item, bool)) ([]Item, bool) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	return dec(raw)
}

// Identity names the browser tab and the browser client a request came from.
type Identity struct {
	TabID    string
	ClientID string
}

// Bind scopes the shared tab and durable stores to id.
func Bind(tab, durable storage.Store, id Identity) Channels {
	return Channels{
		Tab:     storage.Scoped(tab, "tab:"+id.TabID),
		Durable: storage.Scoped(durable, "client:"+id.ClientID),
	}
}
