package app

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/internal/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testID  = handoff.Identity{TabID: "tab-1", ClientID: "client-1"}
	testNow = time.UnixMilli(1700000000000)
)

type fakeDOM struct {
	items []handoff.Item
	calls int
}

func (f *fakeDOM) ReadDOM(context.Context, handoff.Identity) ([]handoff.Item, bool) {
	f.calls++
	return f.items, len(f.items) > 0
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func strptr(s string) *string { return &s }

type env struct {
	tab, durable *storage.Memory
	ch           handoff.Channels
	dom          *fakeDOM
	resolver     *Resolver
}

func newEnv(t *testing.T) env {
	t.Helper()
	page, err := url.Parse("http://shop.test/compra/compra.html")
	require.NoError(t, err)
	tab, durable := storage.NewMemory(0), storage.NewMemory(0)
	dom := &fakeDOM{}
	return env{
		tab:      tab,
		durable:  durable,
		ch:       handoff.Bind(tab, durable, testID),
		dom:      dom,
		resolver: NewResolver(tab, durable, dom, page, discard()),
	}
}

func TestResolveCartPriority(t *testing.T) {
	ctx := context.Background()

	t.Run("tab hand-off wins", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, e.ch.Tab.Set(ctx, handoff.KeyCheckout, `[{"name":"A","qty":1,"price":10,"img":null}]`))
		require.NoError(t, e.ch.Durable.Set(ctx, handoff.KeyCheckoutDurable, `[{"name":"B","qty":1,"price":10}]`))
		require.NoError(t, e.ch.Durable.Set(ctx, "cart", `[{"name":"C","qty":1,"price":10}]`))
		e.dom.items = []handoff.Item{{Name: "D", Qty: 1}}

		res := e.resolver.ResolveCart(ctx, testID)
		assert.Equal(t, domain.SourceTab, res.Source)
		assert.Equal(t, handoff.KeyCheckout, res.Key)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "A", res.Items[0].Name)
		assert.Zero(t, e.dom.calls)
	})

	t.Run("empty tab array falls through to durable", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, e.ch.Tab.Set(ctx, handoff.KeyCheckout, `[]`))
		require.NoError(t, e.ch.Durable.Set(ctx, handoff.KeyCheckoutDurable, `[{"name":"B","qty":2,"price":10}]`))

		res := e.resolver.ResolveCart(ctx, testID)
		assert.Equal(t, domain.SourceDurable, res.Source)
		assert.Equal(t, 2, res.Items[0].Qty)
	})

	t.Run("malformed falls through to legacy", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, e.ch.Tab.Set(ctx, handoff.KeyCheckout, `{not json`))
		require.NoError(t, e.ch.Durable.Set(ctx, handoff.KeyCheckoutDurable, `{"items":[{"name":"X"}]}`))
		require.NoError(t, e.ch.Durable.Set(ctx, "shoppingCart", `{"items":[{"name":"Legacy","quantity":4,"price":"$ 1.500"}]}`))

		res := e.resolver.ResolveCart(ctx, testID)
		assert.Equal(t, domain.SourceLegacy, res.Source)
		assert.Equal(t, "shoppingCart", res.Key)
		want := []handoff.Item{{Name: "Legacy", Qty: 4, Price: 1500}}
		if diff := cmp.Diff(want, res.Items); diff != "" {
			t.Fatalf("legacy mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dom fallback", func(t *testing.T) {
		e := newEnv(t)
		e.dom.items = []handoff.Item{{Name: "D", Qty: 1, Price: 5, Img: strptr("http://shop.test/img/d.png")}}

		res := e.resolver.ResolveCart(ctx, testID)
		assert.Equal(t, domain.SourceDOM, res.Source)
		require.NotNil(t, res.Items[0].Img)
		assert.Equal(t, "img/d.png", *res.Items[0].Img)
	})

	t.Run("nothing found", func(t *testing.T) {
		e := newEnv(t)
		res := e.resolver.ResolveCart(ctx, testID)
		assert.Equal(t, domain.SourceNone, res.Source)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("other tabs are invisible", func(t *testing.T) {
		e := newEnv(t)
		require.NoError(t, e.ch.Tab.Set(ctx, handoff.KeyCheckout, `[{"name":"A","qty":1,"price":10}]`))
		res := e.resolver.ResolveCart(ctx, handoff.Identity{TabID: "tab-2", ClientID: "client-2"})
		assert.Equal(t, domain.SourceNone, res.Source)
	})

	t.Run("unavailable storage degrades to nothing", func(t *testing.T) {
		log := discard()
		r := NewResolver(storage.Safe(storage.Disabled{}, "tab", log), storage.Safe(storage.Disabled{}, "durable", log), nil, nil, log)
		res := r.ResolveCart(ctx, testID)
		assert.Equal(t, domain.SourceNone, res.Source)
	})
}

func TestHandoffRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	items := []handoff.Item{
		{Name: "Guantes", Qty: 2, Price: 12000, Img: strptr("img/guantes.png")},
		{Name: "Vendas", Qty: 1, Price: 500},
	}
	require.NoError(t, e.ch.WriteCheckout(ctx, items))

	res := e.resolver.ResolveCart(ctx, testID)
	got := make([]handoff.Item, len(res.Items))
	for i, it := range res.Items {
		got[i] = handoff.Item{Name: it.Name, Qty: it.Qty, Price: it.Price}
	}
	want := []handoff.Item{{Name: "Guantes", Qty: 2, Price: 12000}, {Name: "Vendas", Qty: 1, Price: 500}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSummary(t *testing.T) {
	s := RenderSummary([]handoff.Item{
		{Name: "Guantes", Qty: 2, Price: 12000},
		{Name: "Vendas", Qty: 1, Price: 500},
	})
	require.Len(t, s.Lines, 2)
	assert.Equal(t, "2", s.Lines[0].Input)
	assert.Equal(t, 1, s.Lines[1].Index)
	assert.Equal(t, "24 500 $", s.Total())

	t.Run("live input", func(t *testing.T) {
		s := s.Clone()
		l, err := s.Input(0, "3a")
		require.NoError(t, err)
		assert.Equal(t, "3", l.Input)
		assert.Equal(t, "36 500 $", s.Total())

		_, err = s.Input(0, "")
		require.NoError(t, err)
		assert.Equal(t, "12 500 $", s.Total(), "empty counts as one")

		_, err = s.Input(0, "0")
		require.NoError(t, err)
		assert.Equal(t, "500 $", s.Total())
	})

	t.Run("change clamps", func(t *testing.T) {
		s := s.Clone()
		_, err := s.Input(1, "0")
		require.NoError(t, err)
		l, err := s.Change(1)
		require.NoError(t, err)
		assert.Equal(t, "1", l.Input)
		assert.Equal(t, "24 500 $", s.Total())
	})

	t.Run("oversized input is capped", func(t *testing.T) {
		s := s.Clone()
		l, err := s.Input(1, "99999999999999999999")
		require.NoError(t, err)
		assert.Equal(t, "999999", l.Input)
		assert.Equal(t, int64(2*12000+domain.MaxQuantity*500), s.Amount())

		l, err = s.Input(1, "0000000000042")
		require.NoError(t, err)
		assert.Equal(t, "42", l.Input)

		s.Lines[1].Input = "99999999999999999999"
		assert.Equal(t, domain.MaxQuantity, s.Lines[1].Quantity(), "overflow never counts as one")
		l, err = s.Change(1)
		require.NoError(t, err)
		assert.Equal(t, "999999", l.Input)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := s.Input(5, "1")
		assert.ErrorIs(t, err, domain.ErrLineIndex)
		_, err = s.Change(-1)
		assert.ErrorIs(t, err, domain.ErrLineIndex)
	})

	t.Run("empty", func(t *testing.T) {
		e := RenderSummary(nil)
		assert.True(t, e.Empty())
		assert.Equal(t, "0 $", e.Total())
	})
}
