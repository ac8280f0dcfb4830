// Package bootstrap builds the services shared by the storefront, the API
// server and the CLI from a config.Config.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/yamlfile"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	"github.com/dwikikusuma/storefront/internal/order/infra/memory"
	"github.com/dwikikusuma/storefront/internal/storage"
	"github.com/dwikikusuma/storefront/pkg/config"
)

// Stores are the tab-scoped and durable key/value stores. Tab and Durable
// are wrapped with storage.Safe.
type Stores struct {
	Tab     storage.Store
	Durable storage.Store

	tab   *storage.Memory
	ping  func(context.Context) error
	close func() error
}

// OpenStores opens the durable store named by cfg.StorageDriver.
func OpenStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*Stores, error) {
	s := &Stores{
		tab:   storage.NewMemory(cfg.TabTTL),
		ping:  func(context.Context) error { return nil },
		close: func() error { return nil },
	}

	var durable storage.Store
	switch cfg.StorageDriver {
	case config.DriverMemory:
		durable = storage.NewMemory(0)
	case config.DriverSQLite:
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		durable, s.ping, s.close = db, db.Ping, db.Close
	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres driver")
		}
		db, err := storage.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		durable, s.ping, s.close = db, db.Ping, db.Close
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	s.Tab = storage.Safe(s.tab, "tab", log)
	s.Durable = storage.Safe(durable, "durable", log)
	log.Info("storage ready", slog.String("driver", cfg.StorageDriver), slog.Duration("tab_ttl", cfg.TabTTL))
	return s, nil
}

func (s *Stores) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Stores) Close() error { return s.close() }

// App holds every service of the storefront.
type App struct {
	Stores     *Stores
	Cart       *cartapp.Service
	Dispatcher *cartapp.Dispatcher
	Catalog    *catalogapp.Service
	Orders     *orderapp.Service
	Checkout   *checkoutapp.Service

	StorefrontURL *url.URL
	CheckoutURL   *url.URL

	idle time.Duration
	log  *slog.Logger
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	origin, err := url.Parse(cfg.PageOrigin)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return nil, fmt.Errorf("invalid PAGE_ORIGIN %q", cfg.PageOrigin)
	}
	storefrontURL := origin.JoinPath("/")
	checkoutURL := origin.JoinPath("/checkout")

	products, err := yamlfile.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	stores, err := OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	cartSvc := cartapp.NewService(stores.Tab, stores.Durable, cartapp.Options{
		Persist: cfg.CartPersist,
		PageURL: storefrontURL,
		Logger:  log,
	})
	orderSvc := orderapp.NewService(memory.NewOrderRepo())
	resolver := checkoutapp.NewResolver(stores.Tab, stores.Durable,
		adapter.NewCartDOMReader(cartSvc, checkoutURL, log), checkoutURL, log)

	return &App{
		Stores:        stores,
		Cart:          cartSvc,
		Dispatcher:    cartapp.NewDispatcher(),
		Catalog:       catalogapp.NewService(products),
		Orders:        orderSvc,
		Checkout:      checkoutapp.NewService(resolver, orderSvc, cartSvc, log),
		StorefrontURL: storefrontURL,
		CheckoutURL:   checkoutURL,
		idle:          cfg.TabTTL,
		log:           log,
	}, nil
}

// Sweep expires what abandoned tabs left behind: tab storage entries past
// their TTL, and the cart stores and checkout summaries of tabs idle for
// longer than the TTL. A zero TTL keeps the registries.
func (a *App) Sweep(now time.Time) {
	n := a.Stores.tab.Sweep()
	carts, pages := 0, 0
	if a.idle > 0 {
		cutoff := now.Add(-a.idle)
		carts = a.Cart.Sweep(cutoff)
		pages = a.Checkout.Sweep(cutoff)
	}
	if n+carts+pages > 0 {
		a.log.Debug("idle tabs swept",
			slog.Int("entries", n), slog.Int("carts", carts), slog.Int("summaries", pages))
	}
}

// RunSweeper calls Sweep every interval until ctx ends.
func (a *App) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			a.Sweep(now)
		}
	}
}

func (a *App) Close() error {
	return a.Stores.Close()
}
