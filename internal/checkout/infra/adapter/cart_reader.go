package adapter

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/view"
	"github.com/dwikikusuma/storefront/internal/handoff"
)

// CartDOMReader renders the tab's live storefront panel and scans it the
// way a checkout page sharing the document would.
type CartDOMReader struct {
	svc  *cartapp.Service
	page *url.URL
	log  *slog.Logger
}

func NewCartDOMReader(svc *cartapp.Service, page *url.URL, log *slog.Logger) *CartDOMReader {
	if log == nil {
		log = slog.Default()
	}
	return &CartDOMReader{svc: svc, page: page, log: log}
}

func (r *CartDOMReader) ReadDOM(ctx context.Context, id handoff.Identity) ([]handoff.Item, bool) {
	st, ok := r.svc.Lookup(id)
	if !ok {
		return nil, false
	}
	html, err := view.PanelHTML(st.Cart())
	if err != nil {
		r.log.Warn("render cart panel failed", slog.Any("err", err))
		return nil, false
	}
	items, err := ScanCartDOM(strings.NewReader(html), r.page)
	if err != nil {
		r.log.Warn("scan cart panel failed", slog.Any("err", err))
		return nil, false
	}
	return items, len(items) > 0
}
