package adapter

import (
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/internal/normalize"
)

// ScanCartDOM reads the cart rows out of storefront panel markup. Each
// .carrito-item under .carrito-items becomes one item; a page without the
// container yields nil.
func ScanCartDOM(r io.Reader, page *url.URL) ([]handoff.Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	container := doc.Find(".carrito-items").First()
	if container.Length() == 0 {
		return nil, nil
	}

	var items []handoff.Item
	container.Find(".carrito-item").Each(func(_ int, n *goquery.Selection) {
		items = append(items, handoff.Item{
			Name:  itemName(n),
			Qty:   itemQty(n),
			Price: normalize.ParsePrice(itemPriceText(n)),
			Img:   itemImage(n, page),
		})
	})
	return items, nil
}

func itemName(n *goquery.Selection) string {
	var name string
	if t := n.Find(".carrito-item-titulo").First(); t.Length() > 0 {
		name = t.Text()
	} else if img := n.Find("img").First(); img.Length() > 0 {
		name = img.AttrOr("alt", "")
	} else {
		name = n.AttrOr("data-name", "")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return handoff.DefaultName
	}
	return name
}

func itemQty(n *goquery.Selection) int {
	q := n.Find(".carrito-item-cantidad").First()
	if q.Length() == 0 {
		q = n.Find(`input[type="number"]`).First()
	}
	if q.Length() == 0 {
		return 1
	}
	raw := q.AttrOr("value", "")
	if raw == "" {
		raw = q.AttrOr("data-qty", "")
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

func itemPriceText(n *goquery.Selection) string {
	if p := n.Find(".carrito-item-precio").First(); p.Length() > 0 {
		return p.Text()
	}
	return n.AttrOr("data-price", "")
}

func itemImage(n *goquery.Selection, page *url.URL) *string {
	src, ok := n.Find("img").First().Attr("src")
	if !ok {
		return nil
	}
	return normalize.NormalizeImagePath(src, page)
}
