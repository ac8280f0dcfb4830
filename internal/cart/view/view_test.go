package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestPanel(t *testing.T) {
	t.Run("hidden when empty", func(t *testing.T) {
		html, err := PanelHTML(domain.Cart{Total: domain.NewTotal(0)})
		require.NoError(t, err)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		panel := doc.Find(".carrito")
		assert.True(t, panel.HasClass("carrito--hidden"))
		aria, _ := panel.Attr("aria-hidden")
		assert.Equal(t, "true", aria)
		assert.Equal(t, 0, doc.Find(".carrito-item").Length())
		assert.Equal(t, "0 $", doc.Find(".carrito-precio-total").Text())
	})

	t.Run("renders lines", func(t *testing.T) {
		c := domain.Cart{
			Lines: []domain.Line{
				{ID: "a", Name: "Guantes <rojos>", Qty: 2, Price: 12000, Img: strptr("img/g.png")},
				{ID: "b", Name: "Vendas", Qty: 1, Price: 500},
			},
			Total: domain.NewTotal(24500),
			Panel: domain.Panel{Visible: true},
		}
		html, err := PanelHTML(c)
		require.NoError(t, err)
		assert.NotContains(t, html, "<rojos>", "names are escaped")

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		panel := doc.Find(".carrito")
		assert.True(t, panel.HasClass("carrito--visible"))
		aria, _ := panel.Attr("aria-hidden")
		assert.Equal(t, "false", aria)

		items := doc.Find(".carrito-items .carrito-item")
		require.Equal(t, 2, items.Length())
		first := items.First()
		assert.Equal(t, "Guantes <rojos>", first.Find(".carrito-item-titulo").Text())
		qty, _ := first.Find(".carrito-item-cantidad").Attr("value")
		assert.Equal(t, "2", qty)
		assert.Equal(t, "12 000 $", first.Find(".carrito-item-precio").Text())
		src, _ := first.Find("img").Attr("src")
		assert.Equal(t, "img/g.png", src)
		assert.Equal(t, "24 500 $", doc.Find(".carrito-precio-total").Text())
	})
}

func TestStorefront(t *testing.T) {
	var buf bytes.Buffer
	err := Storefront(&buf, Page{
		Products: []catalog.Product{{ID: "p1", Name: "Casco", Price: "$ 45.500", Image: "img/casco.png"}},
		Cart:     domain.Cart{Total: domain.NewTotal(0)},
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "Tienda", doc.Find("title").Text())
	item := doc.Find(".item")
	require.Equal(t, 1, item.Length())
	assert.Equal(t, "Casco", item.Find(".titulo-item").Text())
	assert.Equal(t, "$ 45.500", item.Find(".precio-item").Text())
	src, _ := item.Find(".img-item").Attr("src")
	assert.Equal(t, "img/casco.png", src)
	assert.Equal(t, 1, item.Find(".boton-item").Length())
	assert.Equal(t, 1, doc.Find(".carrito").Length())
}
