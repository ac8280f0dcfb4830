// Package view renders the storefront page and the cart panel. Rendering is a
// pure function of a cart snapshot and the product list.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

//go:embed templates/*.html
var files embed.FS

var tmpl = template.Must(template.New("cart").Funcs(template.FuncMap{
	"img": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
}).ParseFS(files, "templates/*.html"))

// Page is everything the storefront template needs.
type Page struct {
	Title    string
	Products []catalog.Product
	Cart     domain.Cart
}

// Storefront writes the full storefront page.
func Storefront(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Tienda"
	}
	return tmpl.ExecuteTemplate(w, "storefront", p)
}

// Panel writes only the cart panel.
func Panel(w io.Writer, c domain.Cart) error {
	return tmpl.ExecuteTemplate(w, "panel", c)
}

// PanelHTML returns the cart panel markup.
func PanelHTML(c domain.Cart) (string, error) {
	var buf bytes.Buffer
	if err := Panel(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}
