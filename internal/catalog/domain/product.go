package domain

import "github.com/dwikikusuma/storefront/internal/normalize"

// Product is one storefront grid item. Price keeps the text shown on the
// page, which is what the cart parses when the item is added.
type Product struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Price string `yaml:"price" json:"price"`
	Image string `yaml:"image" json:"image"`
}

func (p Product) Amount() int64 {
	return normalize.ParsePrice(p.Price)
}
