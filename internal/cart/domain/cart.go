package domain

import "github.com/dwikikusuma/storefront/internal/normalize"

// Line is one product row of the cart panel.
type Line struct {
	ID    string
	Name  string
	Qty   int
	Price int64
	Img   *string
}

func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Qty)
}

// PriceDisplay is the unit price as rendered in the panel.
func (l Line) PriceDisplay() string {
	return normalize.FormatCurrency(l.Price)
}

// Total is the computed cart total.
type Total struct {
	Amount  int64
	Display string
}

func NewTotal(amount int64) Total {
	return Total{Amount: amount, Display: normalize.FormatCurrency(amount)}
}

// Panel is the visibility of the cart panel. The CSS class and the
// aria-hidden attribute are both derived from Visible so they cannot disagree.
type Panel struct {
	Visible bool
}

func (p Panel) Class() string {
	if p.Visible {
		return "carrito--visible"
	}
	return "carrito--hidden"
}

func (p Panel) AriaHidden() string {
	if p.Visible {
		return "false"
	}
	return "true"
}

// Cart is a read-only view of a store.
type Cart struct {
	Lines []Line
	Total Total
	Panel Panel
}
