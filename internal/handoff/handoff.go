// Package handoff defines the cart snapshot exchanged between the storefront
// and the checkout page and the storage keys it travels under.
package handoff

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dwikikusuma/storefront/internal/normalize"
)

const (
	// KeyCheckout is the tab-scoped hand-off written right before navigating
	// to checkout.
	KeyCheckout = "checkout_cart"
	// KeyCheckoutDurable mirrors KeyCheckout in durable storage so the
	// checkout page survives a hard reload.
	KeyCheckoutDurable = "carrito_for_checkout"
	// KeyAmbient holds the cart when ambient persistence is enabled.
	KeyAmbient = "carrito"
	// KeyAmbientTS is the unix-millisecond time of the last ambient write.
	KeyAmbientTS = "carrito_ts"
)

// LegacyKeys are the durable keys older integrations stored the cart under,
// in lookup order.
var LegacyKeys = []string{KeyAmbient, "cart", "shoppingCart", "cartItems"}

// DefaultName replaces a missing item name.
const DefaultName = "Producto"

// Item is one line of a snapshot.
type Item struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price int64   `json:"price"`
	Img   *string `json:"img"`
}

// Encode serializes items as a JSON array; nil encodes as [].
func Encode(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a snapshot that must be a JSON array. ok is false for
// malformed JSON and for any other JSON value.
func Decode(raw string) ([]Item, bool) {
	return decode(raw, false)
}

// DecodeLegacy additionally accepts an object carrying the array in an
// "items" field.
func DecodeLegacy(raw string) ([]Item, bool) {
	return decode(raw, true)
}

func decode(raw string, wrapped bool) ([]Item, bool) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil, false
	}

	var elems []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &elems); err != nil {
			return nil, false
		}
	case '{':
		if !wrapped {
			return nil, false
		}
		var w struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, false
		}
		if err := json.Unmarshal(bytes.TrimSpace(w.Items), &elems); err != nil || elems == nil {
			return nil, false
		}
	default:
		return nil, false
	}

	items := make([]Item, 0, len(elems))
	for _, e := range elems {
		it, ok := decodeItem(e)
		if !ok {
			continue
		}
		items = append(items, it)
	}
	return items, true
}

type rawItem struct {
	Name     any `json:"name"`
	Qty      any `json:"qty"`
	Quantity any `json:"quantity"`
	Price    any `json:"price"`
	Img      any `json:"img"`
	Image    any `json:"image"`
}

func decodeItem(data json.RawMessage) (Item, bool) {
	if len(data) == 0 || data[0] != '{' {
		return Item{}, false
	}
	var r rawItem
	if err := json.Unmarshal(data, &r); err != nil {
		return Item{}, false
	}

	it := Item{
		Name:  DefaultName,
		Qty:   coerceQty(r.Qty, r.Quantity),
		Price: coercePrice(r.Price),
	}
	if s, ok := r.Name.(string); ok && strings.TrimSpace(s) != "" {
		it.Name = strings.TrimSpace(s)
	}
	if s, ok := r.Img.(string); ok && s != "" {
		it.Img = &s
	} else if s, ok := r.Image.(string); ok && s != "" {
		it.Img = &s
	}
	return it, true
}

func coerceQty(vals ...any) int {
	for _, v := range vals {
		switch q := v.(type) {
		case float64:
			if math.IsNaN(q) || math.IsInf(q, 0) {
				return 1
			}
			return clampQty(int(q))
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(q))
			if err != nil {
				return 1
			}
			return clampQty(n)
		}
	}
	return 1
}

func clampQty(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func coercePrice(v any) int64 {
	switch p := v.(type) {
	case float64:
		return normalize.RoundPrice(p)
	case string:
		return normalize.ParsePrice(p)
	}
	return 0
}
