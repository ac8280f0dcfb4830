package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/internal/normalize"
)

// Source names where a checkout cart was found.
type Source int

const (
	SourceNone Source = iota
	SourceTab
	SourceDurable
	SourceLegacy
	SourceDOM
)

func (s Source) String() string {
	switch s {
	case SourceTab:
		return "tab"
	case SourceDurable:
		return "durable"
	case SourceLegacy:
		return "legacy"
	case SourceDOM:
		return "dom"
	default:
		return "none"
	}
}

func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Resolution is the cart the checkout page starts from.
type Resolution struct {
	Items  []handoff.Item `json:"items"`
	Source Source         `json:"source"`
	// Key is the storage key the items were read from, if any.
	Key string `json:"key,omitempty"`
}

// EmptyMessage is shown instead of the summary rows when there is no cart.
const EmptyMessage = "No hay artículos en el carrito. El total se actualizará automáticamente si vienes desde la página del carrito."

var ErrLineIndex = errors.New("summary line out of range")

// Line is one editable row of the order summary. Input holds the raw
// quantity field value.
type Line struct {
	Index int
	Name  string
	Price int64
	Img   *string
	Input string
}

func (l Line) PriceDisplay() string {
	return normalize.FormatCurrency(l.Price)
}

// MaxQuantity is the largest quantity a row counts for.
const MaxQuantity = 999999

var maxQuantityDigits = len(strconv.Itoa(MaxQuantity))

// Quantity is what the row counts for in the total. An empty field counts
// as one; anything past MaxQuantity counts as MaxQuantity.
func (l Line) Quantity() int {
	if l.Input == "" {
		return 1
	}
	n, err := strconv.Atoi(l.Input)
	if errors.Is(err, strconv.ErrRange) || n > MaxQuantity {
		return MaxQuantity
	}
	if err != nil {
		return 1
	}
	return n
}

// Summary is the order summary of one checkout page.
type Summary struct {
	Lines []Line
}

var nonDigits = regexp.MustCompile(`\D`)

// Input applies a keystroke to a quantity field. Non-digits are removed and
// the value is kept as typed, zero included.
func (s *Summary) Input(idx int, raw string) (Line, error) {
	if idx < 0 || idx >= len(s.Lines) {
		return Line{}, ErrLineIndex
	}
	in := nonDigits.ReplaceAllString(raw, "")
	if len(in) > maxQuantityDigits {
		switch t := strings.TrimLeft(in, "0"); {
		case t == "":
			in = "0"
		case len(t) > maxQuantityDigits:
			in = strconv.Itoa(MaxQuantity)
		default:
			in = t
		}
	}
	s.Lines[idx].Input = in
	return s.Lines[idx], nil
}

// Change commits a quantity field. Values below one become one and values
// past MaxQuantity become MaxQuantity.
func (s *Summary) Change(idx int) (Line, error) {
	if idx < 0 || idx >= len(s.Lines) {
		return Line{}, ErrLineIndex
	}
	switch q := s.Lines[idx].Quantity(); {
	case q < 1:
		s.Lines[idx].Input = "1"
	case q == MaxQuantity:
		s.Lines[idx].Input = strconv.Itoa(MaxQuantity)
	}
	return s.Lines[idx], nil
}

func (s *Summary) Empty() bool {
	return len(s.Lines) == 0
}

// Amount is Σ quantity × price.
func (s *Summary) Amount() int64 {
	var sum int64
	for _, l := range s.Lines {
		sum += int64(l.Quantity()) * l.Price
	}
	return sum
}

func (s *Summary) Total() string {
	return normalize.FormatCurrency(s.Amount())
}

// Clone returns a copy detached from s.
func (s *Summary) Clone() *Summary {
	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	return &Summary{Lines: lines}
}
