package app

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/internal/normalize"
	"github.com/google/uuid"
)

// Options configures every Store a Service opens.
type Options struct {
	// Persist enables ambient persistence of the cart in durable storage.
	Persist bool
	// PageURL is the storefront page address image sources are resolved
	// against.
	PageURL *url.URL

	Now    func() time.Time
	NewID  func() string
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Store is the cart of one storefront tab. The line list is the source of
// truth; the panel markup and every snapshot are derived from it.
type Store struct {
	mu    sync.Mutex
	ch    handoff.Channels
	opts  Options
	lines []domain.Line
	panel domain.Panel
}

// NewStore returns an empty, hidden cart writing through ch.
func NewStore(ch handoff.Channels, opts Options) *Store {
	return &Store{ch: ch, opts: opts.withDefaults()}
}

// AddItem adds one unit of the named product. A line whose trimmed name
// matches case-insensitively gets its quantity bumped instead of a new line.
func (s *Store) AddItem(ctx context.Context, name, priceText, imageSrc string) domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = handoff.DefaultName
	}

	line := s.merge(domain.Line{
		Name:  name,
		Qty:   1,
		Price: normalize.ParsePrice(priceText),
		Img:   normalize.NormalizeImagePath(imageSrc, s.opts.PageURL),
	})
	s.panel.Visible = true
	s.persistLocked(ctx)
	return line
}

// merge adds l's quantity to an existing line with the same name or appends
// it as a new line. Callers hold s.mu.
func (s *Store) merge(l domain.Line) domain.Line {
	for i := range s.lines {
		if strings.EqualFold(strings.TrimSpace(s.lines[i].Name), strings.TrimSpace(l.Name)) {
			s.lines[i].Qty += l.Qty
			return s.lines[i]
		}
	}
	l.ID = s.opts.NewID()
	s.lines = append(s.lines, l)
	return l
}

// AdjustQuantity moves a line's quantity by delta, which must be +1 or -1.
// The quantity never drops below 1.
func (s *Store) AdjustQuantity(ctx context.Context, lineID string, delta int) (domain.Line, error) {
	if delta != 1 && delta != -1 {
		return domain.Line{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(lineID)
	if i < 0 {
		return domain.Line{}, ErrLineNotFound
	}
	s.lines[i].Qty = max(1, s.lines[i].Qty+delta)
	s.persistLocked(ctx)
	return s.lines[i], nil
}

var nonQtyChars = regexp.MustCompile(`[^\d-]`)

// SetQuantity applies a typed quantity value. Anything that does not read as
// a positive integer becomes 1.
func (s *Store) SetQuantity(ctx context.Context, lineID, raw string) (domain.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(lineID)
	if i < 0 {
		return domain.Line{}, ErrLineNotFound
	}
	n, err := strconv.Atoi(nonQtyChars.ReplaceAllString(raw, ""))
	if err != nil {
		n = 1
	}
	s.lines[i].Qty = max(1, n)
	s.persistLocked(ctx)
	return s.lines[i], nil
}

// RemoveItem deletes a line. Removing the last line hides the panel.
func (s *Store) RemoveItem(ctx context.Context, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(lineID)
	if i < 0 {
		return ErrLineNotFound
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	if len(s.lines) == 0 {
		s.lines = nil
		s.panel.Visible = false
	}
	s.persistLocked(ctx)
	return nil
}

// Clear empties the cart and hides the panel.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.panel.Visible = false
	s.persistLocked(ctx)
}

// ComputeTotal sums price times quantity over every line. It has no side
// effects.
func (s *Store) ComputeTotal() domain.Total {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

func (s *Store) totalLocked() domain.Total {
	var sum int64
	for _, l := range s.lines {
		sum += l.Subtotal()
	}
	return domain.NewTotal(sum)
}

// PrepareCheckoutHandoff writes the current lines to both hand-off channels
// and returns what it wrote. It runs whether or not ambient persistence is
// enabled and returns only once both writes were attempted, so a redirect
// issued afterwards cannot overtake it.
func (s *Store) PrepareCheckoutHandoff(ctx context.Context) []handoff.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.snapshotLocked()
	if err := s.ch.WriteCheckout(ctx, items); err != nil {
		s.opts.Logger.Warn("checkout hand-off write failed", slog.Any("err", err))
	}
	return items
}

// RestoreFromPersistentStore rebuilds the lines from the ambient persisted
// cart. It does nothing unless ambient persistence is enabled, and stored data
// that is missing or does not parse as an array is ignored.
func (s *Store) RestoreFromPersistentStore(ctx context.Context) bool {
	if !s.opts.Persist {
		return false
	}
	items, ok := s.ch.ReadAmbient(ctx)
	if !ok || len(items) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	for _, it := range items {
		s.merge(domain.Line{Name: it.Name, Qty: it.Qty, Price: it.Price, Img: it.Img})
	}
	s.panel.Visible = true
	s.persistLocked(ctx)
	return true
}

// Snapshot returns the lines in hand-off form.
func (s *Store) Snapshot() []handoff.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []handoff.Item {
	items := make([]handoff.Item, 0, len(s.lines))
	for _, l := range s.lines {
		items = append(items, handoff.Item{Name: l.Name, Qty: l.Qty, Price: l.Price, Img: l.Img})
	}
	return items
}

// Cart returns a copy of the current state.
func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.Line, len(s.lines))
	copy(lines, s.lines)
	return domain.Cart{Lines: lines, Total: s.totalLocked(), Panel: s.panel}
}

func (s *Store) Lines() []domain.Line {
	return s.Cart().Lines
}

func (s *Store) Panel() domain.Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

func (s *Store) indexLocked(lineID string) int {
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) {
	if !s.opts.Persist {
		return
	}
	if err := s.ch.WriteAmbient(ctx, s.snapshotLocked(), s.opts.Now()); err != nil {
		s.opts.Logger.Warn("ambient cart write failed", slog.Any("err", err))
	}
}
