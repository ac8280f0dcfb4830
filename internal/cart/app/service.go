package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/handoff"
	"github.com/dwikikusuma/storefront/internal/storage"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrLineNotFound  = errors.New("cart line not found")
	ErrUnknownAction = errors.New("unknown cart action")
)

// Service keeps one Store per open storefront tab.
type Service struct {
	tab     storage.Store
	durable storage.Store
	opts    Options

	mu     sync.Mutex
	stores map[string]*tabStore
}

type tabStore struct {
	store *Store
	seen  time.Time
}

// NewService builds stores on top of the shared tab and durable stores.
// Both are expected to be wrapped with storage.Safe.
func NewService(tab, durable storage.Store, opts Options) *Service {
	return &Service{
		tab:     tab,
		durable: durable,
		opts:    opts.withDefaults(),
		stores:  make(map[string]*tabStore),
	}
}

// Channels returns the hand-off channels of id.
func (s *Service) Channels(id handoff.Identity) handoff.Channels {
	return handoff.Bind(s.tab, s.durable, id)
}

// Open returns the tab's store, creating it on first use. A new store starts
// the way LoadPage leaves it and restores the persisted cart when ambient
// persistence is on.
func (s *Service) Open(ctx context.Context, id handoff.Identity) (*Store, error) {
	st, _, err := s.open(ctx, id)
	return st, err
}

// LoadPage is a storefront page load. It opens the tab's store and drops
// every hand-off written by an earlier checkout navigation, so checkout only
// sees what the next navigation writes. With ambient persistence off every
// stored cart is dropped as well.
func (s *Service) LoadPage(ctx context.Context, id handoff.Identity) (*Store, error) {
	st, created, err := s.open(ctx, id)
	if err != nil || created {
		return st, err
	}
	s.resetChannels(ctx, s.Channels(id))
	return st, nil
}

func (s *Service) open(ctx context.Context, id handoff.Identity) (*Store, bool, error) {
	if strings.TrimSpace(id.TabID) == "" || strings.TrimSpace(id.ClientID) == "" {
		return nil, false, ErrInvalidInput
	}

	s.mu.Lock()
	if ts, ok := s.stores[id.TabID]; ok {
		ts.seen = s.opts.Now()
		s.mu.Unlock()
		return ts.store, false, nil
	}
	ch := s.Channels(id)
	st := NewStore(ch, s.opts)
	s.stores[id.TabID] = &tabStore{store: st, seen: s.opts.Now()}
	s.mu.Unlock()

	s.resetChannels(ctx, ch)
	if st.RestoreFromPersistentStore(ctx) {
		s.opts.Logger.Debug("cart restored", slog.String("tab", id.TabID), slog.Int("lines", len(st.Lines())))
	}
	return st, true, nil
}

func (s *Service) resetChannels(ctx context.Context, ch handoff.Channels) {
	if s.opts.Persist {
		_ = ch.ClearCheckout(ctx)
	} else {
		_ = ch.ClearAll(ctx)
	}
}

// Lookup returns the tab's store without creating one.
func (s *Service) Lookup(id handoff.Identity) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.stores[id.TabID]
	if !ok {
		return nil, false
	}
	ts.seen = s.opts.Now()
	return ts.store, true
}

// Close forgets the tab's store.
func (s *Service) Close(id handoff.Identity) {
	s.mu.Lock()
	delete(s.stores, id.TabID)
	s.mu.Unlock()
}

// Sweep forgets the stores of tabs last used before cutoff and reports how
// many it dropped.
func (s *Service) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for tab, ts := range s.stores {
		if ts.seen.Before(cutoff) {
			delete(s.stores, tab)
			n++
		}
	}
	return n
}

// Empty clears the tab's live cart if one is open.
func (s *Service) Empty(ctx context.Context, id handoff.Identity) {
	if st, ok := s.Lookup(id); ok {
		st.Clear(ctx)
	}
}
