package app

import (
	"context"
	"fmt"
)

// Action names a cart control.
type Action string

const (
	ActionAdd       Action = "add"
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
	ActionQuantity  Action = "quantity"
	ActionRemove    Action = "remove"
	ActionClear     Action = "clear"
	ActionCheckout  Action = "checkout"
)

// Command carries the arguments of an action. Fields an action does not use
// are ignored.
type Command struct {
	LineID string
	Name   string
	Price  string
	Image  string
	Value  string
}

type Handler func(ctx context.Context, s *Store, cmd Command) error

// Dispatcher maps each Action to its handler.
type Dispatcher struct {
	handlers map[Action]Handler
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{handlers: make(map[Action]Handler)}
	d.Register(ActionAdd, func(ctx context.Context, s *Store, cmd Command) error {
		s.AddItem(ctx, cmd.Name, cmd.Price, cmd.Image)
		return nil
	})
	d.Register(ActionIncrement, func(ctx context.Context, s *Store, cmd Command) error {
		_, err := s.AdjustQuantity(ctx, cmd.LineID, 1)
		return err
	})
	d.Register(ActionDecrement, func(ctx context.Context, s *Store, cmd Command) error {
		_, err := s.AdjustQuantity(ctx, cmd.LineID, -1)
		return err
	})
	d.Register(ActionQuantity, func(ctx context.Context, s *Store, cmd Command) error {
		_, err := s.SetQuantity(ctx, cmd.LineID, cmd.Value)
		return err
	})
	d.Register(ActionRemove, func(ctx context.Context, s *Store, cmd Command) error {
		return s.RemoveItem(ctx, cmd.LineID)
	})
	d.Register(ActionClear, func(ctx context.Context, s *Store, _ Command) error {
		s.Clear(ctx)
		return s.ch.ClearCheckout(ctx)
	})
	d.Register(ActionCheckout, func(ctx context.Context, s *Store, _ Command) error {
		s.PrepareCheckoutHandoff(ctx)
		return nil
	})
	return d
}

// Register installs or replaces the handler for a.
func (d *Dispatcher) Register(a Action, h Handler) {
	d.handlers[a] = h
}

// Dispatch runs the handler registered for a.
func (d *Dispatcher) Dispatch(ctx context.Context, s *Store, a Action, cmd Command) error {
	h, ok := d.handlers[a]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	return h(ctx, s, cmd)
}
