package order

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MikeMC777/storefront/internal/submission"
)

type BoardBackend interface {
	ListOrders(ctx context.Context) ([]Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// Board is the admin orders view: the last loaded list plus a two-step
// delete.
type Board struct {
	backend BoardBackend
	log     *slog.Logger
	pending submission.Pending[string]

	mu     sync.Mutex
	orders []Order
	loaded bool
}

func NewBoard(backend BoardBackend, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{backend: backend, log: logger}
}

// Load replaces the list. On failure the previous list is kept.
func (b *Board) Load(ctx context.Context) error {
	orders, err := b.backend.ListOrders(ctx)
	if err != nil {
		b.log.Warn("list orders failed", slog.String("error", err.Error()))
		return fmt.Errorf("list orders: %w", err)
	}
	if orders == nil {
		orders = []Order{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = orders
	b.loaded = true
	return nil
}

func (b *Board) Orders() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Order(nil), b.orders...)
}

func (b *Board) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

func (b *Board) Mark(id string) { b.pending.Mark(id) }
func (b *Board) Cancel() { b.pending.Clear() }
func (b *Board) Pending() (string, bool) { return b.pending.Get() }

// Confirm deletes the marked order, removing it locally only once the
// backend has confirmed. The marker is cleared either way.
func (b *Board) Confirm(ctx context.Context) error {
	id, ok := b.pending.Get()
	if !ok {
		return submission.ErrNothingPending
	}
	defer b.pending.ClearIf(id)

	if err := b.backend.DeleteOrder(ctx, id); err != nil {
		b.log.Warn("delete order failed", slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.orders {
		if o.ID == id {
			b.orders = append(b.orders[:i:i], b.orders[i+1:]...)
			break
		}
	}
	b.log.Info("order deleted", slog.String("id", id))
	return nil
}
