package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeMC777/storefront/internal/submission"
)

type Deleter interface {
	DeleteProduct(ctx context.Context, id string) error
}

// Lister is the locally held product list a confirmed delete prunes.
type Lister interface {
	Remove(id string) bool
}

// Remover implements the two-step product delete: Mark, then Confirm or
// Cancel. The local list changes only after the backend confirms.
type Remover struct {
	backend Deleter
	list    Lister
	log     *slog.Logger
	pending submission.Pending[string]
}

func NewRemover(backend Deleter, list Lister, logger *slog.Logger) *Remover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Remover{backend: backend, list: list, log: logger}
}

func (r *Remover) Mark(id string) { r.pending.Mark(id) }
func (r *Remover) Cancel() { r.pending.Clear() }
func (r *Remover) Pending() (string, bool) { return r.pending.Get() }

// Confirm deletes the marked product. The marker is cleared whatever the
// outcome; on failure the list is left as it was.
func (r *Remover) Confirm(ctx context.Context) error {
	id, ok := r.pending.Get()
	if !ok {
		return submission.ErrNothingPending
	}
	defer r.pending.ClearIf(id)

	if err := r.backend.DeleteProduct(ctx, id); err != nil {
		r.log.Warn("delete product failed", slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	r.list.Remove(id)
	r.log.Info("product deleted", slog.String("id", id))
	return nil
}
