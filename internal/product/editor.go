package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeMC777/storefront/internal/metrics"
	"github.com/MikeMC777/storefront/internal/submission"
)

// DefaultRedirectDelay is how long the success banner stays before the
// editor navigates away.
const DefaultRedirectDelay = 1500 * time.Millisecond

// Backend is the part of the product API the editor needs.
type Backend interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, p Payload) (*Product, error)
	UpdateProduct(ctx context.Context, id string, p Payload) (*Product, error)
}

// userMessager is implemented by backend errors that carry a message meant
// for the operator.
type userMessager interface {
	UserMessage() string
}

type EditorOptions struct {
	RedirectDelay time.Duration
	Scheduler     submission.Scheduler
	// OnDone navigates away once a success has been shown for RedirectDelay.
	OnDone func()
	Logger *slog.Logger
}

// Editor drives the add-product and edit-product forms.
type Editor struct {
	backend Backend
	id      string
	log     *slog.Logger
	tracker *submission.Tracker

	mu    sync.Mutex
	form  Form
	saved *Product
}

// NewCreator returns an editor that inserts a new product.
func NewCreator(backend Backend, opts EditorOptions) *Editor {
	return newEditor(backend, "", opts)
}

// NewEditor returns an editor that updates product id. Call Load to
// pre-populate the form.
func NewEditor(backend Backend, id string, opts EditorOptions) *Editor {
	return newEditor(backend, id, opts)
}

func newEditor(backend Backend, id string, opts EditorOptions) *Editor {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	e := &Editor{backend: backend, id: id, log: opts.Logger}
	e.tracker = submission.NewTracker(submission.Options{
		Delay:     opts.RedirectDelay,
		Scheduler: opts.Scheduler,
		OnSettle: func(from submission.Status) {
			if from == submission.Success && opts.OnDone != nil {
				opts.OnDone()
			}
		},
	})
	return e
}

func (e *Editor) ID() string { return e.id }
func (e *Editor) creating() bool { return e.id == "" }

// Load fetches the product being edited and copies its scalar fields into
// the form. Existing images are not fetched; staged images start empty.
func (e *Editor) Load(ctx context.Context) error {
	if e.creating() {
		return nil
	}
	p, err := e.backend.GetProduct(ctx, e.id)
	if err != nil {
		e.log.Warn("load product for edit failed", slog.String("id", e.id), slog.String("error", err.Error()))
		return fmt.Errorf("load product %s: %w", e.id, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = Form{
		Name:     p.Name,
		Price:    p.Price.String(),
		Size:     p.Size,
		Category: string(p.Category),
		Material: p.Material,
	}
	return nil
}

// Form returns a copy of the current form state.
func (e *Editor) Form() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.clone()
}

// SetFields replaces the scalar fields and keeps the staged images.
func (e *Editor) SetFields(f Form) {
	e.mu.Lock()
	defer e.mu.Unlock()
	images := e.form.Images
	e.form = f
	e.form.Images = images
}

// Stage replaces the staged image selection, keeping the given order.
func (e *Editor) Stage(images ...Attachment) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form.Images = append([]Attachment(nil), images...)
}

func (e *Editor) Status() submission.Snapshot { return e.tracker.Snapshot() }

// Saved is the product returned by the last successful submission.
func (e *Editor) Saved() *Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saved
}

// Close stops a pending navigation; the view is gone.
func (e *Editor) Close() { e.tracker.Close() }

// Submit validates the form and sends it. Validation failures set Error
// without calling the backend; a second call while one is in flight
// returns submission.ErrBusy.
func (e *Editor) Submit(ctx context.Context) (*Product, error) {
	kind := "product_update"
	if e.creating() {
		kind = "product_create"
	}

	form := e.Form()
	payload, err := form.Validate(e.creating())
	if err != nil {
		if rerr := e.tracker.Reject(err.Error()); rerr != nil {
			return nil, rerr
		}
		metrics.Submissions.WithLabelValues(kind, "rejected").Inc()
		return nil, err
	}
	if err := e.tracker.Begin(); err != nil {
		return nil, err
	}

	var saved *Product
	if e.creating() {
		saved, err = e.backend.CreateProduct(ctx, payload)
	} else {
		saved, err = e.backend.UpdateProduct(ctx, e.id, payload)
	}
	if err != nil {
		e.tracker.Fail(e.failureMessage(err))
		metrics.Submissions.WithLabelValues(kind, "error").Inc()
		e.log.Warn("product submission failed", slog.String("kind", kind), slog.String("id", e.id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("save product: %w", err)
	}

	e.mu.Lock()
	if e.creating() {
		e.form = Form{}
	} else {
		e.form.Images = nil
	}
	e.saved = saved
	e.mu.Unlock()

	msg := "Product updated successfully!"
	if e.creating() {
		msg = "Product added successfully!"
	}
	e.tracker.Succeed(msg)
	metrics.Submissions.WithLabelValues(kind, "success").Inc()
	if saved != nil {
		e.log.Info("product saved", slog.String("kind", kind), slog.String("id", saved.ID))
	}
	return saved, nil
}

func (e *Editor) failureMessage(err error) string {
	var m userMessager
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}
	if e.creating() {
		return "Failed to add product. Please try again."
	}
	return "Failed to update product. Please try again."
}
