package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/storefront/internal/metrics"
	"github.com/MikeMC777/storefront/internal/submission"
)

// DefaultResetDelay is how long the success or error banner stays before
// the placement form closes.
const DefaultResetDelay = 2 * time.Second

type Creator interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
}

type Options struct {
	ResetDelay time.Duration
	Scheduler  submission.Scheduler
	Logger     *slog.Logger
}

// Placement is the order form of one product detail view. Success and
// Error both fall back to Idle after ResetDelay, closing the form.
type Placement struct {
	backend Creator
	ref     ProductRef
	log     *slog.Logger
	tracker *submission.Tracker

	mu   sync.Mutex
	form Form
	open bool
	last *Order
}

func NewPlacement(backend Creator, ref ProductRef, opts Options) *Placement {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = DefaultResetDelay
	}
	p := &Placement{backend: backend, ref: ref, log: opts.Logger}
	p.tracker = submission.NewTracker(submission.Options{
		Delay:        opts.ResetDelay,
		ResetOnError: true,
		Scheduler:    opts.Scheduler,
		OnSettle: func(submission.Status) {
			p.mu.Lock()
			p.open = false
			p.mu.Unlock()
		},
	})
	return p
}

func (p *Placement) Product() ProductRef { return p.ref }

func (p *Placement) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
}

func (p *Placement) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *Placement) SetForm(f Form) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = f
}

func (p *Placement) Form() Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Last is the most recently placed order, or nil.
func (p *Placement) Last() *Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Placement) Status() submission.Snapshot { return p.tracker.Snapshot() }

// Close tears the view down: the reset timer is stopped and a response
// that arrives afterwards is discarded.
func (p *Placement) Close() { p.tracker.Close() }

// Submit places the order. Processing is entered before the backend call;
// a concurrent Submit gets submission.ErrBusy.
func (p *Placement) Submit(ctx context.Context) (*Order, error) {
	form := p.Form()
	if err := form.Validate(); err != nil {
		if rerr := p.tracker.Reject(err.Error()); rerr != nil {
			return nil, rerr
		}
		metrics.Submissions.WithLabelValues("order", "rejected").Inc()
		return nil, err
	}
	if err := p.tracker.Begin(); err != nil {
		return nil, err
	}

	created, err := p.backend.CreateOrder(ctx, CreateOrderRequest{
		Name:        strings.TrimSpace(form.Name),
		Phone:       strings.TrimSpace(form.Phone),
		Address:     strings.TrimSpace(form.Address),
		ProductID:   p.ref.ID,
		ProductName: p.ref.Name,
	})
	if err != nil {
		p.tracker.Fail("Failed to place order. Please try again.")
		metrics.Submissions.WithLabelValues("order", "error").Inc()
		p.log.Warn("place order failed", slog.String("product_id", p.ref.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("place order: %w", err)
	}

	rec := Order{}
	if created != nil {
		rec = *created
	}
	rec.ProductID, rec.ProductName = p.ref.ID, p.ref.Name

	p.mu.Lock()
	p.form = Form{}
	p.last = &rec
	p.mu.Unlock()

	metrics.Submissions.WithLabelValues("order", "success").Inc()
	if !p.tracker.Succeed("Order placed successfully!") {
		p.log.Debug("order confirmed after view closed", slog.String("order_id", rec.ID))
		return &rec, nil
	}
	p.log.Info("order placed", slog.String("order_id", rec.ID), slog.String("product_id", rec.ProductID))
	return &rec, nil
}
