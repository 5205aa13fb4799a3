package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/MikeMC777/storefront/internal/metrics"
	"github.com/MikeMC777/storefront/internal/product"
)

// Backend lists products for a GET /api/products query.
type Backend interface {
	ListProducts(ctx context.Context, query url.Values) ([]product.Product, error)
}

// Coordinator owns one view's product list. Every fetch supersedes the
// previous one: fetches are numbered, and a response is applied only if no
// later fetch was issued in the meantime.
type Coordinator struct {
	backend Backend
	source  string
	log     *slog.Logger

	mu       sync.Mutex
	issued   uint64
	applied  uint64
	products []product.Product
	filter   *Filter
}

// NewCoordinator returns a coordinator; source labels its logs and metrics
// ("category", "admin", ...).
func NewCoordinator(backend Backend, source string, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{backend: backend, source: source, log: logger}
}

// Browse loads a category page: scoped to the category, no name filter.
func (c *Coordinator) Browse(ctx context.Context, slug string) error {
	return c.Fetch(ctx, &Filter{Category: Resolve(slug)})
}

// Search runs an explicit search within the category of slug.
func (c *Coordinator) Search(ctx context.Context, slug, text string) error {
	f := Compile(text, Resolve(slug))
	return c.Fetch(ctx, &f)
}

// Fetch requests the products matching f, or the full catalog when f is
// nil. A failure leaves the held list unchanged and is returned as a
// non-fatal error.
func (c *Coordinator) Fetch(ctx context.Context, f *Filter) error {
	c.mu.Lock()
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	var q url.Values
	if f != nil {
		q = f.Query()
	}
	items, err := c.backend.ListProducts(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		metrics.CatalogFetches.WithLabelValues(c.source, "failed").Inc()
		c.log.Warn("catalog fetch failed, keeping last results",
			slog.String("source", c.source),
			slog.Uint64("seq", seq),
			slog.String("query", q.Encode()),
			slog.String("error", err.Error()))
		return fmt.Errorf("fetch products: %w", err)
	}
	if seq != c.issued {
		metrics.CatalogFetches.WithLabelValues(c.source, "superseded").Inc()
		c.log.Debug("dropping superseded catalog response",
			slog.String("source", c.source),
			slog.Uint64("seq", seq),
			slog.Uint64("latest", c.issued))
		return nil
	}

	if items == nil {
		items = []product.Product{}
	}
	c.products = items
	c.applied = seq
	if f != nil {
		cp := *f
		c.filter = &cp
	} else {
		c.filter = nil
	}
	metrics.CatalogFetches.WithLabelValues(c.source, "applied").Inc()
	return nil
}

// Products returns a copy of the held list.
func (c *Coordinator) Products() []product.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]product.Product(nil), c.products...)
}

// Filter is the filter of the held list; nil for the full catalog.
func (c *Coordinator) Filter() *Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filter == nil {
		return nil
	}
	cp := *c.filter
	return &cp
}

// Loaded reports whether any fetch has been applied yet.
func (c *Coordinator) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied > 0
}

// Remove drops product id from the held list. Callers use it only after the
// backend confirmed the delete.
func (c *Coordinator) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.products {
		if p.ID == id {
			c.products = append(c.products[:i:i], c.products[i+1:]...)
			return true
		}
	}
	return false
}
