package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MikeMC777/storefront/internal/product"
)

// SectionSize is how many products a landing section previews.
const SectionSize = 4

type Section struct {
	Category product.Category  `json:"category"`
	Title    string            `json:"title"`
	Slug     string            `json:"slug"`
	Products []product.Product `json:"products"`
}

var sectionTitles = map[product.Category]string{
	product.Saree:       "Handloom Saree Collection",
	product.SalwarKurti: "Everyday Ethnic Comfort",
	product.Nighty:      "Dreamy Night Dresses",
	product.Pickle:      "Homemade Pickles",
	product.Masala:      "Zero Preservative Masalas",
}

// SectionTitle is the landing heading of a category, the category name
// itself when it has none.
func SectionTitle(c product.Category) string {
	if t, ok := sectionTitles[c]; ok {
		return t
	}
	return string(c)
}

// Landing holds the per-category previews of the landing view.
type Landing struct {
	backend Backend
	log     *slog.Logger

	mu       sync.Mutex
	sections map[product.Category][]product.Product
}

func NewLanding(backend Backend, logger *slog.Logger) *Landing {
	if logger == nil {
		logger = slog.Default()
	}
	return &Landing{backend: backend, log: logger, sections: map[product.Category][]product.Product{}}
}

// Refresh fetches every category concurrently. A category that fails keeps
// its previous preview; the failures are joined into the returned error.
func (l *Landing) Refresh(ctx context.Context) error {
	cats := product.Categories()
	results := make([][]product.Product, len(cats))
	errs := make([]error, len(cats))

	var g errgroup.Group
	for i, cat := range cats {
		g.Go(func() error {
			f := Filter{Category: string(cat)}
			items, err := l.backend.ListProducts(ctx, f.Query())
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", cat, err)
				return nil
			}
			if len(items) > SectionSize {
				items = items[:SectionSize]
			}
			if items == nil {
				items = []product.Product{}
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, cat := range cats {
		if errs[i] != nil {
			l.log.Warn("landing section fetch failed, keeping last preview",
				slog.String("category", string(cat)),
				slog.String("error", errs[i].Error()))
			continue
		}
		l.sections[cat] = results[i]
	}
	return errors.Join(errs...)
}

// Sections lists the loaded previews in display order.
func (l *Landing) Sections() []Section {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := []Section{}
	for _, cat := range product.Categories() {
		items, ok := l.sections[cat]
		if !ok {
			continue
		}
		slug, _ := SlugFor(string(cat))
		out = append(out, Section{
			Category: cat,
			Title:    SectionTitle(cat),
			Slug:     slug,
			Products: append([]product.Product(nil), items...),
		})
	}
	return out
}
