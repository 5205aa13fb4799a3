package catalog

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront/internal/product"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

type categoryBackend struct {
	mu     sync.Mutex
	byCat  map[string][]product.Product
	failOn map[string]bool
}

func (b *categoryBackend) ListProducts(ctx context.Context, q url.Values) ([]product.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cat := q.Get("category")
	if b.failOn[cat] {
		return nil, errors.New("backend down")
	}
	return b.byCat[cat], nil
}

func TestLandingRefresh(t *testing.T) {
	be := &categoryBackend{byCat: map[string][]product.Product{
		"Saree":  items("s1", "s2", "s3", "s4", "s5", "s6"),
		"Pickle": items("p1"),
	}}
	l := NewLanding(be, nil)

	require.NoError(t, l.Refresh(context.Background()))
	sections := l.Sections()
	require.Len(t, sections, len(product.Categories()))

	assert.Equal(t, product.Saree, sections[0].Category)
	assert.Equal(t, "sarees", sections[0].Slug)
	assert.Equal(t, "Handloom Saree Collection", sections[0].Title)
	assert.Equal(t, "Homemade Pickles", sections[3].Title)
	assert.Len(t, sections[0].Products, SectionSize)
	assert.Equal(t, "s1", sections[0].Products[0].ID)

	for _, s := range sections {
		switch s.Category {
		case product.Pickle:
			assert.Len(t, s.Products, 1)
		case product.Saree:
		default:
			assert.Empty(t, s.Products)
		}
	}
}

func TestLandingFailedSectionKeepsPreview(t *testing.T) {
	be := &categoryBackend{byCat: map[string][]product.Product{
		"Nighty": items("n1", "n2"),
	}}
	l := NewLanding(be, nil)
	require.NoError(t, l.Refresh(context.Background()))

	be.mu.Lock()
	be.byCat["Nighty"] = items("x")
	be.failOn = map[string]bool{"Nighty": true}
	be.mu.Unlock()

	err := l.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nighty")

	for _, s := range l.Sections() {
		if s.Category == product.Nighty {
			assert.Len(t, s.Products, 2)
		}
	}
}

func TestLandingSectionsBeforeRefresh(t *testing.T) {
	l := NewLanding(&categoryBackend{}, nil)
	assert.Empty(t, l.Sections())
}

func TestSectionTitle(t *testing.T) {
	assert.Equal(t, "Zero Preservative Masalas", SectionTitle(product.Masala))
	assert.Equal(t, "Everyday Ethnic Comfort", SectionTitle(product.SalwarKurti))
	assert.Equal(t, "Shoes", SectionTitle(product.Category("Shoes")))
}
