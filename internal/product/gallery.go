package product

// Gallery tracks which image the detail view displays. It starts on the
// default image.
type Gallery struct {
	images   []string
	selected int
}

func NewGallery(p Product) *Gallery {
	return &Gallery{images: append([]string(nil), p.Images...)}
}

func (g *Gallery) Images() []string { return append([]string(nil), g.images...) }

func (g *Gallery) Index() int { return g.selected }

// Selected returns the displayed image, or "" for a product without images.
func (g *Gallery) Selected() string {
	if len(g.images) == 0 {
		return ""
	}
	return g.images[g.selected]
}

// Select switches to image i. Out-of-range indexes are ignored.
func (g *Gallery) Select(i int) bool {
	if i < 0 || i >= len(g.images) {
		return false
	}
	g.selected = i
	return true
}
