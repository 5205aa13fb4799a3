package web

import (
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/submission"
)

type placementView struct {
	ProductID   string              `json:"productId"`
	ProductName string              `json:"productName"`
	Open        bool                `json:"open"`
	Form        order.Form          `json:"form"`
	Status      submission.Snapshot `json:"status"`
	Last        *order.Order        `json:"lastOrder,omitempty"`
}

func viewPlacement(p *order.Placement) placementView {
	ref := p.Product()
	return placementView{
		ProductID:   ref.ID,
		ProductName: ref.Name,
		Open:        p.IsOpen(),
		Form:        p.Form(),
		Status:      p.Status(),
		Last:        p.Last(),
	}
}

type editorView struct {
	ID     string              `json:"id,omitempty"`
	Form   product.Form        `json:"form"`
	Staged []string            `json:"stagedImages"`
	Status submission.Snapshot `json:"status"`
	Saved  *product.Product    `json:"saved,omitempty"`
}

func viewEditor(ed *product.Editor) editorView {
	f := ed.Form()
	staged := []string{}
	for _, a := range f.Images {
		staged = append(staged, a.Filename)
	}
	return editorView{
		ID:     ed.ID(),
		Form:   f,
		Staged: staged,
		Status: ed.Status(),
		Saved:  ed.Saved(),
	}
}
