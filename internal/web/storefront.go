package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/api"
	"github.com/MikeMC777/storefront/internal/catalog"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/submission"
)

func (a *app) landing(c *gin.Context) {
	ws := workspace(c)
	resp := gin.H{}
	if err := ws.Landing.Refresh(reqCtx(c)); err != nil {
		resp["error"] = "Some sections could not be loaded."
	}
	resp["sections"] = ws.Landing.Sections()
	c.JSON(http.StatusOK, resp)
}

// category shows a category page; ?q= runs a search scoped to it.
func (a *app) category(c *gin.Context) {
	ws := workspace(c)
	slug := c.Param("slug")

	var err error
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		err = ws.Category.Search(reqCtx(c), slug, q)
	} else {
		err = ws.Category.Browse(reqCtx(c), slug)
	}
	resp := gin.H{
		"slug":     slug,
		"category": catalog.Resolve(slug),
		"filter":   ws.Category.Filter(),
		"products": ws.Category.Products(),
	}
	if err != nil {
		resp["error"] = "Failed to load products."
	}
	c.JSON(http.StatusOK, resp)
}

func (a *app) productDetail(c *gin.Context) {
	ws := workspace(c)
	id := c.Param("id")

	p, err := ws.client.GetProduct(reqCtx(c), id)
	if err != nil {
		productError(c, err)
		return
	}
	g := product.NewGallery(*p)
	if s := c.Query("image"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			g.Select(i)
		}
	}
	pl := ws.placementFor(order.ProductRef{ID: id, Name: p.Name})
	c.JSON(http.StatusOK, gin.H{
		"product":       p,
		"images":        g.Images(),
		"selectedIndex": g.Index(),
		"selectedImage": g.Selected(),
		"order":         viewPlacement(pl),
	})
}

func productError(c *gin.Context, err error) {
	if errors.Is(err, api.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load product."})
}

func (a *app) placement(c *gin.Context) (*order.Placement, bool) {
	pl, err := workspace(c).Placement(reqCtx(c), c.Param("id"))
	if err != nil {
		productError(c, err)
		return nil, false
	}
	return pl, true
}

func (a *app) orderView(c *gin.Context) {
	pl, ok := a.placement(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewPlacement(pl))
}

func (a *app) orderOpen(c *gin.Context) {
	pl, ok := a.placement(c)
	if !ok {
		return
	}
	pl.Open()
	c.JSON(http.StatusOK, viewPlacement(pl))
}

func (a *app) orderSubmit(c *gin.Context) {
	pl, ok := a.placement(c)
	if !ok {
		return
	}
	if !pl.IsOpen() {
		c.JSON(http.StatusConflict, gin.H{"error": "Order form is not open."})
		return
	}
	var f order.Form
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order form"})
		return
	}
	pl.SetForm(f)

	_, err := pl.Submit(reqCtx(c))
	c.JSON(submitStatus(err, http.StatusCreated), viewPlacement(pl))
}

// submitStatus maps a submission outcome to a response code.
func submitStatus(err error, ok int) int {
	switch {
	case err == nil:
		return ok
	case errors.Is(err, product.ErrInvalid), errors.Is(err, order.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, submission.ErrBusy), errors.Is(err, submission.ErrClosed):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}
