package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/storefront/internal/api"
	"github.com/MikeMC777/storefront/internal/catalog"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/submission"
)

func (a *app) loginView(c *gin.Context) {
	next := session.SafeNext(c.Query("next"))
	if a.gate.Check(reqCtx(c), workspace(c).creds, next).Allowed {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next": next})
}

func (a *app) login(c *gin.Context) {
	next, err := a.gate.Login(reqCtx(c), workspace(c).creds,
		c.PostForm("username"), c.PostForm("password"), c.PostForm("next"))
	switch {
	case errors.Is(err, session.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": session.InvalidCredentialsMessage})
	case errors.Is(err, session.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": session.InvalidCredentialsMessage})
	case err != nil:
		a.log.Error("admin login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please try again."})
	default:
		c.Redirect(http.StatusSeeOther, next)
	}
}

func (a *app) logout(c *gin.Context) {
	to, err := a.gate.Logout(reqCtx(c), workspace(c).creds)
	if err != nil {
		a.log.Error("admin logout failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed."})
		return
	}
	c.Redirect(http.StatusSeeOther, to)
}

// dashboard lists every product, narrowed locally by ?category= and ?q=.
func (a *app) dashboard(c *gin.Context) {
	ws := workspace(c)
	err := ws.Admin.Fetch(reqCtx(c), nil)

	all := ws.Admin.Products()
	cat := c.DefaultQuery("category", catalog.AllCategories)
	q := c.Query("q")
	pending, _ := ws.Remover.Pending()
	resp := gin.H{
		"products":      catalog.FilterLocal(all, cat, q),
		"total":         len(all),
		"categories":    catalog.CategoriesOf(all),
		"category":      cat,
		"q":             q,
		"pendingDelete": pending,
	}
	if err != nil {
		resp["error"] = "Failed to load products."
	}
	c.JSON(http.StatusOK, resp)
}

func (a *app) addView(c *gin.Context) {
	ws := workspace(c)
	ed, done := ws.Editor("")
	if done {
		c.Redirect(http.StatusSeeOther, session.HomePath)
		return
	}
	if ed == nil {
		ed = ws.OpenEditor("")
	}
	c.JSON(http.StatusOK, viewEditor(ed))
}

func (a *app) addSubmit(c *gin.Context) {
	ws := workspace(c)
	ed, _ := ws.Editor("")
	if ed == nil {
		ed = ws.OpenEditor("")
	}
	a.submitEditor(c, ed, http.StatusCreated)
}

// editView enters the edit form. Each entry reloads the product unless a
// save is in flight or waiting to redirect.
func (a *app) editView(c *gin.Context) {
	ws := workspace(c)
	id := c.Param("id")
	ed, done := ws.Editor(id)
	if done {
		c.Redirect(http.StatusSeeOther, session.HomePath)
		return
	}
	if ed != nil && saving(ed) {
		c.JSON(http.StatusOK, viewEditor(ed))
		return
	}
	ed = ws.OpenEditor(id)
	if err := ed.Load(reqCtx(c)); err != nil {
		ws.DropEditor(ed)
		productError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewEditor(ed))
}

func saving(ed *product.Editor) bool {
	st := ed.Status().Status
	return st == submission.Processing || st == submission.Success
}

func (a *app) editSubmit(c *gin.Context) {
	ws := workspace(c)
	id := c.Param("id")
	ed, _ := ws.Editor(id)
	if ed == nil {
		ed = ws.OpenEditor(id)
	}
	a.submitEditor(c, ed, http.StatusOK)
}

// submitEditor applies the posted fields, stages any uploaded images and
// submits. Without uploads the previously staged images are kept.
func (a *app) submitEditor(c *gin.Context, ed *product.Editor, ok int) {
	var f product.Form
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product form"})
		return
	}
	ed.SetFields(f)

	files, err := uploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(files) > 0 {
		ed.Stage(files...)
	}

	_, err = ed.Submit(reqCtx(c))
	c.JSON(submitStatus(err, ok), viewEditor(ed))
}

func uploads(c *gin.Context) ([]product.Attachment, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	var out []product.Attachment
	for _, fh := range form.File[api.ImagesField] {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		out = append(out, product.Attachment{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return out, nil
}

func (a *app) productDeleteMark(c *gin.Context) {
	ws := workspace(c)
	ws.Remover.Mark(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"pendingDelete": c.Param("id")})
}

func (a *app) productDeleteConfirm(c *gin.Context) {
	ws := workspace(c)
	id, _ := ws.Remover.Pending()
	err := ws.Remover.Confirm(reqCtx(c))
	switch {
	case errors.Is(err, submission.ErrNothingPending):
		c.JSON(http.StatusConflict, gin.H{"error": "No product selected for deletion."})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete product.", "products": ws.Admin.Products()})
	default:
		c.JSON(http.StatusOK, gin.H{"deleted": id, "products": ws.Admin.Products()})
	}
}

func (a *app) productDeleteCancel(c *gin.Context) {
	workspace(c).Remover.Cancel()
	c.JSON(http.StatusOK, gin.H{"pendingDelete": ""})
}

func (a *app) orders(c *gin.Context) {
	ws := workspace(c)
	err := ws.Board.Load(reqCtx(c))
	pending, _ := ws.Board.Pending()
	resp := gin.H{"orders": ws.Board.Orders(), "pendingDelete": pending}
	if err != nil {
		resp["error"] = "Failed to load orders."
	}
	c.JSON(http.StatusOK, resp)
}

func (a *app) orderDeleteMark(c *gin.Context) {
	workspace(c).Board.Mark(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"pendingDelete": c.Param("id")})
}

func (a *app) orderDeleteConfirm(c *gin.Context) {
	ws := workspace(c)
	id, _ := ws.Board.Pending()
	err := ws.Board.Confirm(reqCtx(c))
	switch {
	case errors.Is(err, submission.ErrNothingPending):
		c.JSON(http.StatusConflict, gin.H{"error": "No order selected for deletion."})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete order.", "orders": ws.Board.Orders()})
	default:
		c.JSON(http.StatusOK, gin.H{"deleted": id, "orders": ws.Board.Orders()})
	}
}

func (a *app) orderDeleteCancel(c *gin.Context) {
	workspace(c).Board.Cancel()
	c.JSON(http.StatusOK, gin.H{"pendingDelete": ""})
}
