// Package web serves the storefront and admin views as JSON over gin.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeMC777/storefront/internal/api"
	"github.com/MikeMC777/storefront/internal/httpx"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/submission"
)

const (
	visitorCookie = "sf_vid"
	workspaceKey  = "ws"
)

type app struct {
	reg    *Registry
	gate   *session.Gate
	log    *slog.Logger
	secure bool
}

// NewRouter wires every route. opts.API and opts.Store are required.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = submission.RealScheduler()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WorkspaceTTL <= 0 {
		opts.WorkspaceTTL = 30 * time.Minute
	}
	if opts.ProductRedirectDelay <= 0 {
		opts.ProductRedirectDelay = product.DefaultRedirectDelay
	}
	if opts.OrderResetDelay <= 0 {
		opts.OrderResetDelay = order.DefaultResetDelay
	}

	a := &app{
		reg:    NewRegistry(&opts),
		gate:   session.NewGate(opts.API, opts.Logger),
		log:    opts.Logger,
		secure: opts.SecureCookie,
	}

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(opts.Logger), httpx.Metrics())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v := r.Group("/", a.visitor())
	v.GET("", a.landing)
	v.GET("category/:slug", a.category)
	v.GET("product/:id", a.productDetail)
	v.GET("product/:id/order", a.orderView)
	v.POST("product/:id/order/open", a.orderOpen)
	v.POST("product/:id/order", a.orderSubmit)

	v.GET("admin/login", a.loginView)
	v.POST("admin/login", a.login)
	v.POST("admin/logout", a.logout)

	admin := v.Group("admin", a.requireAdmin())
	admin.GET("", a.dashboard)
	admin.GET("/add", a.addView)
	admin.POST("/add", a.addSubmit)
	admin.GET("/edit/:id", a.editView)
	admin.POST("/edit/:id", a.editSubmit)
	admin.POST("/products/:id/delete", a.productDeleteMark)
	admin.POST("/product-delete/confirm", a.productDeleteConfirm)
	admin.POST("/product-delete/cancel", a.productDeleteCancel)
	admin.GET("/orders", a.orders)
	admin.POST("/orders/:id/delete", a.orderDeleteMark)
	admin.POST("/order-delete/confirm", a.orderDeleteConfirm)
	admin.POST("/order-delete/cancel", a.orderDeleteCancel)

	return r
}

// visitor binds the request to the caller's workspace, issuing a visitor
// cookie on first contact.
func (a *app) visitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err != nil || !validVisitor(id) {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookie, id, 0, "/", "", a.secure || c.Request.TLS != nil, true)
		}
		c.Set(workspaceKey, a.reg.Get(id))
		c.Next()
	}
}

func validVisitor(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (a *app) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		next := session.HomePath
		if c.Request.Method == http.MethodGet {
			next = c.Request.URL.RequestURI()
		}
		d := a.gate.Check(reqCtx(c), workspace(c).creds, next)
		if !d.Allowed {
			c.Redirect(http.StatusSeeOther, d.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

func workspace(c *gin.Context) *Workspace {
	return c.MustGet(workspaceKey).(*Workspace)
}

// reqCtx carries the inbound request id to backend calls.
func reqCtx(c *gin.Context) context.Context {
	return api.ContextWithRequestID(c.Request.Context(), httpx.RID(c))
}
