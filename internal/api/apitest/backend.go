// Package apitest runs an in-memory storefront backend for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
)

const (
	Username = "admin"
	Password = "pw"
	Token    = "secret-token"
)

type failure struct {
	status  int
	message string
}

// Backend implements the storefront REST API in memory. Uploaded images are
// stored as "/uploads/<filename>" in upload order.
type Backend struct {
	mu           sync.Mutex
	requireToken bool
	products     map[string]product.Product
	orders       []order.Order
	nextID       int
	failures     map[string]failure
	requests     []string

	lastQuery   url.Values
	lastHeaders http.Header
	imageTypes  []string
}

func New() *Backend {
	return &Backend{products: map[string]product.Product{}, failures: map[string]failure{}}
}

// Start serves b on an httptest server closed with the test.
func (b *Backend) Start(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(b.Handler())
	t.Cleanup(srv.Close)
	return srv
}

// RequireToken makes admin routes answer 401 without the Bearer token.
func (b *Backend) RequireToken() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requireToken = true
}

func (b *Backend) Seed(ps ...product.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range ps {
		b.products[p.ID] = p
	}
}

func (b *Backend) SeedOrders(list ...order.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = append(b.orders, list...)
}

// Fail makes every "METHOD /path" request answer status with message until
// cleared with Fail(route, 0, "").
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, route)
		return
	}
	b.failures[route] = failure{status, message}
}

func (b *Backend) Products() []product.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]product.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) Orders() []order.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]order.Order(nil), b.orders...)
}

// Requests lists "METHOD /path" of every request served, in order.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *Backend) LastQuery() url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastQuery
}

func (b *Backend) LastHeaders() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastHeaders
}

// ImageTypes are the Content-Types of the images of the last product save.
func (b *Backend) ImageTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.imageTypes...)
}

func (b *Backend) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(b.record)

	r.GET("/api/products", b.listProducts)
	r.GET("/api/products/:id", b.getProduct)
	r.POST("/api/products", b.auth, b.saveProduct)
	r.PUT("/api/products/:id", b.auth, b.saveProduct)
	r.DELETE("/api/products/:id", b.auth, b.deleteProduct)
	r.GET("/api/orders", b.auth, b.listOrders)
	r.POST("/api/orders", b.createOrder)
	r.DELETE("/api/orders/:id", b.auth, b.deleteOrder)
	r.POST("/api/admin/login", b.login)
	return r
}

func (b *Backend) record(c *gin.Context) {
	route := c.Request.Method + " " + c.Request.URL.Path
	b.mu.Lock()
	b.requests = append(b.requests, route)
	b.lastHeaders = c.Request.Header.Clone()
	f, fail := b.failures[route]
	b.mu.Unlock()
	if fail {
		c.AbortWithStatusJSON(f.status, gin.H{"message": f.message})
		return
	}
	c.Next()
}

func (b *Backend) auth(c *gin.Context) {
	b.mu.Lock()
	required := b.requireToken
	b.mu.Unlock()
	if required && c.GetHeader("Authorization") != "Bearer "+Token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.Next()
}

func (b *Backend) listProducts(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastQuery = c.Request.URL.Query()

	var maxPrice *decimal.Decimal
	if v := c.Query("maxPrice"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad maxPrice"})
			return
		}
		maxPrice = &d
	}
	search := strings.ToLower(c.Query("search"))

	ids := make([]string, 0, len(b.products))
	for id := range b.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := []product.Product{}
	for _, id := range ids {
		p := b.products[id]
		if cat := c.Query("category"); cat != "" && string(p.Category) != cat {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if maxPrice != nil && p.Price.GreaterThan(*maxPrice) {
			continue
		}
		out = append(out, p)
	}
	c.JSON(http.StatusOK, out)
}

func (b *Backend) getProduct(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.products[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (b *Backend) saveProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart/form-data"})
		return
	}
	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be a number"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := c.Param("id")
	p, exists := b.products[id]
	if id != "" && !exists {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	if id == "" {
		b.nextID++
		id = fmt.Sprintf("p%d", b.nextID)
	}
	p.ID = id
	p.Name = c.PostForm("name")
	p.Price = price
	p.Size = c.PostForm("size")
	p.Category = product.Category(c.PostForm("category"))
	p.Material = c.PostForm("material")
	if files := form.File["images"]; len(files) > 0 {
		p.Images = nil
		b.imageTypes = nil
		for _, fh := range files {
			p.Images = append(p.Images, "/uploads/"+fh.Filename)
			b.imageTypes = append(b.imageTypes, fh.Header.Get("Content-Type"))
		}
	}
	b.products[id] = p
	status := http.StatusOK
	if c.Request.Method == http.MethodPost {
		status = http.StatusCreated
	}
	c.JSON(status, p)
}

func (b *Backend) deleteProduct(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.products[c.Param("id")]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	delete(b.products, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (b *Backend) listOrders(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]order.Order{}, b.orders...)
	c.JSON(http.StatusOK, out)
}

func (b *Backend) createOrder(c *gin.Context) {
	var in order.CreateOrderRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	o := order.Order{
		ID:   fmt.Sprintf("o%d", b.nextID),
		Name: in.Name, Phone: in.Phone, Address: in.Address,
		ProductID: in.ProductID, ProductName: in.ProductName,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	b.orders = append(b.orders, o)
	c.JSON(http.StatusCreated, o)
}

func (b *Backend) deleteOrder(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, o := range b.orders {
		if o.ID == c.Param("id") {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
}

func (b *Backend) login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = c.ShouldBindJSON(&in)
	if in.Username != Username || in.Password != Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": Token})
}
