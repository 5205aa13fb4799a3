package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront/internal/api"
	"github.com/MikeMC777/storefront/internal/api/apitest"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, bool, error) {
	return string(s), s != "", nil
}

func newTestClient(t *testing.T) (*api.Client, *apitest.Backend) {
	t.Helper()
	be := apitest.New()
	srv := be.Start(t)
	return api.New(srv.URL+"/", 2*time.Second), be
}

func jpeg(name string) product.Attachment {
	return product.Attachment{Filename: name, ContentType: "image/jpeg", Data: []byte("data-" + name)}
}

func TestCreateThenGetKeepsImageOrder(t *testing.T) {
	c, be := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateProduct(ctx, product.Payload{
		Name:     "Silk Saree",
		Price:    decimal.RequireFromString("1499.50"),
		Category: product.Saree,
		Material: "Silk",
		Images:   []product.Attachment{jpeg("a.jpg"), jpeg("b.jpg"), {Filename: "c.png", Data: []byte("png")}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := c.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.png"}, got.Images)
	assert.Equal(t, "/uploads/a.jpg", got.DefaultImage())
	assert.True(t, got.Price.Equal(decimal.RequireFromString("1499.5")))
	assert.Equal(t, product.Saree, got.Category)
	assert.Equal(t, []string{"image/jpeg", "image/jpeg", "application/octet-stream"}, be.ImageTypes())
}

func TestUpdateWithoutImagesKeepsExisting(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateProduct(ctx, product.Payload{
		Name: "Nighty", Price: decimal.NewFromInt(300), Category: product.Nighty,
		Images: []product.Attachment{jpeg("n.jpg")},
	})
	require.NoError(t, err)

	updated, err := c.UpdateProduct(ctx, created.ID, product.Payload{
		Name: "Cotton Nighty", Price: decimal.NewFromInt(350), Category: product.Nighty,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cotton Nighty", updated.Name)
	assert.Equal(t, []string{"/uploads/n.jpg"}, updated.Images)
}

func TestListProductsSendsOnlyGivenParams(t *testing.T) {
	c, be := newTestClient(t)
	be.Seed(
		product.Product{ID: "1", Name: "Silk Saree", Category: product.Saree, Price: decimal.NewFromInt(400)},
		product.Product{ID: "2", Name: "Zari Saree", Category: product.Saree, Price: decimal.NewFromInt(900)},
	)

	list, err := c.ListProducts(context.Background(), url.Values{"category": {"Saree"}, "maxPrice": {"500"}})
	require.NoError(t, err)
	q := be.LastQuery()
	assert.Equal(t, "Saree", q.Get("category"))
	assert.Equal(t, "500", q.Get("maxPrice"))
	assert.False(t, q.Has("search"))
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)

	list, err = c.ListProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Empty(t, be.LastQuery())
}

func TestBackendErrors(t *testing.T) {
	c, be := newTestClient(t)
	ctx := context.Background()

	_, err := c.GetProduct(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotFound))
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Product not found", apiErr.UserMessage())

	err = c.DeleteProduct(ctx, "missing")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "not found", apiErr.Message)

	be.Fail("POST /api/products", http.StatusConflict, "Product name already exists")
	_, err = c.CreateProduct(ctx, product.Payload{Name: "x", Category: product.Saree})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Product name already exists", apiErr.UserMessage())
	assert.False(t, errors.Is(err, api.ErrNotFound))
}

func TestErrorWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	}))
	defer srv.Close()

	_, err := api.New(srv.URL, time.Second).ListOrders(context.Background())
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.UserMessage())
	assert.EqualError(t, apiErr, "backend returned HTTP 502")
}

func TestHeaders(t *testing.T) {
	c, be := newTestClient(t)
	be.RequireToken()

	_, err := c.ListOrders(context.Background())
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.NotEmpty(t, be.LastHeaders().Get("X-Request-ID"))
	assert.Empty(t, be.LastHeaders().Get("Authorization"))

	admin := c.WithCredentials(staticToken(apitest.Token))
	ctx := api.ContextWithRequestID(context.Background(), "rid-42")
	_, err = admin.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+apitest.Token, be.LastHeaders().Get("Authorization"))
	assert.Equal(t, "rid-42", be.LastHeaders().Get("X-Request-ID"))

	// an absent credential sends no header
	_, err = c.WithCredentials(staticToken("")).ListOrders(context.Background())
	require.Error(t, err)
	assert.Empty(t, be.LastHeaders().Get("Authorization"))
}

func TestOrders(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	o, err := c.CreateOrder(ctx, order.CreateOrderRequest{
		Name: "Asha", Phone: "9876543210", Address: "12 MG Road",
		ProductID: "p1", ProductName: "Silk Saree",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "Silk Saree", o.ProductName)

	list, err := c.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].ID)
	assert.Equal(t, 2024, list[0].CreatedAt.Year())

	require.NoError(t, c.DeleteOrder(ctx, o.ID))
	list, err = c.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t)

	token, err := c.Login(context.Background(), apitest.Username, apitest.Password)
	require.NoError(t, err)
	assert.Equal(t, apitest.Token, token)

	_, err = c.Login(context.Background(), "admin", "nope")
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
