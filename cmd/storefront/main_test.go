package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storefront/internal/api/apitest"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/session"
)

type cli struct {
	t   *testing.T
	be  *apitest.Backend
	url string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	be := apitest.New()
	be.RequireToken()
	be.Seed(
		product.Product{ID: "p1", Name: "Silk Saree", Price: decimal.NewFromInt(1200), Category: product.Saree,
			Images: []string{"/uploads/a.jpg", "/uploads/b.jpg"}},
		product.Product{ID: "p2", Name: "Cotton Saree", Price: decimal.NewFromInt(450), Category: product.Saree},
		product.Product{ID: "p3", Name: "Mango Pickle", Price: decimal.NewFromInt(180), Category: product.Pickle},
	)
	srv := be.Start(t)
	t.Setenv("STOREFRONT_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials.yaml"))
	t.Setenv("STOREFRONT_LOG_LEVEL", "error")
	return &cli{t: t, be: be, url: srv.URL}
}

func (c *cli) run(stdin string, args ...string) (string, string, error) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--api", c.url}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	out, _, err := c.run("", "version")
	require.NoError(t, err)
	assert.Equal(t, "storefront dev\n", out)
}

func TestBrowseWithPriceSearch(t *testing.T) {
	c := newCLI(t)
	out, _, err := c.run("", "--json", "browse", "sarees", "-s", "Saree below 500")
	require.NoError(t, err)

	var got []product.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)

	q := c.be.LastQuery()
	assert.Equal(t, "Saree", q.Get("category"))
	assert.Equal(t, "500", q.Get("maxPrice"))
	assert.Equal(t, "saree", q.Get("search"))
}

func TestHomeListsSections(t *testing.T) {
	c := newCLI(t)
	out, _, err := c.run("", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "Handloom Saree Collection  (storefront browse sarees)")
	assert.Contains(t, out, "Mango Pickle")
	assert.Contains(t, out, "(no products)")
}

func TestProductImageSelection(t *testing.T) {
	c := newCLI(t)
	out, _, err := c.run("", "product", "p1", "--image", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1200.00")
	assert.Contains(t, out, "* [1] /uploads/b.jpg")
	assert.Contains(t, out, "  [0] /uploads/a.jpg")

	_, _, err = c.run("", "product", "p1", "--image", "5")
	assert.ErrorContains(t, err, "out of range")
}

func TestOrder(t *testing.T) {
	c := newCLI(t)
	out, _, err := c.run("", "order", "p3", "--name", "Asha", "--phone", "98765", "--address", "12 MG Road")
	require.NoError(t, err)
	assert.Contains(t, out, "Order placed successfully!")

	orders := c.be.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "Mango Pickle", orders[0].ProductName)
	assert.Equal(t, "p3", orders[0].ProductID)
}

func TestOrderValidation(t *testing.T) {
	c := newCLI(t)
	_, errOut, err := c.run("", "order", "p3", "--name", "Asha")
	require.ErrorIs(t, err, order.ErrInvalid)
	assert.Contains(t, errOut, "phone, address required")
	assert.Empty(t, c.be.Orders())
}

func TestAdminPromptsForLoginAndResumes(t *testing.T) {
	c := newCLI(t)
	c.be.SeedOrders(order.Order{ID: "o1", Name: "Ravi", ProductName: "Silk Saree"})

	out, errOut, err := c.run("admin\npw\n", "admin", "orders")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Login required")
	assert.Contains(t, out, "Logged in.")
	assert.Contains(t, out, "Ravi")

	// the credential was stored; no prompt the second time
	out, errOut, err = c.run("", "admin", "orders")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "Login required")
	assert.Contains(t, out, "o1")
}

func TestAdminLoginRejected(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("", "admin", "login", "-u", "admin", "-p", "nope")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestAdminLogout(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("", "admin", "login", "-u", apitest.Username, "-p", apitest.Password)
	require.NoError(t, err)
	out, _, err := c.run("", "admin", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, errOut, err := c.run("", "admin", "products")
	assert.Error(t, err, "no input to log in with")
	assert.Contains(t, errOut, "Login required")
}

func TestAdminProductsFilter(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("", "admin", "login", "-u", apitest.Username, "-p", apitest.Password)
	require.NoError(t, err)

	out, _, err := c.run("", "--json", "admin", "products", "--category", "Saree", "-s", "cotton")
	require.NoError(t, err)
	var got []product.Product
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestAdminAddAndEdit(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("", "admin", "login", "-u", apitest.Username, "-p", apitest.Password)
	require.NoError(t, err)

	dir := t.TempDir()
	front := filepath.Join(dir, "front.png")
	back := filepath.Join(dir, "back.jpg")
	require.NoError(t, os.WriteFile(front, []byte("png"), 0o600))
	require.NoError(t, os.WriteFile(back, []byte("jpg"), 0o600))

	_, errOut, err := c.run("", "admin", "add", "--name", "Lime Pickle", "--price", "99", "--category", "Pickle")
	require.ErrorIs(t, err, product.ErrInvalid)
	assert.Contains(t, errOut, "at least one image")

	out, _, err := c.run("", "--json", "admin", "add", "--name", "Lime Pickle", "--price", "99",
		"--category", "Pickle", "--image", front, "--image", back)
	require.NoError(t, err)
	var saved product.Product
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, []string{"/uploads/front.png", "/uploads/back.jpg"}, saved.Images)
	assert.Equal(t, "image/png", c.be.ImageTypes()[0])

	out, _, err = c.run("", "admin", "edit", saved.ID, "--price", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Product updated successfully!")
	for _, p := range c.be.Products() {
		if p.ID == saved.ID {
			assert.Equal(t, "Lime Pickle", p.Name, "unset flags keep their value")
			assert.Equal(t, "120", p.Price.String())
			assert.Len(t, p.Images, 2)
		}
	}
}

func TestAdminDelete(t *testing.T) {
	c := newCLI(t)
	_, _, err := c.run("", "admin", "login", "-u", apitest.Username, "-p", apitest.Password)
	require.NoError(t, err)

	out, _, err := c.run("n\n", "admin", "delete", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, c.be.Products(), 3)

	out, _, err = c.run("", "admin", "delete", "p1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Product deleted.")
	assert.Len(t, c.be.Products(), 2)

	c.be.Fail("DELETE /api/products/p2", 500, "boom")
	_, _, err = c.run("y\n", "admin", "delete", "p2")
	assert.Error(t, err)
	assert.Len(t, c.be.Products(), 2)
}

func TestAdminDeleteOrder(t *testing.T) {
	c := newCLI(t)
	c.be.SeedOrders(order.Order{ID: "o1"}, order.Order{ID: "o2"})
	_, _, err := c.run("", "admin", "login", "-u", apitest.Username, "-p", apitest.Password)
	require.NoError(t, err)

	out, _, err := c.run("", "admin", "delete-order", "o2", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Order deleted.")
	require.Len(t, c.be.Orders(), 1)
	assert.Equal(t, "o1", c.be.Orders()[0].ID)
}

func TestSecretReadsPipedInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	_, err = w.WriteString("pw\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var out bytes.Buffer
	a := &app{stdin: r, in: bufio.NewReader(r), out: &out}
	got, err := a.secret("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "pw", got)
	assert.Equal(t, "Password: ", out.String())
}
