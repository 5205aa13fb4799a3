package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/MikeMC777/storefront/internal/product"
)

// ImagesField is the multipart field every staged image is sent under.
const ImagesField = "images"

func (c *Client) ListProducts(ctx context.Context, q url.Values) ([]product.Product, error) {
	var out []product.Product
	if err := c.getJSON(ctx, "/api/products", q, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if out == nil {
		out = []product.Product{}
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

func (c *Client) CreateProduct(ctx context.Context, p product.Payload) (*product.Product, error) {
	out, err := c.sendProduct(ctx, http.MethodPost, "/api/products", p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p product.Payload) (*product.Product, error) {
	out, err := c.sendProduct(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), p)
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/api/products/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

func (c *Client) sendProduct(ctx context.Context, method, path string, p product.Payload) (*product.Product, error) {
	body, contentType, err := encodeProduct(p)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}
	var out product.Product
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeProduct builds the multipart body: scalar fields first, then one
// ImagesField part per attachment in staging order.
func encodeProduct(p product.Payload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{"name", p.Name},
		{"price", p.Price.String()},
		{"size", p.Size},
		{"category", string(p.Category)},
		{"material", p.Material},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	for _, img := range p.Images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			ImagesField, quoteEscaper.Replace(img.Filename)))
		ct := img.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("write image %s: %w", img.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
