package session

import "context"

// Context binds a store to one origin: a CLI's API base URL or a web
// visitor id.
type Context struct {
	store  Store
	origin string
}

func NewContext(store Store, origin string) *Context {
	return &Context{store: store, origin: origin}
}

func (c *Context) Origin() string { return c.origin }

// Token returns the stored admin credential. It satisfies api.TokenSource.
func (c *Context) Token(ctx context.Context) (string, bool, error) {
	v, ok, err := c.store.Get(ctx, c.origin, CredentialKey)
	if err != nil || !ok || v == "" {
		return "", false, err
	}
	return v, true, nil
}

func (c *Context) save(ctx context.Context, token string) error {
	return c.store.Set(ctx, c.origin, CredentialKey, token)
}

func (c *Context) clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.origin, CredentialKey)
}
