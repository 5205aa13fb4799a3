package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

const (
	LoginPath = "/admin/login"
	HomePath  = "/admin"
)

// InvalidCredentialsMessage is what the login view shows for any rejected
// login.
const InvalidCredentialsMessage = "Invalid username or password"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingCredentials = fmt.Errorf("%w: both fields are required", ErrInvalidCredentials)
)

// Authenticator exchanges admin credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Decision is the outcome of a gate check: either Allowed, or a Redirect
// to the login view carrying the requested location.
type Decision struct {
	Allowed  bool
	Redirect string
}

type Gate struct {
	auth Authenticator
	log  *slog.Logger
}

func NewGate(auth Authenticator, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{auth: auth, log: logger}
}

// Check allows the request iff a credential is present. The token itself
// is not inspected. A store that cannot be read counts as absent.
func (g *Gate) Check(ctx context.Context, sc *Context, requested string) Decision {
	_, ok, err := sc.Token(ctx)
	if err != nil {
		g.log.Warn("read credential failed", slog.String("origin", sc.Origin()), slog.String("error", err.Error()))
	}
	if ok {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: LoginURL(requested)}
}

// LoginURL is the login location that returns to next afterwards.
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// SafeNext returns next if it is a local absolute path, HomePath otherwise.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return HomePath
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return HomePath
	}
	if u.Path == LoginPath {
		return HomePath
	}
	return next
}

// Login exchanges the credentials, stores the token and returns where to
// go next. Every authentication failure is reported as
// ErrInvalidCredentials.
func (g *Gate) Login(ctx context.Context, sc *Context, username, password, next string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}
	token, err := g.auth.Login(ctx, username, password)
	if err != nil {
		g.log.Warn("admin login rejected", slog.String("origin", sc.Origin()), slog.String("error", err.Error()))
		return "", ErrInvalidCredentials
	}
	if err := sc.save(ctx, token); err != nil {
		return "", fmt.Errorf("store credential: %w", err)
	}
	g.log.Info("admin logged in", slog.String("origin", sc.Origin()))
	return SafeNext(next), nil
}

// Logout removes the credential and returns the login location.
func (g *Gate) Logout(ctx context.Context, sc *Context) (string, error) {
	if err := sc.clear(ctx); err != nil {
		return "", fmt.Errorf("remove credential: %w", err)
	}
	g.log.Info("admin logged out", slog.String("origin", sc.Origin()))
	return LoginPath, nil
}
