package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/storefront/internal/api"
	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/session"
	"github.com/MikeMC777/storefront/internal/web"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := credentialStore(ctx, cfg)
	if err != nil {
		log.Fatalf("credential store: %v", err)
	}
	defer closeStore()

	gin.SetMode(gin.ReleaseMode)
	r := web.NewRouter(web.Options{
		API:                  api.New(cfg.APIURL, cfg.HTTPTimeout).WithLogger(logger),
		Store:                store,
		Logger:               logger,
		ProductRedirectDelay: cfg.ProductRedirectDelay,
		OrderResetDelay:      cfg.OrderResetDelay,
		WorkspaceTTL:         cfg.WorkspaceTTL,
		SecureCookie:         cfg.SecureCookie,
	})

	srv := &http.Server{Addr: cfg.WebAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("storefront-web listening on %s (api %s)", cfg.WebAddr, cfg.APIURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// credentialStore is Postgres when a DSN is configured, memory otherwise.
func credentialStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	if cfg.CredentialsDSN == "" {
		return session.NewMemoryStore(), func() {}, nil
	}
	pool, err := pgxpool.New(ctx, cfg.CredentialsDSN)
	if err != nil {
		return nil, nil, err
	}
	s := session.NewPGStore(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return s, pool.Close, nil
}
