package main

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/household-roster/internal/application"
	"github.com/example/household-roster/internal/config"
	httptransport "github.com/example/household-roster/internal/http"
	"github.com/example/household-roster/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := sessionTokenGenerator(cfg.SessionSecret)
	now := time.Now

	clientRepo := sqlite.NewClientRepository(pool)
	housekeeperRepo := sqlite.NewHousekeeperRepository(pool)
	accountRepo := sqlite.NewAccountRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)

	clientService := application.NewClientServiceWithLogger(clientRepo, idGenerator, now, logger)
	housekeeperService := application.NewHousekeeperServiceWithLogger(housekeeperRepo, idGenerator, now, logger)
	leadService := application.NewLeadServiceWithLogger(clientRepo, now, cfg.LeadCacheTTL, logger)
	authService := application.NewAuthServiceWithLogger(accountRepo, sessionRepo, nil, tokenGenerator, idGenerator, now, cfg.SessionTTL, logger)

	if cfg.BootstrapEmail != "" {
		if _, err := authService.EnsureBootstrapAccount(ctx, cfg.BootstrapEmail, cfg.BootstrapPassword, "Administrator"); err != nil {
			logger.Error("failed to ensure bootstrap account", "error", err)
			os.Exit(1)
		}
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authService, logger),
		Clients:      httptransport.NewClientHandler(clientService, logger),
		Housekeepers: httptransport.NewHousekeeperHandler(housekeeperService, logger),
		Leads:        httptransport.NewLeadHandler(leadService, logger),
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Login is the only route reachable without a session.
		if strings.EqualFold(r.URL.Path, "/sessions") && r.Method == http.MethodPost {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("roster API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// sessionTokenGenerator derives opaque session tokens by keying random
// bytes with the configured secret, so tokens from one deployment are
// never valid in another.
func sessionTokenGenerator(secret string) func() string {
	return func() string {
		buf := make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, buf); err != nil {
			buf = []byte(fmt.Sprintf("fallback-%d", time.Now().UnixNano()))
		}
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(buf)
		return hex.EncodeToString(mac.Sum(nil))
	}
}
