package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	azureadapter "github.com/spellcast/speechvault/internal/adapter/driven/azure"
	"github.com/spellcast/speechvault/internal/adapter/driven/memcache"
	sqliteadapter "github.com/spellcast/speechvault/internal/adapter/driven/sqlite"
	"github.com/spellcast/speechvault/internal/adapter/driven/storage"
	httphandler "github.com/spellcast/speechvault/internal/adapter/driving/http"
	"github.com/spellcast/speechvault/internal/application"
	"github.com/spellcast/speechvault/internal/config"
	"github.com/spellcast/speechvault/internal/secret"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"provider_timeout", cfg.ProviderTimeout,
		"voices_cache_ttl", cfg.VoicesCacheTTL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	userStore := sqliteadapter.NewUserRepo(db)
	credentialStore := sqliteadapter.NewCredentialRepo(db)
	subscriptionStore := sqliteadapter.NewSubscriptionRepo(db)
	documentStore := sqliteadapter.NewDocumentRepo(db)
	libraryStore := sqliteadapter.NewLibraryRepo(db)

	cipher, err := secret.New(cfg.SecretKey)
	if err != nil {
		return err
	}

	provider := azureadapter.NewClient(cfg.ProviderTimeout)
	voiceCache := memcache.New(cfg.VoicesCacheTTL)
	presigner := storage.New(cfg.StorageBaseURL, cfg.AuthSecret)

	// 6. Create application services.
	credSvc := application.NewCredentialService(userStore, credentialStore, provider, voiceCache, cipher, slog.Default())
	subSvc := application.NewSubscriptionService(credentialStore, subscriptionStore, slog.Default())
	libSvc := application.NewLibraryService(userStore, documentStore, libraryStore, presigner, slog.Default())

	// 7. Create HTTP handler and register routes.
	apiHandler := httphandler.NewHandler(credSvc, subSvc, libSvc, slog.Default())
	handler := httphandler.NewServeMux(apiHandler, cfg.AuthSecret, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	// 8. Log startup complete.
	slog.Info("speechvault started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
