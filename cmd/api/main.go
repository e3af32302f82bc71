package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/teamfolio/teamfolio-go/internal/config"
	"github.com/teamfolio/teamfolio-go/internal/handler"
	"github.com/teamfolio/teamfolio-go/internal/repository"
	"github.com/teamfolio/teamfolio-go/internal/server"
	"github.com/teamfolio/teamfolio-go/internal/service"
	"github.com/teamfolio/teamfolio-go/internal/storage"
)

type stores struct {
	users     service.UserStore
	documents service.DocumentStore
	objects   service.ObjectStore
	closer    io.Closer
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg.Env))

	ctx := context.Background()

	st, err := openStores(ctx, cfg)
	if err != nil {
		slog.Error("store setup failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	if st.closer != nil {
		defer st.closer.Close()
	}

	authService := service.NewAuthService(st.users, cfg.JWTSecret, cfg.JWTExpiry)
	profileService := service.NewProfileService(st.users, st.objects, cfg.EnforceProfileOwnership)
	documentService := service.NewDocumentService(st.documents)

	router := server.NewRouter(server.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Profile:   handler.NewProfileHandler(profileService),
		Documents: handler.NewDocumentHandler(documentService),
	}, server.Options{
		JWTSecret:      cfg.JWTSecret,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newLogger(env string) *slog.Logger {
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openStores builds the credential, document and object stores for the
// configured backend.
func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.StoreBackend == config.BackendMemory {
		slog.Warn("using in-memory stores, data is lost on restart")
		return stores{
			users:     repository.NewMemoryUserRepository(),
			documents: repository.NewMemoryDocumentRepository(),
			objects:   storage.NewMemoryStore(cfg.PublicBaseURL()),
		}, nil
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		return stores{}, err
	}

	if cfg.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := repository.Migrate(migrateCtx, db); err != nil {
			db.Close()
			return stores{}, err
		}
	}

	objects, err := storage.NewS3Store(ctx, storage.Options{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: cfg.PublicBaseURL(),
	})
	if err != nil {
		db.Close()
		return stores{}, err
	}

	return stores{
		users:     repository.NewUserRepository(db),
		documents: repository.NewDocumentRepository(db),
		objects:   objects,
		closer:    db,
	}, nil
}
