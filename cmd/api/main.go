package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nusapay/nusapay-api/internal/config"
	"github.com/nusapay/nusapay-api/internal/domain/information"
	"github.com/nusapay/nusapay-api/internal/domain/ledger"
	"github.com/nusapay/nusapay-api/internal/domain/membership"
	"github.com/nusapay/nusapay-api/internal/middleware"
	"github.com/nusapay/nusapay-api/internal/pkg/database"
	"github.com/nusapay/nusapay-api/internal/pkg/imaging"
	"github.com/nusapay/nusapay-api/internal/pkg/jwt"
	pkgresponse "github.com/nusapay/nusapay-api/internal/pkg/response"
	"github.com/nusapay/nusapay-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting NusaPay API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTTTL)

	files, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file storage")
	}

	processor := imaging.NewProcessor(imaging.DefaultConfig())

	// ---------- Repositories ----------
	memberRepo := membership.NewRepository(db)
	catalogRepo := information.NewCachedRepository(information.NewRepository(db), redis, cfg.CatalogCacheTTL)
	ledgerStore := ledger.NewRepository(db)

	// ---------- Services ----------
	memberService := membership.NewService(memberRepo, jwtService, files, processor)
	ledgerService := ledger.NewService(ledgerStore, memberRepo, catalogRepo, cfg.TopUpMaxAmount)

	// ---------- Handlers ----------
	memberHandler := membership.NewHandler(memberService)
	catalogHandler := information.NewHandler(catalogRepo)
	ledgerHandler := ledger.NewHandler(ledgerService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, "OK", map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	memberHandler.Routes(r, authMiddleware)
	catalogHandler.Routes(r, authMiddleware)
	ledgerHandler.Routes(r, authMiddleware)

	if cfg.StorageDriver == "local" {
		fileServer := http.FileServer(http.Dir(cfg.LocalStoragePath))
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return storage.NewLocalStorage(cfg.LocalStoragePath, cfg.LocalStorageURL)
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
