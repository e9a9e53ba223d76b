package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/domain/auth"
	"github.com/clinicdesk/clinicdesk/internal/domain/billing"
	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/dashboard"
	"github.com/clinicdesk/clinicdesk/internal/domain/inventory"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/reports"
	"github.com/clinicdesk/clinicdesk/internal/domain/scheduling"
	"github.com/clinicdesk/clinicdesk/internal/domain/staff"
	"github.com/clinicdesk/clinicdesk/internal/platform/entity"
	"github.com/clinicdesk/clinicdesk/internal/platform/metrics"
	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic Management API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with the starting dataset and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := context.Background()
			backend, closeBackend, err := openBackend(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeBackend()
			s := newStores(backend)
			if err := s.ensureSeeds(ctx, logger); err != nil {
				return err
			}
			fmt.Println("Seed data is in place.")
			return nil
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

// stores holds one entity store per resource kind, all bound to the same
// backend.
type stores struct {
	users        *entity.Store[staff.User, *staff.User]
	patients     *entity.Store[patient.Patient, *patient.Patient]
	services     *entity.Store[catalog.Service, *catalog.Service]
	appointments *entity.Store[scheduling.Appointment, *scheduling.Appointment]
	invoices     *entity.Store[billing.Invoice, *billing.Invoice]
	items        *entity.Store[inventory.Item, *inventory.Item]
}

func newStores(backend store.Backend) *stores {
	return &stores{
		users:        entity.NewStore[staff.User, *staff.User](backend, staff.Definition()),
		patients:     entity.NewStore[patient.Patient, *patient.Patient](backend, patient.Definition()),
		services:     entity.NewStore[catalog.Service, *catalog.Service](backend, catalog.Definition()),
		appointments: entity.NewStore[scheduling.Appointment, *scheduling.Appointment](backend, scheduling.Definition()),
		invoices:     entity.NewStore[billing.Invoice, *billing.Invoice](backend, billing.Definition()),
		items:        entity.NewStore[inventory.Item, *inventory.Item](backend, inventory.Definition()),
	}
}

func (s *stores) seeders() []entity.Seeder {
	return []entity.Seeder{s.users, s.patients, s.services, s.appointments, s.invoices, s.items}
}

func (s *stores) ensureSeeds(ctx context.Context, logger zerolog.Logger) error {
	for _, seeder := range s.seeders() {
		if err := seeder.EnsureSeed(ctx); err != nil {
			return fmt.Errorf("seed %s: %w", seeder.Kind(), err)
		}
		logger.Debug().Str("kind", seeder.Kind()).Msg("seed ensured")
	}
	return nil
}

// openBackend constructs the configured storage backend. The returned close
// function is a no-op for the in-memory driver.
func openBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Backend, func(), error) {
	switch driver := cfg.ResolvedStoreDriver(); driver {
	case store.DriverPostgres:
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info().Str("driver", driver).Msg("storage backend ready")
		return pg, pg.Close, nil
	case store.DriverRedis:
		rd, err := store.NewRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info().Str("driver", driver).Msg("storage backend ready")
		return rd, func() { _ = rd.Close() }, nil
	default:
		logger.Warn().Msg("using in-memory storage; records are lost on restart")
		return store.NewMemory(), func() {}, nil
	}
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	backend, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open storage backend")
	}
	defer closeBackend()

	s := newStores(backend)
	if cfg.SeedOnStart {
		if err := s.ensureSeeds(ctx, logger); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed store")
		}
		logger.Info().Msg("seed data ensured")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api")
	auth.NewHandler(s.users).RegisterRoutes(api)
	staff.NewHandler(s.users).RegisterRoutes(api)
	patient.NewHandler(s.patients).RegisterRoutes(api)
	catalog.NewHandler(s.services).RegisterRoutes(api)
	scheduling.NewHandler(s.appointments).RegisterRoutes(api)
	billing.NewHandler(s.invoices).RegisterRoutes(api)
	inventory.NewHandler(s.items).RegisterRoutes(api)
	dashboard.NewHandler(s.appointments, s.invoices, s.items).RegisterRoutes(api)
	reports.NewHandler(s.invoices, s.items).RegisterRoutes(api)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
