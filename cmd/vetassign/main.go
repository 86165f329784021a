package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	localcache "vet-telemedicine/internal/adapters/cache/local"
	rediscache "vet-telemedicine/internal/adapters/cache/redis"
	"vet-telemedicine/internal/adapters/auth/remote"
	pg "vet-telemedicine/internal/adapters/storage/postgres"
	"vet-telemedicine/internal/app"
	"vet-telemedicine/internal/config"
	"vet-telemedicine/internal/domain/assignment"
	"vet-telemedicine/internal/platform/logger"
	"vet-telemedicine/internal/ports/auth"
	"vet-telemedicine/internal/ports/cache"
	"vet-telemedicine/internal/router"
)

// @title Vet Telemedicine API
// @version 1.0
// @description Consultas remotas y turnos veterinarios con asignación automática de médicos.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:           "vetassign",
		Short:         "Vet telemedicine API and doctor assignment tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(assignCmd())
	rootCmd.AddCommand(diagnoseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create database tables (idempotent)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DBDSN == "" {
				return errors.New("DB_DSN is required for migrate")
			}
			db, err := pg.Open(cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			log.Info("migrations applied", nil)
			return nil
		},
	}
}

func assignCmd() *cobra.Command {
	var doctorID string

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Run one assignment pass (all doctors, or one with --doctor)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := bootstrap()
			if err != nil {
				return err
			}
			defer d.close()

			var res assignment.Result
			if doctorID != "" {
				res, err = d.app.Assignment.AssignForDoctor(cmd.Context(), doctorID)
			} else {
				res, err = d.app.Assignment.AssignAllPending(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&doctorID, "doctor", "", "only assign for this doctor id")
	return cmd
}

func diagnoseCmd() *cobra.Command {
	var explainOnly bool

	cmd := &cobra.Command{
		Use:   "diagnose <consultation-id>",
		Short: "Explain why a consultation is unassigned and retry the assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bootstrap()
			if err != nil {
				return err
			}
			defer d.close()

			var rep assignment.Report
			if explainOnly {
				rep, err = d.app.Assignment.Explain(cmd.Context(), args[0])
			} else {
				rep, err = d.app.Assignment.Diagnose(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().BoolVar(&explainOnly, "explain-only", false, "do not run an assignment pass")
	return cmd
}

func runServer(ctx context.Context) error {
	d, err := bootstrap()
	if err != nil {
		return err
	}
	defer d.close()

	var verifier auth.AuthVerifier
	if d.cfg.AuthBaseURL != "" {
		v, err := remote.NewVerifier(remote.Config{BaseURL: d.cfg.AuthBaseURL, APIKey: d.cfg.AuthAPIKey})
		if err != nil {
			return fmt.Errorf("auth verifier: %w", err)
		}
		verifier = v
	} else {
		d.log.Warn("no AUTH_BASE_URL: dev mode, identity comes from X-Debug-User-ID / X-Debug-Role", nil)
	}

	srv := &http.Server{
		Addr: d.cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier:   verifier,
			App:            d.app,
			Logger:         d.log,
			RateLimitRPS:   d.cfg.RateLimitRPS,
			RateLimitBurst: d.cfg.RateLimitBurst,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		d.log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	d.log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type deps struct {
	cfg   *config.Config
	log   logger.Logger
	app   *app.App
	db    *sql.DB
	redis *rediscache.Cache
}

func (d *deps) close() {
	if d.db != nil {
		_ = d.db.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	return cfg, log, nil
}

func bootstrap() (*deps, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, log: log}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		d.db = db
	} else {
		log.Warn("no DB_DSN: using in-memory repositories", nil)
	}

	var c cache.Cache
	if cfg.RedisURL != "" {
		rc, err := rediscache.New(rediscache.Options{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
			Prefix:   cfg.AppName + ":",
		})
		if err != nil {
			d.close()
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unreachable, settings cache will miss", map[string]any{"error": err})
		}
		d.redis = rc
		c = rc
	} else {
		c = localcache.New(cfg.SettingsCacheTTL, 10*time.Minute)
	}

	loc, _ := cfg.Location()

	d.app = app.New(app.Options{
		DB:       d.db,
		Cache:    c,
		CacheTTL: cfg.SettingsCacheTTL,
		Logger:   log,
		Assignment: assignment.Options{
			Location:            loc,
			RecheckAvailability: cfg.AssignRecheckAvailability,
			AutoAssignEnabled:   cfg.AutoAssignEnabled,
		},
	})
	return d, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
