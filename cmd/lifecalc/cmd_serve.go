package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/polumm/lifecalc/internal/calculation"
	"github.com/polumm/lifecalc/internal/config"
	"github.com/polumm/lifecalc/internal/handler"
	"github.com/polumm/lifecalc/internal/storage"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scenario API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			memory, _ := cmd.Flags().GetBool("memory")

			logger := newLogger(cmd)
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				logger.SetLevel(level)
			}
			if memory {
				cfg.StoreBackend = "memory"
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var store storage.Store
			switch cfg.StoreBackend {
			case "memory":
				store = storage.NewMemoryStore()
				logger.Info("using in-memory scenario store")
			default:
				db, err := sql.Open("postgres", cfg.DSN())
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				defer db.Close()
				if err := db.PingContext(ctx); err != nil {
					return fmt.Errorf("failed to ping database: %w", err)
				}
				pg := storage.NewPostgresStore(db)
				if err := pg.EnsureSchema(ctx); err != nil {
					return err
				}
				store = pg
				logger.WithField("database", cfg.DatabaseName).Info("connected to postgres scenario store")
			}

			engine := calculation.NewProjectionEngine()
			engine.SetLogger(engineLogger{logger})

			r := mux.NewRouter()
			handler.NewHandler(store, engine, logger).Register(r)

			server := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      r,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.WithField("addr", server.Addr).Info("server listening")
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("shutting down")
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().Bool("memory", false, "Use an in-memory scenario store instead of postgres")
	return cmd
}
