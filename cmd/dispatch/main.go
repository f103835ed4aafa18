package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	apihttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/gommon/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type rootOptions struct {
	envFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		log.Fatalf("dispatch: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dispatch",
		Short:         "Repair-shop work-order dispatch service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional file with environment variables")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newMigrateCommand(opts))
	return root
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := cmd.LoadConfig(opts.envFile)
			if err != nil {
				return err
			}
			return serve(c.Context(), cfg)
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the Postgres schema",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := cmd.LoadConfig(opts.envFile)
			if err != nil {
				return err
			}
			db, err := cmd.OpenDatabase(cfg)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("failed to get sql.DB: %w", err)
			}
			defer sqlDB.Close()
			if err = postgres.Migrate(c.Context(), db); err != nil {
				return err
			}
			cmd.NewLogger(cfg).InfoContext(c.Context(), "schema migrated", "database", cfg.DBName)
			return nil
		},
	}
}

func serve(ctx context.Context, cfg cmd.Config) error {
	logger := cmd.NewLogger(cfg)
	clock := kernel.SystemClock{}

	notifier, closeNotifier, err := cmd.NewNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	store, err := cmd.OpenStore(ctx, cfg, notifier, clock, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	directory, err := cmd.OpenDirectory(cfg, logger)
	if err != nil {
		return err
	}

	root, err := cmd.NewCompositionRoot(cfg, store.Factory, directory, clock, logger)
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager(directory, directory)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := apihttp.NewEcho(root.CreateHTTPServer())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg conc.WaitGroup
	var serveErr error
	wg.Go(func() {
		if watchErr := directory.Watch(ctx); watchErr != nil {
			logger.ErrorContext(ctx, "technician file watch stopped", "error", watchErr)
		}
	})
	wg.Go(func() {
		logger.InfoContext(ctx, "http server started", "port", cfg.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			serveErr = startErr
		}
		cancel()
	})

	<-ctx.Done()
	logger.InfoContext(context.Background(), "shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	shutdownErr := e.Shutdown(shutdownCtx)
	wg.Wait()

	return errors.Join(serveErr, shutdownErr)
}
