package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/forPelevin/ytshorts/internal/config"
	"github.com/forPelevin/ytshorts/internal/deps"
	"github.com/forPelevin/ytshorts/internal/logging"
	"github.com/forPelevin/ytshorts/internal/pipeline"
	"github.com/forPelevin/ytshorts/internal/transport/ws"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the clip server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, *configPath, bind)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Listen address, overrides server.bind")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, configPath, bind string) error {
	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if bind = strings.TrimSpace(bind); bind != "" {
		cfg.Server.Bind = bind
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	if exists {
		logger.Info("config loaded", logging.String("path", resolved))
	} else {
		logger.Info("no config file, using defaults", logging.String("path", resolved))
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", cfg.LockPath(), err)
	}
	if !ok {
		return fmt.Errorf("another ytshorts server is using %s", cfg.Paths.DataDir)
	}
	defer func() { _ = lock.Unlock() }()

	for _, s := range deps.CheckBinaries(deps.Requirements(cfg)) {
		if !s.Available {
			logger.Warn("dependency unavailable", logging.String(logging.FieldTool, s.Name), logging.String("detail", s.Detail))
		}
	}

	svc, err := pipeline.New(pipelineConfig(cfg, logger))
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Jobs run on ctx, so a signal stops their tools as well as the listener.
	wsServer := ws.New(svc, ws.Options{
		BaseContext:    ctx,
		OutputDir:      cfg.Paths.OutputDir,
		OutputURL:      cfg.Server.OutputURL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})
	httpServer := &http.Server{
		Handler:           wsServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Server.Bind)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Bind, err)
	}
	logger.Info("server listening",
		logging.String("addr", ln.Addr().String()),
		logging.Int("max_concurrent", cfg.Jobs.MaxConcurrent),
		logging.String("transcriber", cfg.Tools.Transcriber),
	)

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.Serve(ln) }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", logging.Error(err))
	}
	wsServer.Wait()
	logger.Info("server stopped")
	return nil
}
