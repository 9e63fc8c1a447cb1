package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review dashboard as a JSON HTTP API",
	Long: `Serve the review dashboard over HTTP.

Routes:
  GET  /healthz
  GET  /metrics
  GET  /api/summary
  GET  /api/applicants?search=&include_approved=&page=&page_size=
  GET  /api/applicants/{id}
  POST /api/applicants/{id}/decision   {"decision":"approve","comments":"..."}

When source.watch is enabled the records are reloaded whenever another
program changes the backing source.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	b, err := loadBackend(cmd)
	if err != nil {
		return err
	}

	settings := appSettings()
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	api, err := httpapi.New(httpapi.Config{
		Applicants: b.Applicants,
		Review:     b.Review,
		Metrics:    b.Metrics,
		Requests:   b.Requests,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return api.Run(ctx, addr)
	})
	if settings.Source.Watch && b.Watcher != nil {
		g.Go(func() error {
			return reloadOnChange(ctx, b)
		})
	}

	cmd.Printf("Serving %s on %s\n", b.Applicants.Path(), addr)
	return g.Wait()
}

// reloadOnChange reloads the records after every external change until ctx is done.
func reloadOnChange(ctx context.Context, b *Backend) error {
	changes, err := b.Watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching source: %w", err)
	}
	for change := range changes {
		if change.Removed {
			logger.L().Warn("source removed by another program", zap.String("path", change.Path))
			continue
		}
		if err := b.Applicants.Load(ctx); err != nil {
			logger.L().Warn("reload failed", zap.String("path", change.Path), zap.Error(err))
			continue
		}
		logger.L().Info("source reloaded", zap.String("path", change.Path),
			zap.Int("records", b.Applicants.StatusCounts().Total()))
	}
	return nil
}
