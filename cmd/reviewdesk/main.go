// Command reviewdesk is the applicant review dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/metrics"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/source"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/source/tabular"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/cli"
	"github.com/custodia-labs/reviewdesk/internal/core/services"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// version is set with -ldflags "-X main.version=...".
var version = ""

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	m := metrics.New()

	cli.SetVersion(version)
	cli.SetSettingsService(services.NewSettingsService(configStore))
	cli.SetSourceOpener(source.Open)
	cli.SetBackendFactory(func(ctx context.Context, path string) (*cli.Backend, error) {
		src, err := source.Open(path)
		if err != nil {
			return nil, err
		}

		store := services.NewApplicantStore(src, m)
		if err := store.Load(ctx); err != nil {
			_ = source.Close(src)
			return nil, err
		}

		b := &cli.Backend{
			Applicants: store,
			Review:     services.NewReviewService(store),
			Metrics:    m.Handler(),
			Requests:   m,
			Close: func() error {
				return source.Close(src)
			},
		}
		if w, ok := source.Watchable(src); ok {
			b.Watcher = tabular.NewWatcher(w)
		}
		return b, nil
	})

	return cli.ExecuteContext(ctx)
}
