// Package cli provides the reviewdesk command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// version is set by main from build flags.
var version = "dev"

// buildInfo reads the module build metadata.
var buildInfo = debug.ReadBuildInfo

// Persistent flags.
var (
	verbose    bool
	logFormat  string
	sourceFlag string
)

// Wired by main.
var (
	settingsService driving.SettingsService
	backendFactory  BackendFactory
	sourceOpener    SourceOpener
)

// backend is opened on first use and closed by Execute.
var backend *Backend

// ErrNoBackend is returned when no backend factory has been wired.
var ErrNoBackend = errors.New("applicant source not configured")

// Backend bundles the services that operate on one loaded backing source.
type Backend struct {
	Applicants driving.ApplicantService
	Review     driving.ReviewService

	// Watcher is nil when the source cannot be watched.
	Watcher driven.SourceWatcher

	// Metrics serves /metrics for the HTTP API. Optional.
	Metrics http.Handler

	// Requests counts HTTP API requests. Optional.
	Requests httpapi.RequestMetrics

	// Close releases the backing source.
	Close func() error
}

// BackendFactory opens and loads the backing source at path.
type BackendFactory func(ctx context.Context, path string) (*Backend, error)

// SourceOpener returns the adapter for a backing source path without loading it.
type SourceOpener func(path string) (driven.ApplicantSource, error)

var rootCmd = &cobra.Command{
	Use:   "reviewdesk",
	Short: "Review and decide applicant submissions",
	Long: `reviewdesk loads applicant records from a spreadsheet, CSV file or
SQLite database, shows how many applications are in each review status and
lets a reviewer approve or reject them with comments. Every decision is
written straight back to the backing source.

Run without a subcommand on a terminal to open the dashboard; otherwise the
status summary is printed.`,
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
	RunE:              runRoot,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build details",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionText())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Version = versionText()

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&logFormat, "log-format", logger.FormatConsole, "log format: console or json")
	flags.StringVarP(&sourceFlag, "source", "s", "", "backing source path (.xlsx, .csv, .db)")
}

func configureLogging(_ *cobra.Command, _ []string) error {
	switch logFormat {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q (use console or json)", domain.ErrInvalidInput, logFormat)
	}
	logger.SetFormat(logFormat)
	logger.SetVerbose(verbose)
	return nil
}

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runRoot(cmd *cobra.Command, args []string) error {
	if isTerminal(cmd.OutOrStdout()) {
		return runTUI(cmd, args)
	}
	return runSummary(cmd, args)
}

// SetSettingsService wires the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetBackendFactory wires the function that opens the backing source.
func SetBackendFactory(f BackendFactory) {
	backendFactory = f
}

// SetSourceOpener wires the function used by generate.
func SetSourceOpener(o SourceOpener) {
	sourceOpener = o
}

// SetVersion sets the version reported by version and --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
	rootCmd.Version = versionText()
}

// versionText is the version followed by the VCS revision and Go
// version when the binary carries build info.
func versionText() string {
	text := "reviewdesk version " + version
	info, ok := buildInfo()
	if !ok {
		return text
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value[:min(12, len(setting.Value))]
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	var details []string
	if revision != "" {
		if dirty {
			revision += "-dirty"
		}
		details = append(details, "commit "+revision)
	}
	if info.GoVersion != "" {
		details = append(details, info.GoVersion)
	}
	if len(details) == 0 {
		return text
	}
	return text + " (" + strings.Join(details, ", ") + ")"
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and releases the backend.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeBackend(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// sourcePath returns the --source flag, the configured path or the default.
func sourcePath() string {
	if sourceFlag != "" {
		return sourceFlag
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Source.Path != "" {
			return s.Source.Path
		}
	}
	return domain.DefaultSourcePath
}

// appSettings returns the settings, or the defaults when none are wired.
func appSettings() domain.AppSettings {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s != nil {
			return *s
		}
	}
	return domain.DefaultAppSettings()
}

// loadBackend opens the backing source once per process.
func loadBackend(cmd *cobra.Command) (*Backend, error) {
	if backend != nil {
		return backend, nil
	}
	if backendFactory == nil {
		return nil, ErrNoBackend
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := sourcePath()
	b, err := backendFactory(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	backend = b
	return backend, nil
}

func closeBackend() error {
	if backend == nil {
		return nil
	}
	b := backend
	backend = nil
	if b.Close == nil {
		return nil
	}
	return b.Close()
}
