package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
	"github.com/custodia-labs/reviewdesk/internal/core/services"
)

var submitted = time.Date(2024, 5, 6, 10, 0, 0, 0, time.Local)

// fixture holds seven applicants submitted an hour apart, listed in reverse
// date order so sorting is observable.
func fixture() domain.RecordSet {
	statuses := []domain.Status{
		domain.StatusPendingApproval,
		domain.StatusApproved,
		domain.StatusAlerts,
		domain.StatusInProgress,
		domain.StatusPendingApproval,
		domain.StatusRejected,
		domain.StatusApproved,
	}
	set := domain.RecordSet{Columns: domain.DefaultColumns}
	for i, st := range statuses {
		set.Records = append(set.Records, domain.ApplicantRecord{
			ID:              "APP00" + string(rune('1'+i)),
			ApplicationDate: submitted.Add(time.Duration(len(statuses)-i) * time.Hour),
			FullName:        "Applicant " + string(rune('A'+i)),
			Status:          st,
			RatingScore:     i + 1,
			Activity:        domain.NewActivityFeed(submitted, 2),
			Attributes: map[string]string{
				domain.ColumnNationality:  "Malaysian",
				domain.ColumnPhotoMatched: "1",
				"Referral":                "walk-in",
			},
		})
	}
	return set
}

type testEnv struct {
	source *memory.ApplicantSource
	config *memory.ConfigStore
	opened []string
}

// setupTestServices wires memory-backed services into the command tree and
// returns a cleanup that restores every package variable and flag.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()
	t.Setenv(services.EnvSource, "")
	t.Setenv(services.EnvPageSize, "")
	t.Setenv(services.EnvAddr, "")

	env := &testEnv{
		source: memory.NewApplicantSource(fixture()),
		config: memory.NewConfigStore(),
	}

	origSettings, origFactory, origOpener := settingsService, backendFactory, sourceOpener
	origTerminal, origNow := isTerminal, now

	settingsService = services.NewSettingsService(env.config)
	backendFactory = func(ctx context.Context, path string) (*Backend, error) {
		env.opened = append(env.opened, path)
		store := services.NewApplicantStore(env.source, nil)
		if err := store.Load(ctx); err != nil {
			return nil, err
		}
		return &Backend{
			Applicants: store,
			Review:     services.NewReviewService(store),
		}, nil
	}
	sourceOpener = func(path string) (driven.ApplicantSource, error) {
		env.opened = append(env.opened, path)
		return env.source, nil
	}
	isTerminal = func(_ io.Writer) bool { return false }
	now = func() time.Time { return submitted }

	return env, func() {
		require.NoError(t, closeBackend())
		settingsService, backendFactory, sourceOpener = origSettings, origFactory, origOpener
		isTerminal, now = origTerminal, origNow
		resetFlags()
	}
}

func resetFlags() {
	verbose, logFormat, sourceFlag = false, "console", ""
	summaryJSON = false
	listSearch, listIncludeApproved, listPage, listPageSize, listJSON = "", true, 1, 0, false
	showJSON = false
	decideComment = ""
	serveAddr = ""
	generateRows, generateSeed, generateForce = services.DefaultGenerateRows, 0, false
	listCmd.Flags().Lookup("include-approved").Changed = false
	if f := rootCmd.Flags().Lookup("version"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
