package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/services"
)

var (
	generateRows  int
	generateSeed  uint64
	generateForce bool
)

// now is replaced in tests.
var now = time.Now

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Write a demo applicant source",
	Long: `Write randomly generated applicants to a new backing source.

The format follows the file extension: .xlsx, .csv or .db. Without a path
the configured source is used. Existing files are only replaced with --force.

Examples:
  reviewdesk generate
  reviewdesk generate demo.csv --rows 200 --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateRows, "rows", "n", services.DefaultGenerateRows, "number of applicants")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "random seed (0 = random)")
	generateCmd.Flags().BoolVarP(&generateForce, "force", "f", false, "replace an existing file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if sourceOpener == nil {
		return ErrNoBackend
	}

	path := sourcePath()
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !generateForce {
		return fmt.Errorf("%w: %s already exists (use --force to replace it)", domain.ErrInvalidInput, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	seed := generateSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	set, err := services.GenerateApplicants(rand.New(rand.NewPCG(seed, seed)), generateRows, now())
	if err != nil {
		return err
	}

	src, err := sourceOpener(path)
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close() //nolint:errcheck
	}

	if err := src.Save(cmd.Context(), set); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	cmd.Printf("Wrote %d applicants to %s (seed %d)\n", set.Len(), path, seed)
	return nil
}
