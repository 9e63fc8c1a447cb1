// Package source picks the backing source adapter for a path.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/source/csvfile"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/source/xlsxfile"
	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
)

// Format is a supported backing source format.
type Format string

// Supported formats.
const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// Formats lists the supported formats.
var Formats = []Format{FormatXLSX, FormatCSV, FormatSQLite}

// DetectFormat maps a file extension to a format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q (use .xlsx, .csv, .db or .sqlite)", domain.ErrUnsupportedSource, path)
	}
}

// Open returns the adapter for path. File sources are not read until
// Load; a SQLite database is opened and migrated immediately.
func Open(path string) (driven.ApplicantSource, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		return csvfile.New(path), nil
	case FormatXLSX:
		return xlsxfile.New(path), nil
	default:
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		return store, nil
	}
}

// Close releases src when it holds resources.
func Close(src driven.ApplicantSource) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Watchable returns src as a driven.WatchableSource when it is a plain file.
func Watchable(src driven.ApplicantSource) (driven.WatchableSource, bool) {
	w, ok := src.(driven.WatchableSource)
	return w, ok
}
