package driven

import (
	"context"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// ApplicantSource is the backing tabular source of applicant records.
// Load and Save are the only blocking operations of the review core.
type ApplicantSource interface {
	// Load reads every record. It returns a *domain.LoadError when
	// required columns are absent.
	Load(ctx context.Context) (domain.RecordSet, error)

	// Save rewrites the whole source with set, keeping set.Columns order.
	// A failed Save must leave the previously saved contents intact.
	Save(ctx context.Context, set domain.RecordSet) error

	// Path identifies the source for messages.
	Path() string
}

// WatchableSource is a file source that can tell its own writes apart
// from edits made by other programs.
type WatchableSource interface {
	ApplicantSource

	// Fingerprint returns a digest of the bytes last read or written.
	Fingerprint() string
}

// SourceWatcher reports edits to the backing source made by other programs.
type SourceWatcher interface {
	// Watch returns a channel of external changes, closed when ctx is done.
	Watch(ctx context.Context) (<-chan domain.SourceChange, error)
}
