package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// ApplicantService owns the applicant record collection for a session.
type ApplicantService interface {
	// Load reads all records from the backing source, replacing any held.
	Load(ctx context.Context) error

	// All returns a copy of every record in load order.
	All() []domain.ApplicantRecord

	// FindByID returns a copy of one record or domain.ErrNotFound.
	FindByID(id string) (*domain.ApplicantRecord, error)

	// ApplyDecision sets the status and overwrites the details of one record,
	// then rewrites the whole backing source. A persistence failure returns a
	// *domain.PersistError while the in-memory update stays applied.
	ApplyDecision(ctx context.Context, id string, decision domain.Decision, comments string) (domain.RecordSet, error)

	// StatusCounts returns the number of records per status.
	StatusCounts() domain.StatusCounts

	// LastUpdated returns when records were last loaded or saved.
	LastUpdated() time.Time

	// Path identifies the backing source.
	Path() string
}
