package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
)

// Ensure ApplicantSource implements the interface.
var _ driven.ApplicantSource = (*ApplicantSource)(nil)

// ApplicantSource is an in-memory implementation of driven.ApplicantSource.
// Every Save replaces the held set, mirroring a whole-file rewrite.
type ApplicantSource struct {
	mu      sync.RWMutex
	set     domain.RecordSet
	saves   int
	loadErr error
	saveErr error
}

// NewApplicantSource creates a source holding a copy of set.
func NewApplicantSource(set domain.RecordSet) *ApplicantSource {
	return &ApplicantSource{set: set.Clone()}
}

// Load returns a copy of the held records.
func (s *ApplicantSource) Load(_ context.Context) (domain.RecordSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return domain.RecordSet{}, s.loadErr
	}
	return s.set.Clone(), nil
}

// Save replaces the held records.
func (s *ApplicantSource) Save(ctx context.Context, set domain.RecordSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.set = set.Clone()
	s.saves++
	return nil
}

// Path returns a pseudo path for log messages.
func (s *ApplicantSource) Path() string {
	return ":memory:"
}

// Records returns a copy of what was last saved or seeded.
func (s *ApplicantSource) Records() domain.RecordSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set.Clone()
}

// Saves returns the number of successful saves.
func (s *ApplicantSource) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// FailLoad makes subsequent loads return err. Nil clears it.
func (s *ApplicantSource) FailLoad(err error) {
	s.mu.Lock()
	s.loadErr = err
	s.mu.Unlock()
}

// FailSave makes subsequent saves return err. Nil clears it.
func (s *ApplicantSource) FailSave(err error) {
	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()
}
