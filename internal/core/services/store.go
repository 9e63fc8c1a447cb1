package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// Ensure ApplicantStore implements the interface.
var _ driving.ApplicantService = (*ApplicantStore)(nil)

// Decision outcomes reported to metrics.
const (
	outcomeSaved         = "saved"
	outcomeNotFound      = "not_found"
	outcomePersistFailed = "persist_failed"
)

// ApplicantStore owns the in-memory applicant collection of a session.
// Records are loaded once and mutated only through ApplyDecision, which
// persists the whole collection before returning.
type ApplicantStore struct {
	mu          sync.RWMutex
	source      driven.ApplicantSource
	metrics     driven.ReviewMetrics
	set         domain.RecordSet
	loaded      bool
	lastUpdated time.Time
	now         func() time.Time
}

// NewApplicantStore creates a store over source. metrics may be nil.
func NewApplicantStore(source driven.ApplicantSource, metrics driven.ReviewMetrics) *ApplicantStore {
	return &ApplicantStore{
		source:  source,
		metrics: metrics,
		now:     time.Now,
	}
}

// Load reads all records from the backing source.
func (s *ApplicantStore) Load(ctx context.Context) error {
	if s.source == nil {
		return domain.ErrNotImplemented
	}

	logger.Section("Load")
	start := s.now()

	set, err := s.source.Load(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(set.Records))
	for i := range set.Records {
		id := set.Records[i].ID
		if id == "" {
			return fmt.Errorf("%w: row %d has an empty applicant id", domain.ErrInvalidInput, i+1)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate applicant id %q", domain.ErrInvalidInput, id)
		}
		seen[id] = true
	}

	s.mu.Lock()
	s.set = set
	s.loaded = true
	s.lastUpdated = s.now()
	counts := domain.CountStatuses(s.set.Records)
	s.mu.Unlock()

	logger.Info("Loaded %d applicants from %s", len(set.Records), s.source.Path())
	if s.metrics != nil {
		s.metrics.ObserveLoad(len(set.Records), s.now().Sub(start))
	}
	s.publishCounts(counts)
	return nil
}

// All returns a copy of every record in load order.
func (s *ApplicantStore) All() []domain.ApplicantRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ApplicantRecord, len(s.set.Records))
	for i := range s.set.Records {
		out[i] = s.set.Records[i].Clone()
	}
	return out
}

// FindByID returns a copy of one record.
func (s *ApplicantStore) FindByID(id string) (*domain.ApplicantRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.set.IndexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("applicant %q: %w", id, domain.ErrNotFound)
	}
	rec := s.set.Records[idx].Clone()
	return &rec, nil
}

// ApplyDecision sets the record's status, overwrites its details with
// comments and rewrites the whole backing source. An unknown id changes
// nothing. If the rewrite fails the in-memory update is kept and a
// *domain.PersistError is returned so the caller can retry.
func (s *ApplicantStore) ApplyDecision(
	ctx context.Context,
	id string,
	decision domain.Decision,
	comments string,
) (domain.RecordSet, error) {
	if !decision.IsValid() {
		return domain.RecordSet{}, fmt.Errorf("%w: decision %q", domain.ErrInvalidInput, decision)
	}
	if s.source == nil {
		return domain.RecordSet{}, domain.ErrNotImplemented
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return domain.RecordSet{}, domain.ErrNotLoaded
	}

	start := s.now()
	idx := s.set.IndexOf(id)
	if idx < 0 {
		logger.Warn("Decision for unknown applicant %q ignored", id)
		s.observeDecision(decision, outcomeNotFound, start)
		return s.set.Clone(), fmt.Errorf("applicant %q: %w", id, domain.ErrNotFound)
	}

	rec := &s.set.Records[idx]
	rec.Status = decision.Status()
	rec.Details = comments
	logger.Debug("Applicant %s set to %s", id, rec.Status)

	snapshot := s.set.Clone()
	if err := s.source.Save(ctx, snapshot); err != nil {
		logger.Warn("Saving %s failed: %v", s.source.Path(), err)
		s.observeDecision(decision, outcomePersistFailed, start)
		var pe *domain.PersistError
		if errors.As(err, &pe) {
			return snapshot, err
		}
		return snapshot, &domain.PersistError{Path: s.source.Path(), Err: err}
	}

	s.lastUpdated = s.now()
	logger.Info("Applicant %s %s and saved to %s", id, decision.PastTense(), s.source.Path())
	s.observeDecision(decision, outcomeSaved, start)
	s.publishCounts(domain.CountStatuses(s.set.Records))
	return snapshot, nil
}

// StatusCounts returns the number of records per status.
func (s *ApplicantStore) StatusCounts() domain.StatusCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CountStatuses(s.set.Records)
}

// LastUpdated returns when records were last loaded or saved.
func (s *ApplicantStore) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// Path identifies the backing source.
func (s *ApplicantStore) Path() string {
	if s.source == nil {
		return ""
	}
	return s.source.Path()
}

func (s *ApplicantStore) observeDecision(decision domain.Decision, outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveDecision(string(decision), outcome, s.now().Sub(start))
	}
}

func (s *ApplicantStore) publishCounts(counts domain.StatusCounts) {
	if s.metrics == nil {
		return
	}
	for _, status := range domain.AllStatuses {
		s.metrics.SetStatusCount(status.Key(), counts[status])
	}
}
