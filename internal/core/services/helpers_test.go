package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)

func applicant(id, name string, status domain.Status, hoursAfterBase int) domain.ApplicantRecord {
	date := baseTime.Add(time.Duration(hoursAfterBase) * time.Hour)
	return domain.ApplicantRecord{
		ID:                 id,
		ApplicationDate:    date,
		ApplicationDateRaw: date.Format(domain.DisplayDateLayout),
		FullName:           name,
		Status:             status,
		Details:            "initial notes",
	}
}

// sampleSet holds seven applicants listed out of date order.
func sampleSet() domain.RecordSet {
	return domain.RecordSet{
		Columns: domain.RequiredColumns,
		Records: []domain.ApplicantRecord{
			applicant("APP003", "Carol Ng", domain.StatusAlerts, 30),
			applicant("APP001", "Ann Lee", domain.StatusPendingApproval, 10),
			applicant("APP002", "Bob Tan", domain.StatusApproved, 20),
			applicant("APP004", "Dan Ong", domain.StatusInProgress, 5),
			applicant("APP005", "Eve Lim", domain.StatusRejected, 50),
			applicant("APP006", "Fay Koh", domain.StatusPendingApproval, 40),
			applicant("APP007", "Gus Teo", domain.StatusApproved, 1),
		},
	}
}

func loadedStore(t *testing.T) (*ApplicantStore, *memory.ApplicantSource) {
	t.Helper()
	src := memory.NewApplicantSource(sampleSet())
	store := NewApplicantStore(src, nil)
	require.NoError(t, store.Load(context.Background()))
	return store, src
}

func ids(records []domain.ApplicantRecord) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].ID
	}
	return out
}

type decisionObservation struct {
	Decision string
	Outcome  string
}

// recordingMetrics captures what the store reports.
type recordingMetrics struct {
	mu        sync.Mutex
	loads     []int
	decisions []decisionObservation
	counts    map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counts: make(map[string]int)}
}

func (m *recordingMetrics) ObserveLoad(n int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, n)
}

func (m *recordingMetrics) ObserveDecision(decision, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, decisionObservation{decision, outcome})
}

func (m *recordingMetrics) SetStatusCount(status string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[status] = n
}
