package tui

import (
	"context"
	"time"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
)

// MockApplicantService implements driving.ApplicantService for testing.
type MockApplicantService struct {
	LoadFunc          func(ctx context.Context) error
	AllFunc           func() []domain.ApplicantRecord
	FindByIDFunc      func(id string) (*domain.ApplicantRecord, error)
	ApplyDecisionFunc func(ctx context.Context, id string, d domain.Decision, comments string) (domain.RecordSet, error)
}

func (m *MockApplicantService) Load(ctx context.Context) error {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil
}

func (m *MockApplicantService) All() []domain.ApplicantRecord {
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil
}

func (m *MockApplicantService) FindByID(id string) (*domain.ApplicantRecord, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockApplicantService) ApplyDecision(
	ctx context.Context, id string, d domain.Decision, comments string,
) (domain.RecordSet, error) {
	if m.ApplyDecisionFunc != nil {
		return m.ApplyDecisionFunc(ctx, id, d, comments)
	}
	return domain.RecordSet{}, nil
}

func (m *MockApplicantService) StatusCounts() domain.StatusCounts {
	return domain.CountStatuses(m.All())
}

func (m *MockApplicantService) LastUpdated() time.Time {
	return time.Time{}
}

func (m *MockApplicantService) Path() string {
	return "mock.csv"
}

// MockReviewService implements driving.ReviewService for testing.
type MockReviewService struct {
	DashboardFunc func(session domain.Session) driving.Dashboard
}

func (m *MockReviewService) Query(req domain.PageRequest) domain.Page {
	return domain.Page{PageSize: req.PageSize, TotalPages: 1}
}

func (m *MockReviewService) Dashboard(session domain.Session) driving.Dashboard {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(session)
	}
	return driving.Dashboard{Session: session, Counts: domain.CountStatuses(nil)}
}

func (m *MockReviewService) Decide(
	_ context.Context, session domain.Session, d domain.Decision,
) (domain.Session, error) {
	return session.DecisionSaved(d, time.Now()), nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
	GetErr   error
	SetFunc  func(key, value string) error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Settings = *settings
	return nil
}

func (m *MockSettingsService) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *MockSettingsService) Validate(_ *domain.AppSettings) error {
	return nil
}

// MockWatcher implements driven.SourceWatcher for testing.
type MockWatcher struct {
	Changes chan domain.SourceChange
	Err     error
}

func (m *MockWatcher) Watch(_ context.Context) (<-chan domain.SourceChange, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Changes, nil
}
