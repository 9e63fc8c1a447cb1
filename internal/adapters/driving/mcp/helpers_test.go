package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reviewdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/services"
)

var submitted = time.Date(2024, 5, 6, 10, 0, 0, 0, time.Local)

func record(id, name string, status domain.Status, hours int) domain.ApplicantRecord {
	return domain.ApplicantRecord{
		ID:              id,
		ApplicationDate: submitted.Add(time.Duration(hours) * time.Hour),
		FullName:        name,
		Status:          status,
		RatingScore:     7,
		Details:         "documents complete",
		Activity:        domain.NewActivityFeed(submitted, 3),
		Attributes:      map[string]string{domain.ColumnNationality: "Malaysian"},
	}
}

func newTestServer(t *testing.T) (*Server, *memory.ApplicantSource) {
	t.Helper()
	src := memory.NewApplicantSource(domain.RecordSet{
		Columns: domain.DefaultColumns,
		Records: []domain.ApplicantRecord{
			record("APP001", "Siti Tan", domain.StatusPendingApproval, 1),
			record("APP002", "Ryan Lim", domain.StatusApproved, 2),
			record("APP003", "Ayu Santos", domain.StatusAlerts, 3),
		},
	})
	store := services.NewApplicantStore(src, nil)
	require.NoError(t, store.Load(context.Background()))

	server, err := NewServer(&Ports{
		Applicants: store,
		Review:     services.NewReviewService(store),
	})
	require.NoError(t, err)
	return server, src
}
