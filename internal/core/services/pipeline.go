package services

import (
	"slices"
	"strings"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// MatchesSearch reports whether the id, full name or status label of r
// contains search, ignoring case. Empty search matches every record.
func MatchesSearch(r *domain.ApplicantRecord, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(r.ID), needle) ||
		strings.Contains(strings.ToLower(r.FullName), needle) ||
		strings.Contains(strings.ToLower(r.Status.String()), needle)
}

// FilterApplicants keeps records matching search, dropping Approved records
// unless includeApproved is set. The input is not modified.
func FilterApplicants(records []domain.ApplicantRecord, search string, includeApproved bool) []domain.ApplicantRecord {
	out := make([]domain.ApplicantRecord, 0, len(records))
	for i := range records {
		if !includeApproved && records[i].Status == domain.StatusApproved {
			continue
		}
		if !MatchesSearch(&records[i], search) {
			continue
		}
		out = append(out, records[i])
	}
	return out
}

// SortByApplicationDate orders records by ascending application date in
// place. Records without a parsed date go last. Equal dates keep their
// relative order.
func SortByApplicationDate(records []domain.ApplicantRecord) {
	slices.SortStableFunc(records, func(a, b domain.ApplicantRecord) int {
		aok, bok := a.HasApplicationDate(), b.HasApplicationDate()
		switch {
		case aok && bok:
			return a.ApplicationDate.Compare(b.ApplicationDate)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
}

// Paginate returns page pageIndex of records. The index is clamped into
// [0, TotalPages-1] so a shrinking result never yields an empty page
// beyond the end.
func Paginate(records []domain.ApplicantRecord, pageIndex, pageSize int) domain.Page {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	total := len(records)
	pages := domain.TotalPages(total, pageSize)
	pageIndex = domain.ClampPageIndex(pageIndex, pages)

	start := pageIndex * pageSize
	end := min(start+pageSize, total)
	start = min(start, end)

	return domain.Page{
		Items:      records[start:end:end],
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

// BuildPage runs filter, sort and paginate over records.
func BuildPage(records []domain.ApplicantRecord, req domain.PageRequest) domain.Page {
	filtered := FilterApplicants(records, req.Search, req.IncludeApproved)
	SortByApplicationDate(filtered)
	return Paginate(filtered, req.PageIndex, req.PageSize)
}
