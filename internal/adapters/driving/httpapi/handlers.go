package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/logger"
)

// SummaryResponse is the body of GET /api/summary.
type SummaryResponse struct {
	Counts      map[string]int `json:"counts"`
	Total       int            `json:"total"`
	LastUpdated *time.Time     `json:"last_updated,omitempty"`
	Source      string         `json:"source"`
}

// ListResponse is the body of GET /api/applicants.
type ListResponse struct {
	Items      []domain.ApplicantRecord `json:"items"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalItems int                      `json:"total_items"`
	TotalPages int                      `json:"total_pages"`
}

// DecisionRequest is the body of POST /api/applicants/{id}/decision.
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Comments string `json:"comments" validate:"max=4000"`
}

// DecisionResponse confirms a saved decision.
type DecisionResponse struct {
	Applicant domain.ApplicantRecord `json:"applicant"`
	Message   string                 `json:"message"`
	SavedAt   time.Time              `json:"saved_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	counts := s.applicants.StatusCounts()
	resp := SummaryResponse{
		Counts: make(map[string]int, len(counts)),
		Total:  counts.Total(),
		Source: s.applicants.Path(),
	}
	for st, n := range counts {
		resp.Counts[st.Key()] = n
	}
	if updated := s.applicants.LastUpdated(); !updated.IsZero() {
		resp.LastUpdated = &updated
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page := s.review.Query(req)
	writeJSON(w, http.StatusOK, ListResponse{
		Items:      page.Items,
		Page:       page.PageIndex + 1,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	})
}

// pageRequest reads the list query. page is 1-based; include_approved
// defaults to true.
func pageRequest(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	req := domain.PageRequest{
		Search:          q.Get("search"),
		IncludeApproved: true,
		PageSize:        domain.DefaultPageSize,
	}

	if v := q.Get("include_approved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("%w: include_approved must be true or false", domain.ErrInvalidInput)
		}
		req.IncludeApproved = b
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return req, fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidInput)
		}
		req.PageIndex = n - 1
	}
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			return req, fmt.Errorf("%w: page_size must be between 1 and 500", domain.ErrInvalidInput)
		}
		req.PageSize = n
	}
	return req, nil
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.applicants.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body DecisionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err))
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	decision, err := domain.ParseDecision(body.Decision)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.applicants.FindByID(id); err != nil {
		writeError(w, r, err)
		return
	}

	session := domain.NewSession(domain.DefaultPageSize, true).Select(id).SetComments(body.Comments)
	next, err := s.review.Decide(r.Context(), session, decision)
	if err != nil {
		logger.Warn("Decision %s on %s failed: %v", decision, id, err)
		writeError(w, r, err)
		return
	}

	rec, err := s.applicants.FindByID(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := DecisionResponse{
		Applicant: *rec,
		Message:   fmt.Sprintf("Application %s has been %s.", id, decision.PastTense()),
	}
	if next.Confirmation != nil {
		resp.SavedAt = next.Confirmation.SavedAt
	}
	writeJSON(w, http.StatusOK, resp)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, "; "))
}
