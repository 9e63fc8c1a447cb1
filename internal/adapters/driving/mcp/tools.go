package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
)

// SummaryInput is the input schema for the status_summary tool.
type SummaryInput struct{}

// SummaryOutput is the output schema for the status_summary tool.
type SummaryOutput struct {
	Counts      []StatusCountOutput `json:"counts"`
	Total       int                 `json:"total"`
	LastUpdated string              `json:"last_updated,omitempty"`
	Source      string              `json:"source"`
}

// StatusCountOutput is one dashboard status card.
type StatusCountOutput struct {
	Status      string `json:"status"`
	Count       int    `json:"count"`
	Description string `json:"description"`
}

// ListInput is the input schema for the list_applicants tool.
type ListInput struct {
	Search          string `json:"search,omitempty" jsonschema:"caseless text matched against id, full name and status"`
	IncludeApproved *bool  `json:"include_approved,omitempty" jsonschema:"list approved applications too (default true)"`
	Page            int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"applicants per page (default 5)"`
}

// ListOutput is the output schema for the list_applicants tool.
type ListOutput struct {
	Applicants []ApplicantRow `json:"applicants"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	TotalItems int            `json:"total_items"`
}

// ApplicantRow is one line of the applicant list.
type ApplicantRow struct {
	ID              string `json:"id"`
	ApplicationDate string `json:"application_date"`
	FullName        string `json:"full_name"`
	Status          string `json:"status"`
}

// GetInput is the input schema for the get_applicant tool.
type GetInput struct {
	ID string `json:"id" jsonschema:"the applicant id, e.g. APP001"`
}

// ApplicantDetail is the full record of one applicant.
type ApplicantDetail struct {
	ApplicantRow
	RatingScore int               `json:"rating_score"`
	Details     string            `json:"details"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Activity    []StageOutput     `json:"activity,omitempty"`
}

// StageOutput is one activity feed stage.
type StageOutput struct {
	Stage     string `json:"stage"`
	State     string `json:"state"`
	ReachedAt string `json:"reached_at,omitempty"`
}

// DecideInput is the input schema for the decide_applicant tool.
type DecideInput struct {
	ID       string `json:"id" jsonschema:"the applicant id"`
	Decision string `json:"decision" jsonschema:"approve or reject"`
	Comments string `json:"comments,omitempty" jsonschema:"reviewer comments, replacing the current details"`
}

// DecideOutput is the output schema for the decide_applicant tool.
type DecideOutput struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status_summary",
		Description: "Count applications per review status",
	}, s.handleSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_applicants",
		Description: "List applicants by application date, filtered by search text and approved status",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_applicant",
		Description: "Show the full record and activity feed of one applicant",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "decide_applicant",
		Description: "Approve or reject an applicant and save the decision to the backing source",
	}, s.handleDecide)
}

func (s *Server) handleSummary(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	return nil, s.summary(), nil
}

func (s *Server) summary() SummaryOutput {
	counts := s.ports.Applicants.StatusCounts()
	out := SummaryOutput{
		Counts: make([]StatusCountOutput, 0, len(domain.AllStatuses)),
		Total:  counts.Total(),
		Source: s.ports.Applicants.Path(),
	}
	for _, st := range domain.AllStatuses {
		out.Counts = append(out.Counts, StatusCountOutput{
			Status:      st.String(),
			Count:       counts[st],
			Description: st.Description(),
		})
	}
	if updated := s.ports.Applicants.LastUpdated(); !updated.IsZero() {
		out.LastUpdated = updated.Format(time.RFC3339)
	}
	return out
}

func (s *Server) handleList(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	req := domain.PageRequest{
		Search:          input.Search,
		IncludeApproved: true,
		PageIndex:       input.Page - 1,
		PageSize:        input.PageSize,
	}
	if input.IncludeApproved != nil {
		req.IncludeApproved = *input.IncludeApproved
	}

	page := s.ports.Review.Query(req)
	out := ListOutput{
		Applicants: make([]ApplicantRow, len(page.Items)),
		Page:       page.PageIndex + 1,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}
	for i := range page.Items {
		out.Applicants[i] = toRow(&page.Items[i])
	}
	return nil, out, nil
}

func (s *Server) handleGet(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetInput,
) (*mcp.CallToolResult, ApplicantDetail, error) {
	rec, err := s.ports.Applicants.FindByID(input.ID)
	if err != nil {
		return nil, ApplicantDetail{}, err
	}
	return nil, toDetail(rec), nil
}

func (s *Server) handleDecide(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DecideInput,
) (*mcp.CallToolResult, DecideOutput, error) {
	decision, err := domain.ParseDecision(input.Decision)
	if err != nil {
		return nil, DecideOutput{}, err
	}
	if _, err := s.ports.Applicants.FindByID(input.ID); err != nil {
		return nil, DecideOutput{}, err
	}

	session := domain.NewSession(domain.DefaultPageSize, true).
		Select(input.ID).
		SetComments(input.Comments)
	if _, err := s.ports.Review.Decide(ctx, session, decision); err != nil {
		return nil, DecideOutput{}, fmt.Errorf("deciding %s: %w", input.ID, err)
	}

	return nil, DecideOutput{
		ID:      input.ID,
		Status:  decision.Status().String(),
		Message: fmt.Sprintf("Application %s has been %s.", input.ID, decision.PastTense()),
	}, nil
}

func toRow(r *domain.ApplicantRecord) ApplicantRow {
	return ApplicantRow{
		ID:              r.ID,
		ApplicationDate: r.ApplicationDateText(),
		FullName:        r.FullName,
		Status:          r.Status.String(),
	}
}

func toDetail(r *domain.ApplicantRecord) ApplicantDetail {
	detail := ApplicantDetail{
		ApplicantRow: toRow(r),
		RatingScore:  r.RatingScore,
		Details:      r.Details,
		Attributes:   r.Attributes,
	}
	for i, e := range r.Activity {
		stage := StageOutput{Stage: e.Stage, State: r.Activity.State(i).String()}
		if e.Reached() {
			stage.ReachedAt = e.ReachedAt.Format(domain.DisplayDateLayout)
		}
		detail.Activity = append(detail.Activity, stage)
	}
	return detail
}
