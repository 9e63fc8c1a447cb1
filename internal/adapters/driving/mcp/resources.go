package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for reviewdesk resources.
	uriScheme = "reviewdesk://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "summary",
		Name:        "summary",
		Description: "Number of applications per review status",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "applicants/{applicantId}",
		Name:        "applicant",
		Description: "Full record of one applicant",
		MIMEType:    "application/json",
	}, s.handleApplicantResource)
}

// handleSummaryResource returns the status counts.
func (s *Server) handleSummaryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.summary(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling summary: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleApplicantResource returns one applicant record.
func (s *Server) handleApplicantResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractApplicantID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rec, err := s.ports.Applicants.FindByID(id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(toDetail(rec), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling applicant: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// extractApplicantID extracts the id from a URI like reviewdesk://applicants/{applicantId}.
func extractApplicantID(uri string) string {
	const prefix = uriScheme + "applicants/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return strings.TrimPrefix(uri, prefix)
}
