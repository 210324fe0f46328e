// Package mcp exposes the readiness checklist as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/readycheck/internal/readiness"
	"github.com/Aman-CERP/readycheck/pkg/version"
)

const serverName = "readycheck"

// Server bridges MCP clients with the readiness checker.
type Server struct {
	mcp     *mcp.Server
	checker *readiness.Checker
	items   []readiness.RequirementItem
	logger  *slog.Logger
}

// CheckInput is the (empty) input of check_readiness.
type CheckInput struct{}

// CheckOutput is the structured result of check_readiness.
type CheckOutput struct {
	Ready   bool          `json:"ready" jsonschema:"true when every requirement passed"`
	Passed  int           `json:"passed" jsonschema:"number of requirements that passed"`
	Failed  int           `json:"failed" jsonschema:"number of requirements that failed"`
	Summary string        `json:"summary" jsonschema:"one-line verdict as printed by the CLI"`
	Checks  []CheckStatus `json:"checks" jsonschema:"per-requirement results in checklist order"`
}

// CheckStatus is one requirement's outcome.
type CheckStatus struct {
	Kind   string `json:"kind" jsonschema:"file or module"`
	Target string `json:"target" jsonschema:"path or module name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty" jsonschema:"failure detail, empty on success"`
}

// ListInput is the (empty) input of list_requirements.
type ListInput struct{}

// ListOutput enumerates the checklist without evaluating it.
type ListOutput struct {
	Requirements []Requirement `json:"requirements"`
}

// Requirement describes one checklist entry.
type Requirement struct {
	Kind        string `json:"kind"`
	Target      string `json:"target"`
	Loader      string `json:"loader,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewServer creates a server that evaluates items with checker.
func NewServer(checker *readiness.Checker, items []readiness.RequirementItem) (*Server, error) {
	if checker == nil {
		return nil, errors.New("readiness checker is required")
	}

	s := &Server{
		mcp:     mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version.Version}, nil),
		checker: checker,
		items:   items,
		logger:  slog.Default(),
	}
	s.registerTools()
	return s, nil
}

// SetLogger replaces the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "check_readiness",
		Description: "Run the deployment checklist in the project directory. Reports each required file and importable module, and whether the project is ready to deploy.",
	}, s.checkReadinessHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_requirements",
		Description: "List the deployment checklist without evaluating it.",
	}, s.listRequirementsHandler)

	s.logger.Debug("MCP tools registered", slog.Int("count", 2))
}

func (s *Server) checkReadinessHandler(ctx context.Context, _ *mcp.CallToolRequest, _ CheckInput) (
	*mcp.CallToolResult,
	CheckOutput,
	error,
) {
	report := s.checker.Run(ctx, s.items)
	if err := ctx.Err(); err != nil {
		return nil, CheckOutput{}, fmt.Errorf("check readiness: %w", err)
	}

	passed, failed := report.Counts()
	out := CheckOutput{
		Ready:   report.Passed(),
		Passed:  passed,
		Failed:  failed,
		Summary: readiness.SummaryLine(report),
		Checks:  make([]CheckStatus, len(report.Results)),
	}
	for i, res := range report.Results {
		out.Checks[i] = CheckStatus{
			Kind:   res.Item.Kind.String(),
			Target: res.Item.Target,
			Passed: res.Passed,
			Detail: res.Detail,
		}
	}

	s.logger.Info("check_readiness",
		slog.Bool("ready", out.Ready),
		slog.Int("passed", passed),
		slog.Int("failed", failed))
	return nil, out, nil
}

func (s *Server) listRequirementsHandler(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (
	*mcp.CallToolResult,
	ListOutput,
	error,
) {
	out := ListOutput{Requirements: make([]Requirement, len(s.items))}
	for i, item := range s.items {
		req := Requirement{
			Kind:        item.Kind.String(),
			Target:      item.Target,
			Description: item.Description,
		}
		if item.Kind == readiness.KindModuleImportable {
			req.Loader = item.Loader
		}
		out.Requirements[i] = req
	}
	return nil, out, nil
}

// Serve runs the server on stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server", slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return fmt.Errorf("serve MCP: %w", err)
	}
	s.logger.Info("MCP server stopped")
	return nil
}
