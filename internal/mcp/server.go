package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-fines-reader/internal/batch"
	"github.com/a3tai/mcp-fines-reader/internal/config"
	"github.com/a3tai/mcp-fines-reader/internal/descriptions"
	"github.com/a3tai/mcp-fines-reader/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *pdf.Service
	batch     *batch.Processor
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *pdf.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		service:   service,
		batch:     batch.NewProcessor(service, cfg.Workers),
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	pathParam := mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the certificate PDF, absolute or relative to the configured directory"),
	)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.CertificateAnalyze,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.CertificateAnalyze)),
		pathParam,
	), s.handleCertificateAnalyze)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.CertificateValidate,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.CertificateValidate)),
		pathParam,
	), s.handleCertificateValidate)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.CertificateGeneratePack,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.CertificateGeneratePack)),
		pathParam,
	), s.handleCertificateGeneratePack)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.CertificateSearchDirectory,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.CertificateSearchDirectory)),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	), s.handleCertificateSearchDirectory)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.CertificateBatchAnalyze,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.CertificateBatchAnalyze)),
		mcp.WithArray("paths",
			mcp.Required(),
			mcp.Description("Paths to certificate PDFs"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleCertificateBatchAnalyze)

	s.mcpServer.AddTool(mcp.NewTool(
		descriptions.CertificateServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.CertificateServerInfo)),
	), s.handleCertificateServerInfo)
}

// Handler functions
func (s *Server) handleCertificateAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.AnalyzeFile(pdf.CertificateAnalyzeRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatAnalyzeResult(result)), nil
}

func (s *Server) handleCertificateValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.ValidateFile(pdf.CertificateValidateRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	switch {
	case !result.Valid:
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	case !result.Recognized:
		responseText = fmt.Sprintf("%s is a valid PDF (%d pages) but not a fines certificate: %s",
			result.Path, result.Pages, result.Message)
	default:
		responseText = fmt.Sprintf("%s is a readable fines certificate (%d pages)", result.Path, result.Pages)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleCertificateGeneratePack(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.GeneratePack(pdf.CertificatePackRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Filings pack written to: %s\n", result.PackPath)
	text += fmt.Sprintf("Plate: %s\n", result.Outcome.Subject.Plate)
	text += fmt.Sprintf("Fines included: %d\n", len(result.Outcome.Records))
	text += "\nFiles:\n"
	for i, name := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, name)
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleCertificateSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.CertificateDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	result, err := s.service.SearchDirectory(pdf.CertificateSearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleCertificateBatchAnalyze(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	paths, err := stringSlice(request.GetArguments()["paths"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths cannot be empty"), nil
	}

	report, err := s.batch.Run(ctx, paths)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch interrupted: %v", err)), nil
	}

	return mcp.NewToolResultText(s.formatBatchReport(report)), nil
}

func (s *Server) handleCertificateServerInfo(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	result := s.service.ServerInfo(s.config.ServerName, s.config.Version)
	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// stringSlice converts a JSON array argument into strings
func stringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("paths[%d] must be a string", i)
			}
			out = append(out, str)
		}
		return out, nil
	case nil:
		return nil, errors.New("required argument \"paths\" not found")
	default:
		return nil, fmt.Errorf("paths must be an array of strings, got %T", value)
	}
}

// Formatting methods
func (s *Server) formatAnalyzeResult(result *pdf.CertificateAnalyzeResult) string {
	if result.Outcome.IsRejected() {
		return fmt.Sprintf("%s is not a recognized certificate of unpaid traffic fines", result.Path)
	}

	subject := result.Outcome.Subject
	text := fmt.Sprintf("Certificate: %s\n", result.Path)
	text += fmt.Sprintf("Analysis ID: %s\n", result.ID)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Plate: %s\n", subject.Plate)
	text += fmt.Sprintf("Owner: %s\n", subject.FullName)
	text += fmt.Sprintf("R.U.N: %s\n", subject.NationalID)

	if !result.Outcome.HasRecords() {
		text += "\nNo fines older than three years were found.\n"
		return text
	}

	text += fmt.Sprintf("\nFines eligible for prescription: %d\n", len(result.Outcome.Records))
	text += fmt.Sprintf("Estimated savings: $%d CLP\n", result.EstimatedSavings)
	for _, g := range result.Groups {
		text += fmt.Sprintf("\n%s (%d)\n", g.CourtName, len(g.Records))
		for _, r := range g.Records {
			text += fmt.Sprintf("  • Rol %s, ingreso %s\n", r.CaseRoll, r.EntryDate)
		}
	}

	return text
}

func (s *Server) formatSearchDirectoryResult(result *pdf.CertificateSearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatBatchReport(report *batch.Report) string {
	text := fmt.Sprintf("Analyzed %d certificate(s): %d accepted, %d rejected, %d failed\n",
		len(report.Items), report.Accepted, report.Rejected, report.Failed)
	text += fmt.Sprintf("Eligible fines: %d, estimated savings: $%d CLP\n\n",
		report.TotalRecords, report.EstimatedSavings)

	for i, item := range report.Items {
		switch {
		case item.Error != "":
			text += fmt.Sprintf("%d. %s: error: %s\n", i+1, item.Path, item.Error)
		case item.Result.Outcome.IsRejected():
			text += fmt.Sprintf("%d. %s: not a fines certificate\n", i+1, item.Path)
		default:
			text += fmt.Sprintf("%d. %s: plate %s, %d eligible fine(s)\n", i+1, item.Path,
				item.Result.Outcome.Subject.Plate, len(item.Result.Outcome.Records))
		}
	}

	return text
}

func (s *Server) formatServerInfoResult(result *pdf.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📦 Output Directory: %s\n", result.OutputDirectory)
	text += fmt.Sprintf("🧩 Template: %s\n", result.Template)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No PDF files found in default directory\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + strings.TrimSpace(result.UsageGuidance)

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting fines MCP server in stdio mode")
		log.Printf("Certificate directory: %s", s.config.CertificateDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over SSE until ctx is cancelled
func (s *Server) runServerMode(ctx context.Context) error {
	sseServer := server.NewSSEServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting fines MCP server on %s (SSE)", s.config.Address())
		errCh <- sseServer.Start(s.config.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	case <-ctx.Done():
		if err := sseServer.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("failed to shut down SSE server: %w", err)
		}
		return nil
	}
}
