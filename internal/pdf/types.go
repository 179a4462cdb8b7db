package pdf

import "github.com/a3tai/mcp-fines-reader/internal/certificate"

// FileInfo represents information about a PDF file
type FileInfo struct {
	Path         string  `json:"path"`
	Name         string  `json:"name"`
	Size         int64   `json:"size"`
	ModifiedTime string  `json:"modified_time"`
	Score        float64 `json:"score,omitempty"` // name similarity to the search query
}

// Request Types

// CertificateAnalyzeRequest represents a request to analyze a fines certificate
type CertificateAnalyzeRequest struct {
	Path string `json:"path"`
}

// CertificateValidateRequest represents a request to validate a certificate file
type CertificateValidateRequest struct {
	Path string `json:"path"`
}

// CertificatePackRequest represents a request to generate the filings pack
type CertificatePackRequest struct {
	Path string `json:"path"`
}

// CertificateSearchDirectoryRequest represents a request to search for certificates in a directory
type CertificateSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// CertificateAnalyzeResult represents the result of analyzing one certificate
type CertificateAnalyzeResult struct {
	ID               string                   `json:"id"`
	Path             string                   `json:"path"`
	Pages            int                      `json:"pages"`
	Size             int64                    `json:"size"`
	Outcome          certificate.Outcome      `json:"outcome"`
	Groups           []certificate.CourtGroup `json:"groups,omitempty"`
	EstimatedSavings int64                    `json:"estimated_savings"`
}

// CertificateValidateResult represents the result of validating a certificate file
type CertificateValidateResult struct {
	Path       string `json:"path"`
	Valid      bool   `json:"valid"`      // readable PDF
	Recognized bool   `json:"recognized"` // looks like a fines certificate
	Pages      int    `json:"pages"`
	Message    string `json:"message,omitempty"`
}

// CertificatePackResult represents a generated filings pack
type CertificatePackResult struct {
	Path     string              `json:"path"`
	PackPath string              `json:"pack_path"`
	Files    []string            `json:"files"`
	Outcome  certificate.Outcome `json:"outcome"`
}

// CertificateSearchDirectoryResult represents the result of a directory search
type CertificateSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// ToolInfo describes one of the tools the server exposes
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	OutputDirectory   string     `json:"output_directory"`
	Template          string     `json:"template"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}
