package pdf

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/mcp-fines-reader/internal/certificate"
	"github.com/a3tai/mcp-fines-reader/internal/filing"
	"github.com/a3tai/mcp-fines-reader/internal/pdf/security"
)

// EstimatedSavingsPerFine is the average amount, in CLP, a prescribed fine
// saves its owner.
const EstimatedSavingsPerFine = 65000

// ErrNotCertificate is returned when a pack is requested for a document that
// is not a fines certificate.
var ErrNotCertificate = errors.New("document is not a recognized fines certificate")

// PageExtractor returns the text of each page of a document.
type PageExtractor interface {
	ExtractPages(path string) ([]string, error)
}

// Options configures a Service.
type Options struct {
	MaxFileSize     int64
	Directory       string // certificates are read only from here
	OutputDirectory string // packs are written here; defaults to <Directory>/packs
	Template        certificate.Template
	ArtifactPrefix  string
	Clock           certificate.Clock
	Extractor       PageExtractor // defaults to a Reader
	Debug           bool
}

// Service handles certificate operations by orchestrating the PDF and
// certificate components
type Service struct {
	maxFileSize     int64
	outputDirectory string
	artifactPrefix  string
	clock           certificate.Clock
	debug           bool
	reader          PageExtractor
	validator       *Validator
	search          *Search
	parser          *certificate.Parser
	pathValidator   *security.PathValidator
}

// NewService creates a new certificate service with all components
func NewService(opts Options) (*Service, error) {
	pathValidator, err := security.NewPathValidator(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	if opts.OutputDirectory == "" {
		opts.OutputDirectory = filepath.Join(opts.Directory, "packs")
	}
	if opts.Template.Name == "" {
		opts.Template = certificate.StandardTemplate
	}
	if opts.ArtifactPrefix == "" {
		opts.ArtifactPrefix = certificate.DefaultArtifactPrefix
	}
	if opts.Clock == nil {
		opts.Clock = certificate.SystemClock{}
	}
	if opts.Extractor == nil {
		opts.Extractor = NewReader(opts.MaxFileSize)
	}

	return &Service{
		maxFileSize:     opts.MaxFileSize,
		outputDirectory: opts.OutputDirectory,
		artifactPrefix:  opts.ArtifactPrefix,
		clock:           opts.Clock,
		debug:           opts.Debug,
		reader:          opts.Extractor,
		validator:       NewValidator(opts.MaxFileSize),
		search:          NewSearch(opts.MaxFileSize),
		parser:          certificate.NewParser(opts.Template),
		pathValidator:   pathValidator,
	}, nil
}

// AnalyzeFile reads a certificate and returns its eligible fines grouped by
// court. Files that cannot be read as text are reported as rejected; only
// paths outside the configured directory are errors.
func (s *Service) AnalyzeFile(req CertificateAnalyzeRequest) (*CertificateAnalyzeResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	result := &CertificateAnalyzeResult{
		ID:      uuid.NewString(),
		Path:    path,
		Outcome: certificate.Rejected(),
	}
	if info, err := os.Stat(path); err == nil {
		result.Size = info.Size()
	}

	pages, err := s.reader.ExtractPages(path)
	if err != nil {
		s.debugf("analyze %s: %v", path, err)
		return result, nil
	}
	result.Pages = len(pages)
	result.Outcome = s.parser.ParsePages(pages, s.clock.Now())

	if result.Outcome.HasRecords() {
		result.Groups = certificate.GroupByCourt(result.Outcome.Records)
		result.EstimatedSavings = int64(len(result.Outcome.Records)) * EstimatedSavingsPerFine
	}

	s.debugf("analyze %s: status=%s records=%d", path, result.Outcome.Status, len(result.Outcome.Records))
	return result, nil
}

// ValidateFile checks that a file is a readable PDF and whether its text
// looks like a fines certificate
func (s *Service) ValidateFile(req CertificateValidateRequest) (*CertificateValidateResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	result, err := s.validator.ValidateFile(CertificateValidateRequest{Path: path})
	if err != nil || !result.Valid {
		return result, err
	}

	pages, err := s.reader.ExtractPages(path)
	if err != nil {
		result.Message = err.Error()
		return result, nil
	}
	outcome := s.parser.ParsePages(pages, s.clock.Now())
	result.Recognized = !outcome.IsRejected()
	if !result.Recognized {
		result.Message = ErrNotCertificate.Error()
	}
	return result, nil
}

// GeneratePack analyzes a certificate and writes its filings pack into the
// output directory.
func (s *Service) GeneratePack(req CertificatePackRequest) (*CertificatePackResult, error) {
	analysis, err := s.AnalyzeFile(CertificateAnalyzeRequest(req))
	if err != nil {
		return nil, err
	}
	if analysis.Outcome.IsRejected() {
		return nil, fmt.Errorf("%w: %s", ErrNotCertificate, analysis.Path)
	}

	pack, err := filing.BuildPack(analysis.Outcome.Subject, analysis.Outcome.Records, s.artifactPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to build pack: %w", err)
	}

	if err := os.MkdirAll(s.outputDirectory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	packPath := filepath.Join(s.outputDirectory, pack.Name)
	if err := os.WriteFile(packPath, pack.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write pack: %w", err)
	}

	s.debugf("pack %s: %d files", packPath, len(pack.Files))
	return &CertificatePackResult{
		Path:     analysis.Path,
		PackPath: packPath,
		Files:    pack.Files,
		Outcome:  analysis.Outcome,
	}, nil
}

// SearchDirectory searches for PDF files in a directory
func (s *Service) SearchDirectory(req CertificateSearchDirectoryRequest) (*CertificateSearchDirectoryResult, error) {
	// Fall back to the configured directory
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// GetOutputDirectory returns where packs are written
func (s *Service) GetOutputDirectory() string {
	return s.outputDirectory
}

// ServerInfo returns server information and usage guidance
func (s *Service) ServerInfo(serverName, version string) *ServerInfoResult {
	directory := s.pathValidator.GetConfiguredDirectory()

	// Bound the directory scan so a huge tree cannot stall the call.
	resultChan := make(chan []FileInfo, 1)
	go func() {
		files, err := s.search.FindPDFsInDirectoryLimited(directory, 100)
		if err != nil {
			files = []FileInfo{}
		}
		resultChan <- files
	}()

	directoryContents := []FileInfo{}
	select {
	case files := <-resultChan:
		directoryContents = files
	case <-time.After(5 * time.Second):
	}

	availableTools := []ToolInfo{
		{
			Name:        "certificate_analyze",
			Description: "Extract the owner, plate and prescribable fines from a certificate",
			Usage:       "Use this tool on a certificate of unpaid traffic fines to list the fines older than three years.",
			Parameters:  "path (required): Path to the certificate PDF",
		},
		{
			Name:        "certificate_validate",
			Description: "Check that a file is a readable PDF and a fines certificate",
			Usage:       "Use this tool before analyzing a file of unknown origin.",
			Parameters:  "path (required): Path to the PDF file",
		},
		{
			Name:        "certificate_generate_pack",
			Description: "Generate the filings pack for a certificate",
			Usage:       "Use this tool to write a ZIP with one petition per court, instructions and a summary sheet.",
			Parameters:  "path (required): Path to the certificate PDF",
		},
		{
			Name:        "certificate_search_directory",
			Description: "Search for certificate PDFs with optional fuzzy search",
			Usage:       "Use this tool to find certificates in the default directory or a subdirectory.",
			Parameters: "directory (optional): Directory to search (uses default if empty), " +
				"query (optional): Search query for fuzzy matching",
		},
		{
			Name:        "certificate_batch_analyze",
			Description: "Analyze several certificates concurrently",
			Usage:       "Use this tool to process a list of certificates in one call.",
			Parameters:  "paths (required): Paths to certificate PDFs",
		},
	}

	usageGuidance := `Fines Certificate MCP Server Usage Guide:

1. Use 'certificate_search_directory' to find certificates.
2. Use 'certificate_validate' to check a file is a readable fines certificate.
3. Use 'certificate_analyze' to list the fines eligible for prescription.
   A fine is eligible when more than 1095 days have passed since its
   registry entry date.
4. Use 'certificate_generate_pack' to produce the filings for each court.
   The ZIP is written to ` + s.outputDirectory + `.

Files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB are accepted. Scanned certificates without a text
layer are rejected.`

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  directory,
		OutputDirectory:   s.outputDirectory,
		Template:          s.parser.Template().Name,
		MaxFileSize:       s.maxFileSize,
		AvailableTools:    availableTools,
		DirectoryContents: directoryContents,
		UsageGuidance:     usageGuidance,
	}
}

func (s *Service) debugf(format string, args ...any) {
	if s.debug {
		log.Printf(format, args...)
	}
}
