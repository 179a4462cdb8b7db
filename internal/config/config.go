package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/mcp-fines-reader/internal/certificate"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultWorkers     = 4
	DefaultTemplate    = "standard"

	// Directory permissions
	DefaultDirPerm = 0o750

	envPrefix = "MCP_FINES"
)

// Config holds all configuration for the fines certificate server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Certificate configuration
	CertificateDirectory string
	OutputDirectory      string // filings packs; defaults to <CertificateDirectory>/packs
	Template             string // record extraction template
	ArtifactPrefix       string
	ReferenceDate        string // DD-MM-YYYY; empty means today
	Workers              int

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:                 ModeStdio, // Default to stdio mode for MCP compatibility
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		CertificateDirectory: currentDir,
		Template:             DefaultTemplate,
		ArtifactPrefix:       certificate.DefaultArtifactPrefix,
		Workers:              DefaultWorkers,
		Version:              "1.0.0",
		ServerName:           "mcp-fines-reader",
		LogLevel:             DefaultLogLevel,
		MaxFileSize:          DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.CertificateDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.CertificateDirectory); err == nil {
			cfg.CertificateDirectory = expandedPath
		}
	}
	if cfg.OutputDirectory == "" && cfg.CertificateDirectory != "" {
		cfg.OutputDirectory = filepath.Join(cfg.CertificateDirectory, "packs")
	} else if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
		cfg.OutputDirectory = expandedPath
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.CertificateDirectory)
	viper.SetDefault("outdir", cfg.OutputDirectory)
	viper.SetDefault("template", cfg.Template)
	viper.SetDefault("prefix", cfg.ArtifactPrefix)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("refdate", cfg.ReferenceDate)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP/SSE server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.CertificateDirectory, "Directory containing certificate PDF files")
	pflag.String("outdir", cfg.OutputDirectory, "Directory where filings packs are written (default <dir>/packs)")
	pflag.String("template", cfg.Template, "Record extraction template (standard, roll-year)")
	pflag.String("prefix", cfg.ArtifactPrefix, "File name prefix of generated filings")
	pflag.Int("workers", cfg.Workers, "Certificates analyzed concurrently in batch operations")
	pflag.String("refdate", cfg.ReferenceDate, "Reference date DD-MM-YYYY for eligibility (default today)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "host", "port", "dir", "outdir", "template",
		"prefix", "workers", "refdate", "loglevel", "maxfilesize",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Fines Reader - A Model Context Protocol server for unpaid traffic fines certificates\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                   # stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/certificados       # stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --template=roll-year              # certificates with a separate AÑO ROL\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --port=8081         # SSE server mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_DIR         Certificate directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_OUTDIR      Filings output directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_TEMPLATE    Record extraction template\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_PREFIX      Filing name prefix\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_WORKERS     Batch concurrency\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_REFDATE     Reference date\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_FINES_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.CertificateDirectory = viper.GetString("dir")
	cfg.OutputDirectory = viper.GetString("outdir")
	cfg.Template = viper.GetString("template")
	cfg.ArtifactPrefix = viper.GetString("prefix")
	cfg.Workers = viper.GetInt("workers")
	cfg.ReferenceDate = viper.GetString("refdate")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate certificate directory
	if c.CertificateDirectory == "" {
		return errors.New("certificate directory cannot be empty")
	}

	// Check if the directory exists, create if it doesn't
	if _, err := os.Stat(c.CertificateDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.CertificateDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create certificate directory %s: %w", c.CertificateDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access certificate directory %s: %w", c.CertificateDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}

	if _, err := certificate.TemplateByName(c.Template); err != nil {
		return err
	}

	if c.ReferenceDate != "" {
		if _, ok := certificate.ParseEntryDate(c.ReferenceDate); !ok {
			return fmt.Errorf("invalid reference date: %s (expected DD-MM-YYYY)", c.ReferenceDate)
		}
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Clock returns the clock eligibility is measured against: the reference
// date at noon local time when one is set, the system clock otherwise.
func (c *Config) Clock() certificate.Clock {
	if c.ReferenceDate == "" {
		return certificate.SystemClock{}
	}
	date, ok := certificate.ParseEntryDate(c.ReferenceDate)
	if !ok {
		return certificate.SystemClock{}
	}
	return certificate.FixedClock(time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.Local))
}

// ExtractionTemplate returns the configured record template, falling back
// to the standard one for unknown names.
func (c *Config) ExtractionTemplate() certificate.Template {
	tmpl, err := certificate.TemplateByName(c.Template)
	if err != nil {
		return certificate.StandardTemplate
	}
	return tmpl
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, CertificateDirectory: %s, OutputDirectory: %s, "+
		"Template: %s, Workers: %d, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.CertificateDirectory, c.OutputDirectory,
		c.Template, c.Workers, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
