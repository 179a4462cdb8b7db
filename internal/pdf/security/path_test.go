package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewPathValidator(t *testing.T) {
	if _, err := NewPathValidator(""); err == nil {
		t.Error("Expected error for empty directory")
	}

	validator, err := NewPathValidator("/non/existent/path")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if validator.GetConfiguredDirectory() != "/non/existent/path" {
		t.Errorf("Unexpected configured directory: %s", validator.GetConfiguredDirectory())
	}
}

func TestPathValidator_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	validator, err := NewPathValidator(tempDir)
	if err != nil {
		t.Fatalf("Failed to create validator: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{name: "file inside", path: filepath.Join(tempDir, "certificado.pdf"), wantError: false},
		{name: "nested file inside", path: filepath.Join(tempDir, "2025", "certificado.pdf"), wantError: false},
		{name: "directory itself", path: tempDir, wantError: false},
		{name: "traversal", path: filepath.Join(tempDir, "..", "other.pdf"), wantError: true},
		{name: "sibling with shared prefix", path: tempDir + "-other/certificado.pdf", wantError: true},
		{name: "empty", path: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePath(tt.path)
			if tt.wantError && err == nil {
				t.Errorf("Expected error for %s", tt.path)
			}
			if !tt.wantError && err != nil {
				t.Errorf("Unexpected error for %s: %v", tt.path, err)
			}
		})
	}
}

func TestPathValidator_SymlinkEscape(t *testing.T) {
	tempDir := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "secret.pdf")
	if err := os.WriteFile(target, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("Failed to write target: %v", err)
	}
	link := filepath.Join(tempDir, "link.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	validator, _ := NewPathValidator(tempDir)
	err := validator.ValidatePath(link)
	if !errors.Is(err, ErrOutsideDirectory) {
		t.Errorf("Expected ErrOutsideDirectory, got %v", err)
	}
}

func TestPathValidator_Resolve(t *testing.T) {
	tempDir := t.TempDir()
	validator, _ := NewPathValidator(tempDir)

	got, err := validator.Resolve("certificado.pdf")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != filepath.Join(tempDir, "certificado.pdf") {
		t.Errorf("Unexpected resolved path: %s", got)
	}

	if _, err := validator.Resolve("../escape.pdf"); err == nil {
		t.Error("Expected error for relative traversal")
	}
	if _, err := validator.Resolve("\x00"); err == nil {
		t.Error("Expected error for path made of null bytes")
	}
}

func TestPathValidator_ValidateDirectory(t *testing.T) {
	tempDir := t.TempDir()
	validator, _ := NewPathValidator(tempDir)

	file := filepath.Join(tempDir, "file.pdf")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if err := validator.ValidateDirectory(tempDir); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := validator.ValidateDirectory(file); err == nil {
		t.Error("Expected error for a file path")
	}
	if err := validator.ValidateDirectory(filepath.Join(tempDir, "missing")); err != nil {
		t.Errorf("Missing subdirectory should be allowed: %v", err)
	}
}
