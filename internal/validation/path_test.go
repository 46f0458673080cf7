package validation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateOutputDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "chart.svg")
	if err := os.WriteFile(file, []byte("<svg/>"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "existing directory",
			path:    tmpDir,
			wantErr: false,
		},
		{
			name:    "directory to be created",
			path:    filepath.Join(tmpDir, "charts", "2024"),
			wantErr: false,
		},
		{
			name:    "path traversal attempt with ..",
			path:    tmpDir + "/../../../etc",
			wantErr: true,
		},
		{
			name:    "file instead of directory",
			path:    file,
			wantErr: true,
		},
		{
			name:    "below a file",
			path:    filepath.Join(file, "charts"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputDirectory(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputDirectory() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "charts")); !os.IsNotExist(err) {
		t.Errorf("ValidateOutputDirectory() must not create directories")
	}
}

func TestValidateInputPath(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "subject.yaml")
	testDir := filepath.Join(tmpDir, "subjects")

	if err := os.WriteFile(testFile, []byte("name: John"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := os.MkdirAll(testDir, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}

	tests := []struct {
		name      string
		path      string
		mustBeDir bool
		wantErr   bool
	}{
		{"empty path", "", false, true},
		{"valid file when file expected", testFile, false, false},
		{"valid directory when directory expected", testDir, true, false},
		{"file when directory expected", testFile, true, true},
		{"directory when file expected", testDir, false, true},
		{"non-existent path", "/nonexistent/subject.yaml", false, true},
		{"relative traversal", "../subject.yaml", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.path, tt.mustBeDir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"John Lennon", false},
		{"John & Yoko", false},
		{"Città", false},
		{"", true},
		{"   ", true},
		{"a/b", true},
		{`a\b`, true},
		{"..", true},
	}

	for _, tt := range tests {
		err := ValidateFileName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFileName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateOutputDirectory_Permissions(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping permission test when running as root")
	}
	if os.PathSeparator == '\\' {
		t.Skip("Skipping permission test on Windows")
	}

	tmpDir := t.TempDir()
	readOnlyDir := filepath.Join(tmpDir, "readonly")
	if err := os.MkdirAll(readOnlyDir, 0555); err != nil {
		t.Fatalf("Failed to create read-only directory: %v", err)
	}
	defer os.Chmod(readOnlyDir, 0755)

	if err := ValidateOutputDirectory(filepath.Join(readOnlyDir, "charts")); err == nil {
		t.Error("ValidateOutputDirectory() should fail below a read-only directory")
	}
}
