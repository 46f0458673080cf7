// Package validation checks user supplied paths and names before charts are read or written.
// It guards against path traversal and unwritable output directories.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateOutputDirectory checks that charts can be written to dir. The directory may not
// exist yet, in which case its nearest existing ancestor must be writable.
func ValidateOutputDirectory(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	cleanPath := filepath.Clean(dir)
	if hasTraversal(dir) {
		return fmt.Errorf("path traversal detected in output directory: %s", dir)
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	existing := absPath
	for {
		info, err := os.Stat(existing)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("output path is not a directory: %s", existing)
			}
			break
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access output directory: %w", err)
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return fmt.Errorf("output directory has no existing ancestor: %s", absPath)
		}
		existing = parent
	}

	// Probe with a temp file
	testFile := filepath.Join(existing, ".astrochart_write_test")
	f, err := os.OpenFile(testFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("output directory is not writable: %s: %w", existing, err)
	}
	f.Close()
	os.Remove(testFile)

	return nil
}

// ValidateInputPath checks that a subject, aspects or settings file exists.
// mustBeDir selects whether a directory or a regular file is expected.
func ValidateInputPath(inputPath string, mustBeDir bool) error {
	if inputPath == "" {
		return fmt.Errorf("input path cannot be empty")
	}

	cleanPath := filepath.Clean(inputPath)
	if hasTraversal(inputPath) && !filepath.IsAbs(inputPath) {
		return fmt.Errorf("potentially unsafe path detected: %s", inputPath)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input path does not exist: %s", cleanPath)
		}
		return fmt.Errorf("failed to access input path: %w", err)
	}

	if mustBeDir && !info.IsDir() {
		return fmt.Errorf("input path must be a directory: %s", cleanPath)
	}
	if !mustBeDir && info.IsDir() {
		return fmt.Errorf("input path must be a file: %s", cleanPath)
	}

	return nil
}

// ValidateFileName checks that a subject name can be used as part of a file name
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("name %q must not contain path separators", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("name %q is not a valid file name", name)
	}
	return nil
}

// hasTraversal reports whether a path climbs out of its starting directory
func hasTraversal(path string) bool {
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

// Validator exposes the package functions as a value, for injection
type Validator struct{}

// ValidateOutputDirectory calls the package function of the same name
func (Validator) ValidateOutputDirectory(dir string) error {
	return ValidateOutputDirectory(dir)
}

// ValidateInputPath calls the package function of the same name
func (Validator) ValidateInputPath(path string, mustBeDir bool) error {
	return ValidateInputPath(path, mustBeDir)
}

// ValidateFileName calls the package function of the same name
func (Validator) ValidateFileName(name string) error {
	return ValidateFileName(name)
}
