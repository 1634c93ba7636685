package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateWorkspaceName validates a workspace name for safety and correctness.
// It rejects names that could be used for path traversal when the name becomes
// part of a file path or store key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateWorkspaceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidWorkspace, "workspace name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidWorkspace, "workspace name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWorkspace, "workspace name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
		"/",    // Path separator
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidWorkspace, "workspace name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a file path for safety. It prevents path traversal
// attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// structNameRegex matches valid C-style struct type names.
var structNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateStructName validates a struct type name (C identifier rules).
func ValidateStructName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "struct name cannot be empty")
	}

	if !structNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid struct name: %q", name)
	}

	return nil
}

// fieldNameRegex matches valid field references: a C identifier with an
// optional non-negative array subscript, e.g. "next" or "children[3]".
var fieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\[[0-9]+\])?$`)

// ValidateFieldName validates a connection's source field reference.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "field name cannot be empty")
	}

	if !fieldNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid field name: %q", name)
	}

	return nil
}

// exportFormats is the closed set of renderable output formats.
var exportFormats = map[string]bool{
	"dot": true,
	"svg": true,
	"png": true,
	"pdf": true,
}

// ValidateExportFormat validates an export format name.
func ValidateExportFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "export format cannot be empty")
	}

	if !exportFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported export format: %q (valid: dot, svg, png, pdf)", format)
	}

	return nil
}
