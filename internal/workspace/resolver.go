package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spyglass/internal/domain"
	"spyglass/internal/logging"
)

// reservedDeviceNames are Windows device names that collide with real files
// when content is later persisted to disk. Matched against the first
// dot-segment of the filename, uppercased.
var reservedDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Resolver validates caller-supplied paths against a workspace root.
// AllowAbsolute controls whether absolute paths bypass workspace-root
// confinement (the observed behavior of comparable tools); when false,
// absolute paths outside the root fail with OUTSIDE_WORKSPACE.
type Resolver struct {
	Root          string
	AllowAbsolute bool
}

// NewResolver creates a Resolver for the given workspace root. The root is
// cleaned and made absolute so containment checks are reliable.
func NewResolver(root string, allowAbsolute bool) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	return &Resolver{Root: filepath.Clean(abs), AllowAbsolute: allowAbsolute}, nil
}

// Validate performs shape-only validation and resolution. No filesystem
// call is made; callers needing an accessibility check use Resolve.
func (r *Resolver) Validate(inputPath string) (string, error) {
	// Null bytes fail fast, before any path manipulation
	if strings.ContainsRune(inputPath, 0) {
		return "", domain.NewValidationError(domain.CodeNullByte,
			"path contains an embedded null byte")
	}

	if name := reservedDeviceName(inputPath); name != "" {
		return "", domain.NewValidationError(domain.CodeReservedDeviceName,
			fmt.Sprintf("path uses reserved device name %q", name))
	}

	if filepath.IsAbs(inputPath) {
		abs := filepath.Clean(inputPath)
		if r.AllowAbsolute || r.contains(abs) {
			return abs, nil
		}
		return "", domain.NewValidationError(domain.CodeOutsideWorkspace,
			fmt.Sprintf("absolute path %q is outside the workspace root", inputPath))
	}

	abs := filepath.Clean(filepath.Join(r.Root, inputPath))
	if !r.contains(abs) {
		if strings.Contains(inputPath, "..") {
			return "", domain.NewValidationError(domain.CodeDirectoryTraversal,
				fmt.Sprintf("path %q escapes the workspace root via '..'", inputPath))
		}
		return "", domain.NewValidationError(domain.CodeOutsideWorkspace,
			fmt.Sprintf("path %q resolves outside the workspace root", inputPath))
	}

	return abs, nil
}

// Resolve validates the path shape and, when checkAccess is set, verifies
// the resolved path is readable. Shape validation is shared with Validate.
func (r *Resolver) Resolve(inputPath string, checkAccess bool) (string, error) {
	abs, err := r.Validate(inputPath)
	if err != nil {
		return "", err
	}

	if checkAccess {
		f, err := os.Open(abs)
		if err != nil {
			logging.Logger.Debug("Path not accessible", "path", abs, "error", err)
			return "", &domain.Error{
				Category: domain.CategoryValidation,
				Code:     domain.CodeNotAccessible,
				Message:  fmt.Sprintf("path %q is not accessible for reading", abs),
				Cause:    err,
			}
		}
		f.Close()
	}

	return abs, nil
}

// contains reports whether abs is the root itself or inside it
func (r *Resolver) contains(abs string) bool {
	if abs == r.Root {
		return true
	}
	return strings.HasPrefix(abs, r.Root+string(filepath.Separator))
}

// reservedDeviceName returns the offending device name, or "" when the
// filename is safe. The filename is the segment after the last separator
// (either kind, so Windows-style input is caught on any OS), and the check
// applies to the portion before the first dot.
func reservedDeviceName(inputPath string) string {
	name := inputPath
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		name = name[:idx]
	}
	upper := strings.ToUpper(name)
	if reservedDeviceNames[upper] {
		return upper
	}
	return ""
}
