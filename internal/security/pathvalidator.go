package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrProtectedPath is returned for roots inside protected system directories
var ErrProtectedPath = errors.New("protected system path")

// systemRoots are refused as source or output roots, together with their
// direct children. "/" itself is refused but its children are not.
var systemRoots = []string{
	"/", "/bin", "/boot", "/dev", "/etc", "/lib", "/lib64", "/proc",
	"/sbin", "/sys", "/usr", "/var",
	"/System", "/Applications", "/Library/System",
}

// PathValidator checks directories before files are moved in or out of them
type PathValidator struct {
	protectedPaths []string
}

func NewPathValidator() *PathValidator {
	return &PathValidator{protectedPaths: append([]string(nil), systemRoots...)}
}

// ValidateRoot checks a source or output directory. Relative paths are made
// absolute and symlinks resolved; a root that does not exist yet is checked
// as written.
func (pv *PathValidator) ValidateRoot(path string) error {
	if path == "" {
		return fmt.Errorf("directory path is empty")
	}

	if strings.ContainsAny(path, "\x00\n\r") {
		return fmt.Errorf("path contains control characters: %q", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	resolvedPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to resolve symlinks: %w", err)
		}
		resolvedPath = absPath
	}

	return pv.checkProtectedPaths(filepath.Clean(resolvedPath))
}

// checkProtectedPaths refuses protected directories and their direct children
func (pv *PathValidator) checkProtectedPaths(cleanPath string) error {
	for _, protected := range pv.protectedPaths {
		if cleanPath == protected {
			return fmt.Errorf("refusing to organize %s: %w", cleanPath, ErrProtectedPath)
		}

		// /usr/bin is refused, /usr/local/share/media is not
		if protected != "/" && strings.HasPrefix(cleanPath, protected+"/") {
			rel, _ := filepath.Rel(protected, cleanPath)
			if !strings.Contains(rel, "/") {
				return fmt.Errorf("refusing to organize %s: %w", cleanPath, ErrProtectedPath)
			}
		}
	}

	return nil
}

// AddProtectedPath adds a custom protected path
func (pv *PathValidator) AddProtectedPath(path string) {
	pv.protectedPaths = append(pv.protectedPaths, filepath.Clean(path))
}

// ValidateGlobPattern checks an exclude pattern. Patterns are matched
// against file names, so a pattern naming a path can never match.
func ValidateGlobPattern(pattern string) error {
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}
	if strings.ContainsRune(pattern, filepath.Separator) {
		return fmt.Errorf("glob pattern must match file names, not paths: %s", pattern)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}
