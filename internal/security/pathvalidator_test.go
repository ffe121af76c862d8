package security

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateRoot(t *testing.T) {
	pv := NewPathValidator()
	tmp := t.TempDir()

	tests := []struct {
		name      string
		path      string
		wantErr   bool
		protected bool
	}{
		{"temp directory", tmp, false, false},
		{"missing output directory", filepath.Join(tmp, "not", "yet"), false, false},
		{"relative path", ".", false, false},
		{"deep under protected dir", "/usr/local/share/media-inbox", false, false},
		{"home subdirectory", "/home/user/Downloads", false, false},
		{"empty path", "", true, false},
		{"newline in path", "/tmp/a\nb", true, false},
		{"root directory", "/", true, true},
		{"etc directory", "/etc", true, true},
		{"direct child of etc", "/etc/newdir", true, true},
		{"direct child of usr", "/usr/newdir", true, true},
		{"macOS system directory", "/System", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pv.ValidateRoot(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRoot(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if errors.Is(err, ErrProtectedPath) != tt.protected {
				t.Errorf("ValidateRoot(%q) = %v, protected = %v", tt.path, err, tt.protected)
			}
		})
	}
}

func TestValidateRootResolvesSymlinks(t *testing.T) {
	pv := NewPathValidator()
	link := filepath.Join(t.TempDir(), "etc-link")
	if err := os.Symlink("/etc", link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if err := pv.ValidateRoot(link); !errors.Is(err, ErrProtectedPath) {
		t.Errorf("expected symlink to /etc to be refused, got %v", err)
	}
}

func TestAddProtectedPath(t *testing.T) {
	pv := NewPathValidator()
	tmp := t.TempDir()

	if err := pv.ValidateRoot(tmp); err != nil {
		t.Fatalf("unexpected error before protecting: %v", err)
	}

	resolved, err := filepath.EvalSymlinks(tmp)
	if err != nil {
		t.Fatal(err)
	}
	pv.AddProtectedPath(resolved + "/")

	err = pv.ValidateRoot(tmp)
	if !errors.Is(err, ErrProtectedPath) {
		t.Fatalf("expected protected path error, got %v", err)
	}
	if !strings.Contains(err.Error(), "refusing to organize") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestValidateGlobPattern(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		shouldError bool
	}{
		{"simple wildcard", "*.txt", false},
		{"character class", "[abc]*.txt", false},
		{"question mark", "file?.txt", false},
		{"partial download", "*.part", false},
		{"empty pattern", "", false},
		{"invalid syntax - unmatched bracket", "[abc", true},
		{"braces are literal", "{abc", false},
		{"pattern with traversal", "../*.txt", true},
		{"pattern with directory", "downloads/*.zip", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGlobPattern(tt.pattern)
			if (err != nil) != tt.shouldError {
				t.Errorf("ValidateGlobPattern(%q) error = %v, shouldError %v", tt.pattern, err, tt.shouldError)
			}
		})
	}
}
