// Package testutil provides fixtures for tests that organize a throwaway
// source directory. Everything lives under t.TempDir().
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TestFixture is a temp tree with a source directory to organize and a
// separate output root
type TestFixture struct {
	T       *testing.T
	RootDir string

	SourceDir string
	OutputDir string
}

// NewFixture creates RootDir/source and RootDir/output, both empty
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()
	f := &TestFixture{
		T:         t,
		RootDir:   root,
		SourceDir: filepath.Join(root, "source"),
		OutputDir: filepath.Join(root, "output"),
	}
	f.mkdirAll(f.SourceDir)
	f.mkdirAll(f.OutputDir)
	return f
}

// Path resolves relPath against the fixture root
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.RootDir, relPath)
}

func (f *TestFixture) mkdirAll(dir string) {
	f.T.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("mkdir %s: %v", dir, err)
	}
}

// CreateFile writes content to relPath, creating parent directories, and
// returns the absolute path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	path := f.Path(relPath)
	f.mkdirAll(filepath.Dir(path))
	if err := os.WriteFile(path, content, 0644); err != nil {
		f.T.Fatalf("write %s: %v", path, err)
	}
	return path
}

// CreateSourceFiles drops files at the top level of SourceDir. Each file
// holds its own name so moved files can be identified by content.
func (f *TestFixture) CreateSourceFiles(names ...string) []string {
	f.T.Helper()

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, f.CreateFile(filepath.Join("source", name), []byte(name)))
	}
	return paths
}

// CreateFileWithMode is CreateFile followed by a chmod
func (f *TestFixture) CreateFileWithMode(relPath string, content []byte, mode os.FileMode) string {
	f.T.Helper()

	path := f.CreateFile(relPath, content)
	f.Chmod(path, mode)
	return path
}

// CreateNoPermissionFile creates a file with mode 0000
func (f *TestFixture) CreateNoPermissionFile(relPath string, content []byte) string {
	f.T.Helper()
	return f.CreateFileWithMode(relPath, content, 0)
}

// CreateDir creates relPath and any missing parents
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	path := f.Path(relPath)
	f.mkdirAll(path)
	return path
}

// CreateReadOnlyDir creates a directory with mode 0555
func (f *TestFixture) CreateReadOnlyDir(relPath string) string {
	f.T.Helper()

	path := f.CreateDir(relPath)
	f.Chmod(path, 0555)
	return path
}

// Chmod changes the mode of path and restores 0755 on cleanup so TempDir
// can be removed
func (f *TestFixture) Chmod(path string, mode os.FileMode) {
	f.T.Helper()

	if err := os.Chmod(path, mode); err != nil {
		f.T.Fatalf("chmod %s: %v", path, err)
	}
	f.T.Cleanup(func() { _ = os.Chmod(path, 0755) })
}

// CreateSymlink creates linkPath (relative to the root) pointing at target
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	path := f.Path(linkPath)
	f.mkdirAll(filepath.Dir(path))
	if err := os.Symlink(target, path); err != nil {
		f.T.Fatalf("symlink %s -> %s: %v", path, target, err)
	}
	return path
}

// CreateBrokenSymlink creates a symlink whose target does not exist
func (f *TestFixture) CreateBrokenSymlink(linkPath string) string {
	f.T.Helper()
	return f.CreateSymlink(f.Path("missing-target"), linkPath)
}

// SkipIfRoot skips tests that need permission bits to be enforced
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("running as root; permission bits are not enforced")
	}
}

// ListDir returns the sorted entry names of dir
func (f *TestFixture) ListDir(dir string) []string {
	f.T.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		f.T.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// FileExists reports whether path exists without following symlinks
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("%s does not exist", path)
	}
}

func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("%s exists, expected it to be gone", path)
	}
}

// AssertFileContent checks path holds exactly want
func (f *TestFixture) AssertFileContent(path string, want []byte) {
	f.T.Helper()

	got, err := os.ReadFile(path)
	if err != nil {
		f.T.Errorf("read %s: %v", path, err)
		return
	}
	if string(got) != string(want) {
		f.T.Errorf("%s contains %q, want %q", path, got, want)
	}
}

// AssertFileMode checks the permission bits of path
func (f *TestFixture) AssertFileMode(path string, want os.FileMode) {
	f.T.Helper()

	info, err := os.Stat(path)
	if err != nil {
		f.T.Errorf("stat %s: %v", path, err)
		return
	}
	if got := info.Mode().Perm(); got != want {
		f.T.Errorf("%s has mode %o, want %o", path, got, want)
	}
}
