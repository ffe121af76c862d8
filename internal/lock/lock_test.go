package lock

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireIsExclusive(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dir := t.TempDir()

	first, err := Acquire(dir)
	if err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	if _, err := Acquire(dir); !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire = %v, want ErrLocked", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	again, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	again.Release()
}

func TestDifferentDirectoriesDoNotConflict(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	a, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()

	b, err := Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("unrelated directory should not be locked: %v", err)
	}
	defer b.Release()

	if a.Path() == b.Path() {
		t.Error("different directories share a lock file")
	}
}

func TestPathForNormalizesSpelling(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	dir := filepath.Join(t.TempDir(), "photos")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(filepath.Dir(dir), "alias")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	direct, err := PathFor(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, spelling := range []string{dir + string(filepath.Separator), filepath.Join(dir, "..", "photos"), link} {
		got, err := PathFor(spelling)
		if err != nil {
			t.Fatal(err)
		}
		if got != direct {
			t.Errorf("PathFor(%q) = %q, want %q", spelling, got, direct)
		}
	}

	if filepath.Dir(direct) != filepath.Clean(tmp) || !strings.HasSuffix(direct, ".lock") {
		t.Errorf("lock file %q should live in %q", direct, tmp)
	}
}
