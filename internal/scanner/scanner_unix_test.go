//go:build unix

package scanner

import (
	"path/filepath"
	"syscall"
	"testing"

	"github.com/fenilsonani/file-organizer/internal/testutil"
)

func TestScanExcludesSpecialFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	fifo := filepath.Join(f.SourceDir, "pipe.txt")
	if err := syscall.Mkfifo(fifo, 0644); err != nil {
		t.Skipf("mkfifo not supported: %v", err)
	}
	f.CreateSourceFiles("notes.txt")

	result, err := newScanner().Scan(f.SourceDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if got := names(result.Files); len(got) != 1 || got[0] != "notes.txt" {
		t.Errorf("expected only notes.txt, got %v", got)
	}
}
