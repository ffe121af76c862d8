package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the lock for a directory
var ErrLocked = errors.New("another organizer run is already using this directory")

// DirLock is an advisory lock on one source directory
type DirLock struct {
	path string
	fl   *flock.Flock
}

// PathFor returns the lock file used for dir. Different spellings of the same
// directory map to the same lock file.
func PathFor(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	sum := sha256.Sum256([]byte(abs))
	name := "file-organizer-" + hex.EncodeToString(sum[:8]) + ".lock"
	return filepath.Join(os.TempDir(), name), nil
}

// Acquire takes the lock for dir without blocking
func Acquire(dir string) (*DirLock, error) {
	path, err := PathFor(dir)
	if err != nil {
		return nil, err
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, ErrLocked)
	}

	return &DirLock{path: path, fl: fl}, nil
}

// Path returns the lock file path
func (l *DirLock) Path() string {
	return l.path
}

// Release unlocks the directory. The lock file stays in place; removing it
// would let two runs lock different inodes for the same directory.
func (l *DirLock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
