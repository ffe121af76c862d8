package organizer

import (
	"os"
	"path/filepath"
)

// checkSourceReadable verifies the source can be opened for reading
func checkSourceReadable(source string) error {
	f, err := os.Open(source)
	if err != nil {
		return &SkipError{Context: "cannot read source file", Err: err}
	}
	return f.Close()
}

// checkDestinationWritable verifies the destination's parent directory exists
// and is not read-only
func checkDestinationWritable(destination string) error {
	parent := filepath.Dir(destination)

	info, err := os.Stat(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrDestinationDirMissing
		}
		return &SkipError{Context: "cannot access destination directory", Err: err}
	}

	if isReadOnly(info) {
		return ErrDestinationReadOnly
	}

	return nil
}

// isReadOnly reports whether no write bit is set. This looks at the mode only,
// so a directory stays read-only for root as well.
func isReadOnly(info os.FileInfo) bool {
	return info.Mode().Perm()&0o222 == 0
}

// destinationExists reports whether anything, including a dangling symlink,
// occupies path
func destinationExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
