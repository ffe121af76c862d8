//go:build unix

package organizer

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsCrossDevice reports whether err is a rename across filesystems
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
