//go:build windows

package organizer

import (
	"errors"

	"golang.org/x/sys/windows"
)

// IsCrossDevice reports whether err is a rename across volumes
func IsCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
