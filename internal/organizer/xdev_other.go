//go:build !unix && !windows

package organizer

// IsCrossDevice always reports false on platforms without a cross-device errno
func IsCrossDevice(err error) bool {
	return false
}
