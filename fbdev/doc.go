// Package fbdev provides access to the operating system's native framebuffer.
//
// This requires framebuffer device support in the operating system. The framebuffer
// can be opened with the [Open] call, and accepts the same pixel sequences as the
// SPI displays, converted to the native pixel layout of the device.
//
// On systems without framebuffer support, [Open] returns [ErrNotSupported].
package fbdev

import (
	"errors"
	"os"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Errors.
var (
	ErrNotSupported      = errors.New("fbdev: not supported")
	ErrUnsupportedFormat = errors.New("fbdev: unsupported pixel format")
	errInvalidScreenInfo = errors.New("fbdev: invalid screen info")
)
