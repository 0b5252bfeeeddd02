// Package roundlcd contains drivers for small RGB565 LCD panels, such as the GC9A01 round display.
//
// Drawing happens in an in-memory [framebuffer.FrameBuf]; [Flush] commits its contents to a
// display in a single bulk write.
package roundlcd

import (
	"errors"
	"image"
	"os"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/roundlcd/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Errors
var (
	ErrBounds = errors.New("roundlcd: out of display bounds")
	ErrClosed = errors.New("roundlcd: display is closed")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Inversion selects the color inversion mode of the panel.
type Inversion uint8

// Supported inversion modes.
const (
	DefaultInversion Inversion = iota // Panel default
	Inverted
	NotInverted
)

// PixelWriter accepts an ordered sequence of pixels and writes each one to its position on the
// output device.
type PixelWriter interface {
	// DrawPixels writes the pixels. Pixels outside of the device are skipped.
	DrawPixels(pixels pixel.Sequence) error
}

// Display is an LCD panel.
type Display interface {
	PixelWriter

	String() string

	// Close the display driver.
	Close() error

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// Show toggles the display on or off.
	Show(bool) error

	// SetInvert toggles color inversion.
	SetInvert(bool) error

	// SetContrast adjusts the backlight level.
	SetContrast(level uint8) error

	// SetRotation adjusts the pixel rotation.
	SetRotation(Rotation) error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels, 0 uses the controller default.
	Width int

	// Height of the display in pixels, 0 uses the controller default.
	Height int

	// Rotation of the display.
	Rotation Rotation

	// Inversion of the display colors.
	Inversion Inversion

	// BGR swaps the red and blue channels for panels wired in BGR order.
	BGR bool

	// ColOffset and RowOffset position the panel inside the controller memory.
	ColOffset, RowOffset int

	// Backlight pin
	Backlight gpio.PinOut
}
