package fbdev

import (
	"encoding/binary"
	"fmt"
)

// bitField describes where a color component lives inside a pixel value.
type bitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// varScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type varScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha bitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// format is a native pixel layout.
type format struct {
	bytes                   int // bytes per pixel
	red, green, blue, alpha bitField
	order                   binary.ByteOrder
}

func (f *format) String() string {
	return fmt.Sprintf("%d bpp r%d:%d g%d:%d b%d:%d a%d:%d", f.bytes*8,
		f.red.Offset, f.red.Length,
		f.green.Offset, f.green.Length,
		f.blue.Offset, f.blue.Length,
		f.alpha.Offset, f.alpha.Length)
}

func parseFormat(info *varScreenInfo) (*format, error) {
	if info == nil {
		return nil, errInvalidScreenInfo
	}
	if info.Grayscale != 0 {
		return nil, fmt.Errorf("%w: grayscale", ErrUnsupportedFormat)
	}

	f := &format{
		red:   info.Red,
		green: info.Green,
		blue:  info.Blue,
		alpha: info.Alpha,
		order: binary.NativeEndian,
	}
	switch info.BitsPerPixel {
	case 15, 16:
		f.bytes = 2
	case 24:
		f.bytes = 3
	case 32:
		f.bytes = 4
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, info.BitsPerPixel)
	}

	for _, field := range []bitField{f.red, f.green, f.blue, f.alpha} {
		if field.MsbRight != 0 || field.Length > 8 || field.Offset+field.Length > uint32(f.bytes*8) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
		}
	}
	if f.red.Length == 0 || f.green.Length == 0 || f.blue.Length == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return f, nil
}

// value converts 8-bit components to a native pixel value; alpha is always opaque.
func (f *format) value(r, g, b uint8) (v uint32) {
	v |= scale(r, f.red)
	v |= scale(g, f.green)
	v |= scale(b, f.blue)
	v |= scale(0xff, f.alpha)
	return
}

func scale(c uint8, field bitField) uint32 {
	if field.Length == 0 {
		return 0
	}
	return uint32(c>>(8-field.Length)) << field.Offset
}

// put stores v in b, which holds exactly one pixel.
func (f *format) put(b []byte, v uint32) {
	switch f.bytes {
	case 2:
		f.order.PutUint16(b, uint16(v))
	case 3:
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	case 4:
		f.order.PutUint32(b, v)
	}
}
