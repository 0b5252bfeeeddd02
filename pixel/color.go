package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"iter"
)

// CRGB16Model converts any color to a CRGB16.
var CRGB16Model color.Model = color.ModelFunc(crgb16Model)

// Standard colors.
var (
	Black   = CRGB16{0x0000}
	White   = CRGB16{0xffff}
	Red     = CRGB16{0xf800}
	Green   = CRGB16{0x07e0}
	Blue    = CRGB16{0x001f}
	Yellow  = CRGB16{0xffe0}
	Cyan    = CRGB16{0x07ff}
	Magenta = CRGB16{0xf81f}
)

// Sequence is an ordered series of pixel positions and their colors.
type Sequence = iter.Seq2[image.Point, CRGB16]

// CRGB16 represents a 16-bit 5-6-5 RGB color.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

// RGB packs 8-bit color components, dropping the low bits that don't fit.
func RGB(r, g, b uint8) CRGB16 {
	return CRGB16{uint16(r&0xf8)<<8 | uint16(g&0xfc)<<3 | uint16(b)>>3}
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

// R5 returns the 5-bit red component.
func (c CRGB16) R5() uint8 { return uint8(c.V >> 11) }

// G6 returns the 6-bit green component.
func (c CRGB16) G6() uint8 { return uint8(c.V>>5) & 0x3f }

// B5 returns the 5-bit blue component.
func (c CRGB16) B5() uint8 { return uint8(c.V) & 0x1f }

// Append appends the wire encoding of the color to buf.
func (c CRGB16) Append(buf []byte, order binary.AppendByteOrder) []byte {
	return order.AppendUint16(buf, c.V)
}

func crgb16Model(c color.Color) color.Color {
	switch c := c.(type) {
	case CRGB16:
		return c
	case color.RGBA:
		if c.A == 0xff {
			return RGB(c.R, c.G, c.B)
		}
	}
	r, g, b, _ := c.RGBA()
	r = (r & 0xF800)
	g = (g & 0xFC00) >> 5
	b = (b & 0xF800) >> 11
	return CRGB16{uint16(r | g | b)}
}
