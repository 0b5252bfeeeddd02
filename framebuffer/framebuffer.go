// Package framebuffer implements an in-memory RGB565 pixel grid that mirrors the contents of a
// display panel.
//
// A [FrameBuf] is bound to storage owned by the caller, typically a fixed size array, and never
// grows or reallocates:
//
//	var data [240 * 240]pixel.CRGB16
//	fb, err := framebuffer.New(data[:], 240, 240)
//
// The frame buffer is a regular [draw.Image], so anything that renders into an image can render
// into it. Its contents are handed to a display as a row-major [pixel.Sequence].
package framebuffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/roundlcd/pixel"
)

// ErrSize is returned when the backing storage does not match the frame buffer dimensions.
var ErrSize = errors.New("framebuffer: storage size does not match dimensions")

// FrameBuf is a fixed size, row-major grid of pixels.
type FrameBuf struct {
	// Rect is the frame buffer bounding box, Rect.Min is always (0, 0).
	Rect image.Rectangle

	// Pix are the pixels, row 0 first.
	Pix []pixel.CRGB16

	// Stride is the Pix stride (in pixels) between vertically adjacent pixels.
	Stride int
}

// New binds a frame buffer of width by height pixels to data. The length of data must be exactly
// width*height; the current contents of data become the initial pixel values.
func New(data []pixel.CRGB16, width, height int) (*FrameBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrSize, width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d pixels, got %d", ErrSize, width, height, width*height, len(data))
	}
	return &FrameBuf{
		Rect:   image.Rect(0, 0, width, height),
		Pix:    data,
		Stride: width,
	}, nil
}

// Width in pixels.
func (fb *FrameBuf) Width() int { return fb.Rect.Dx() }

// Height in pixels.
func (fb *FrameBuf) Height() int { return fb.Rect.Dy() }

// Len is the total number of pixels.
func (fb *FrameBuf) Len() int { return len(fb.Pix) }

func (fb *FrameBuf) Bounds() image.Rectangle {
	return fb.Rect
}

func (fb *FrameBuf) ColorModel() color.Model {
	return pixel.CRGB16Model
}

func (fb *FrameBuf) PixOffset(x, y int) int {
	return y*fb.Stride + x
}

func (fb *FrameBuf) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(fb.Rect) {
		return color.Transparent
	}
	return fb.Pix[fb.PixOffset(x, y)]
}

// CRGB16At returns the pixel at (x, y), or black if (x, y) is out of bounds.
func (fb *FrameBuf) CRGB16At(x, y int) pixel.CRGB16 {
	if !(image.Point{X: x, Y: y}).In(fb.Rect) {
		return pixel.Black
	}
	return fb.Pix[fb.PixOffset(x, y)]
}

func (fb *FrameBuf) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(fb.Rect) {
		return
	}
	fb.Pix[fb.PixOffset(x, y)] = pixel.CRGB16Model.Convert(c).(pixel.CRGB16)
}

// SetCRGB16 sets the pixel at (x, y), out of bounds coordinates are ignored.
func (fb *FrameBuf) SetCRGB16(x, y int, c pixel.CRGB16) {
	if !(image.Point{X: x, Y: y}).In(fb.Rect) {
		return
	}
	fb.Pix[fb.PixOffset(x, y)] = c
}

// Clear sets every pixel to c.
func (fb *FrameBuf) Clear(c pixel.CRGB16) {
	for i := range fb.Pix {
		fb.Pix[i] = c
	}
}

// Fill sets every pixel in r to c. The rectangle is clipped to the frame buffer bounds.
func (fb *FrameBuf) Fill(r image.Rectangle, c pixel.CRGB16) {
	r = r.Intersect(fb.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := fb.Pix[fb.PixOffset(r.Min.X, y):fb.PixOffset(r.Max.X, y)]
		for i := range row {
			row[i] = c
		}
	}
}

// Pixels returns the frame buffer contents in row-major order: row 0 from left to right, then
// row 1, and so on. Every call starts a new pass from (0, 0).
func (fb *FrameBuf) Pixels() pixel.Sequence {
	return func(yield func(image.Point, pixel.CRGB16) bool) {
		for y := 0; y < fb.Rect.Max.Y; y++ {
			row := fb.Pix[y*fb.Stride : y*fb.Stride+fb.Rect.Max.X]
			for x, c := range row {
				if !yield(image.Point{X: x, Y: y}, c) {
					return
				}
			}
		}
	}
}

// Interface checks.
var _ draw.Image = (*FrameBuf)(nil)
