package fbdev

import (
	"fmt"
	"image"

	"github.com/BeatGlow/roundlcd"
	"github.com/BeatGlow/roundlcd/pixel"
)

// Device is a memory mapped framebuffer.
type Device struct {
	name   string
	pix    []byte
	stride int // bytes per line
	offset int // byte offset of the visible area
	rect   image.Rectangle
	format *format
	closer func() error
	closed bool
}

func newDevice(name string, pix []byte, stride, offset int, rect image.Rectangle, f *format) (*Device, error) {
	if need := offset + (rect.Dy()-1)*stride + rect.Dx()*f.bytes; rect.Empty() || need > len(pix) {
		return nil, fmt.Errorf("fbdev: %s: %dx%d at stride %d does not fit in %d bytes of memory",
			name, rect.Dx(), rect.Dy(), stride, len(pix))
	}
	return &Device{
		name:   name,
		pix:    pix,
		stride: stride,
		offset: offset,
		rect:   rect,
		format: f,
	}, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("fbdev %s %dx%d (%s)", d.name, d.rect.Dx(), d.rect.Dy(), d.format)
}

// Bounds of the visible screen.
func (d *Device) Bounds() image.Rectangle {
	return d.rect
}

// DrawPixels writes the pixels to framebuffer memory, pixels outside of the screen are skipped.
func (d *Device) DrawPixels(pixels pixel.Sequence) error {
	if d.closed {
		return &roundlcd.TransferError{Op: "draw", Err: roundlcd.ErrClosed}
	}

	var (
		size = d.format.bytes
		last pixel.CRGB16
		v    = d.format.value(0, 0, 0)
	)
	for pt, c := range pixels {
		if !pt.In(d.rect) {
			continue
		}
		if c != last {
			last = c
			v = d.format.value(expand(c.R5(), 5), expand(c.G6(), 6), expand(c.B5(), 5))
		}
		i := d.offset + pt.Y*d.stride + pt.X*size
		d.format.put(d.pix[i:i+size], v)
	}
	return nil
}

// Close unmaps the framebuffer memory and closes the device.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.closer != nil {
		return d.closer()
	}
	return nil
}

// expand an n-bit component to 8 bits, replicating the high bits into the low bits.
func expand(v uint8, n uint) uint8 {
	v <<= 8 - n
	return v | v>>n
}

var _ roundlcd.PixelWriter = (*Device)(nil)
