package roundlcd

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/roundlcd/pixel"
)

// MIPI Display Command Set, shared by all supported controllers.
const (
	mipiNOP     = 0x00
	mipiSWRESET = 0x01 // Software Reset
	mipiSLPIN   = 0x10 // Sleep In
	mipiSLPOUT  = 0x11 // Sleep Out
	mipiNORON   = 0x13 // Normal Display Mode On
	mipiINVOFF  = 0x20 // Display Inversion Off
	mipiINVON   = 0x21 // Display Inversion On
	mipiDISPOFF = 0x28 // Display Off
	mipiDISPON  = 0x29 // Display On
	mipiCASET   = 0x2A // Column Address Set
	mipiRASET   = 0x2B // Row Address Set
	mipiRAMWR   = 0x2C // Memory Write
	mipiTEON    = 0x35 // Tearing Effect Line On
	mipiMADCTL  = 0x36 // Memory Data Access Control
	mipiCOLMOD  = 0x3A // Interface Pixel Format
)

// Interface Pixel Format: 16 bits per pixel (RGB 5-6-5-bit input).
const mipiPixelFormat16 = 0x05

// Memory Data Access Control (MADCTL) bit fields.
const (
	_                         byte = 1 << iota // D0: reserved
	_                                          // D1: reserved
	mipiDisplayDataLatchOrder                  // D2: MH
	mipiBGROrder                               // D3: RGB/BGR
	mipiLineAddressOrder                       // D4: ML
	mipiPageColumnOrder                        // D5: MV
	mipiColumnAddressOrder                     // D6: MX
	mipiPageAddressOrder                       // D7: MY
)

// Default streaming batch in bytes.
const mipiBatchSize = 4096

// mipiModel describes a controller and the panel attached to it.
type mipiModel struct {
	name string

	// Native (portrait) panel size.
	width, height int

	// Controller memory size, limits the panel size plus offsets.
	maxWidth, maxHeight int

	// Inverted colors when the configuration does not say.
	inverted bool

	// Base MADCTL bits, rotation bits are added on top.
	madctl byte

	// Send a software reset after the hardware reset.
	softReset bool

	// Controller specific initialization, sent after reset and before sleep out.
	init [][]byte
}

type mipiDisplay struct {
	c         Conn
	model     *mipiModel
	width     int // native width
	height    int // native height
	colOffset int
	rowOffset int
	rotation  Rotation
	bgr       bool
	inverted  bool
	backlight gpio.PinOut
	halted    bool
	closed    bool
	buf       []byte
}

func newMIPIDisplay(c Conn, model *mipiModel, config *Config) (*mipiDisplay, error) {
	if config == nil {
		config = new(Config)
	}

	d := &mipiDisplay{
		c:         c,
		model:     model,
		width:     config.Width,
		height:    config.Height,
		colOffset: config.ColOffset,
		rowOffset: config.RowOffset,
		bgr:       config.BGR,
		backlight: config.Backlight,
		buf:       make([]byte, 0, mipiBatchSize),
	}

	// Config sizes are as seen at the requested rotation.
	if config.Rotation&1 == 1 {
		d.width, d.height = config.Height, config.Width
	}
	if d.width == 0 {
		d.width = model.width
	}
	if d.height == 0 {
		d.height = model.height
	}
	if d.width+d.colOffset > model.maxWidth || d.height+d.rowOffset > model.maxHeight || d.width < 0 || d.height < 0 {
		return nil, fmt.Errorf("%s: invalid size %dx%d at offset (%d,%d), maximum size is %dx%d",
			model.name, d.width, d.height, d.colOffset, d.rowOffset, model.maxWidth, model.maxHeight)
	}

	switch config.Inversion {
	case Inverted:
		d.inverted = true
	case NotInverted:
		d.inverted = false
	default:
		d.inverted = model.inverted
	}

	if err := d.init(config); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *mipiDisplay) init(config *Config) (err error) {
	if d.backlight != nil {
		if err = d.backlight.Out(gpio.High); err != nil {
			return
		}
	} else if debug {
		log.Printf("%s: no backlight control", d.model.name)
	}

	// reset the device.
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(120 * time.Millisecond)

	if d.model.softReset {
		if err = d.command(mipiSWRESET); err != nil {
			return
		}
		time.Sleep(150 * time.Millisecond)
	}

	if err = d.commands(d.model.init); err != nil {
		return
	}

	if err = d.commands([][]byte{
		{mipiCOLMOD, mipiPixelFormat16},
		{mipiNORON},
	}); err != nil {
		return
	}
	if err = d.SetInvert(d.inverted); err != nil {
		return
	}
	if err = d.SetRotation(config.Rotation); err != nil {
		return
	}

	if err = d.command(mipiSLPOUT); err != nil {
		return
	}
	time.Sleep(120 * time.Millisecond)
	if err = d.command(mipiDISPON); err != nil {
		return
	}
	time.Sleep(20 * time.Millisecond)
	return
}

func (d *mipiDisplay) command(command byte, data ...byte) error {
	return d.c.Command(command, data...)
}

func (d *mipiDisplay) commands(commands [][]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *mipiDisplay) String() string {
	bounds := d.Bounds()
	return fmt.Sprintf("%s %dx%d", d.model.name, bounds.Dx(), bounds.Dy())
}

// Bounds of the display at the current rotation.
func (d *mipiDisplay) Bounds() image.Rectangle {
	if d.rotation&1 == 1 {
		return image.Rect(0, 0, d.height, d.width)
	}
	return image.Rect(0, 0, d.width, d.height)
}

func (d *mipiDisplay) ColorModel() color.Model {
	return pixel.CRGB16Model
}

func (d *mipiDisplay) Show(show bool) error {
	var command = byte(mipiDISPOFF)
	if show {
		command = byte(mipiDISPON)
	}
	if err := d.command(command); err != nil {
		return err
	}
	d.halted = !show
	return nil
}

func (d *mipiDisplay) SetInvert(invert bool) error {
	var command = byte(mipiINVOFF)
	if invert {
		command = byte(mipiINVON)
	}
	if err := d.command(command); err != nil {
		return err
	}
	d.inverted = invert
	return nil
}

// SetContrast sets the backlight duty cycle.
func (d *mipiDisplay) SetContrast(level uint8) error {
	if d.backlight == nil {
		return nil
	}
	const (
		step = gpio.DutyMax / 0xFF
		rate = 2 * physic.KiloHertz
	)
	if debug {
		log.Printf("%s: backlight duty cycle to %s at %s", d.model.name, step*gpio.Duty(level), rate)
	}
	return d.backlight.PWM(step*gpio.Duty(level), rate)
}

func (d *mipiDisplay) SetRotation(rotation Rotation) error {
	rotation &= 3

	madctl := d.model.madctl
	switch rotation {
	case Rotate90:
		madctl |= mipiColumnAddressOrder | mipiPageColumnOrder
	case Rotate180:
		madctl |= mipiColumnAddressOrder | mipiPageAddressOrder
	case Rotate270:
		madctl |= mipiPageAddressOrder | mipiPageColumnOrder
	}
	if d.bgr {
		madctl |= mipiBGROrder
	}

	if err := d.command(mipiMADCTL, madctl); err != nil {
		return err
	}
	d.rotation = rotation
	return nil
}

// SetWindow selects the inclusive memory window (x0,y0)-(x1,y1) and starts a memory write.
func (d *mipiDisplay) SetWindow(x0, y0, x1, y1 int) error {
	if x0 < 0 || y0 < 0 || x0 > x1 || y0 > y1 || !(image.Point{X: x1, Y: y1}).In(d.Bounds()) {
		return ErrBounds
	}
	if d.rotation == Rotate90 || d.rotation == Rotate270 {
		x0 += d.rowOffset
		y0 += d.colOffset
		x1 += d.rowOffset
		y1 += d.colOffset
	} else {
		x0 += d.colOffset
		y0 += d.rowOffset
		x1 += d.colOffset
		y1 += d.rowOffset
	}
	return d.commands([][]byte{
		{mipiCASET, byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}, // Column address
		{mipiRASET, byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}, // Row address
		{mipiRAMWR}, // Write to RAM
	})
}

// DrawPixels streams the pixels to display memory.
//
// Consecutive row-major pixels share one memory window and are sent as a continuous write; a
// pixel that does not follow its predecessor opens a new window that starts at that pixel.
func (d *mipiDisplay) DrawPixels(pixels pixel.Sequence) (err error) {
	if d.closed {
		return &TransferError{Op: "draw", Err: ErrClosed}
	}

	var (
		bounds = d.Bounds()
		window image.Rectangle // current window, empty if none is open
		next   image.Point     // where the controller writes the next pixel
		buf    = d.buf[:0]
	)
	for pt, c := range pixels {
		if !pt.In(bounds) {
			continue
		}
		if window.Empty() || pt != next {
			if err = d.writePixels(buf); err != nil {
				return
			}
			buf = buf[:0]
			window = image.Rectangle{Min: pt, Max: bounds.Max}
			if err = d.SetWindow(pt.X, pt.Y, bounds.Max.X-1, bounds.Max.Y-1); err != nil {
				return transferError("window", err)
			}
		}

		buf = c.Append(buf, binary.BigEndian)
		if len(buf) >= mipiBatchSize {
			if err = d.writePixels(buf); err != nil {
				return
			}
			buf = buf[:0]
		}

		if next = pt.Add(image.Point{X: 1}); next.X == window.Max.X {
			next = image.Point{X: window.Min.X, Y: pt.Y + 1}
		}
		if next.Y == window.Max.Y {
			// Window exhausted.
			window = image.Rectangle{}
		}
	}
	return d.writePixels(buf)
}

func (d *mipiDisplay) writePixels(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return transferError("write", d.c.Data(buf...))
}

// Draw implements periph's display.Drawer.
func (d *mipiDisplay) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	clipped := r.Intersect(d.Bounds())
	sp = sp.Add(clipped.Min.Sub(r.Min))
	r = clipped
	return d.DrawPixels(func(yield func(image.Point, pixel.CRGB16) bool) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := pixel.CRGB16Model.Convert(src.At(sp.X+x-r.Min.X, sp.Y+y-r.Min.Y)).(pixel.CRGB16)
				if !yield(image.Point{X: x, Y: y}, c) {
					return
				}
			}
		}
	})
}

// Halt turns the display off.
func (d *mipiDisplay) Halt() error {
	if d.halted {
		return nil
	}
	return d.Show(false)
}

func (d *mipiDisplay) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if err := d.Halt(); err != nil {
		_ = d.c.Close()
		return err
	}
	return d.c.Close()
}

// Interface checks.
var (
	_ Display        = (*mipiDisplay)(nil)
	_ display.Drawer = (*mipiDisplay)(nil)
)
