package roundlcd

import (
	"errors"
	"image"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/roundlcd/pixel"
)

var errBusTimeout = errors.New("spi: bus timeout")

type testOp struct {
	Command bool
	Code    byte
	Data    []byte
}

// testConn records commands and data, it fails every call after failAfter data writes.
type testConn struct {
	ops       []testOp
	failAfter int
	writes    int
	closed    bool
	reset     []gpio.Level
}

func (c *testConn) String() string { return "test" }

func (c *testConn) Close() error {
	c.closed = true
	return nil
}

func (c *testConn) Reset(level gpio.Level) error {
	c.reset = append(c.reset, level)
	return nil
}

func (c *testConn) Command(cmnd byte, data ...byte) error {
	if c.failAfter > 0 && c.writes >= c.failAfter {
		return errBusTimeout
	}
	c.ops = append(c.ops, testOp{Command: true, Code: cmnd, Data: append([]byte(nil), data...)})
	return nil
}

func (c *testConn) Data(data ...byte) error {
	if c.failAfter > 0 && c.writes >= c.failAfter {
		return errBusTimeout
	}
	c.writes++
	c.ops = append(c.ops, testOp{Data: append([]byte(nil), data...)})
	return nil
}

func (c *testConn) commands() (codes []byte) {
	for _, op := range c.ops {
		if op.Command {
			codes = append(codes, op.Code)
		}
	}
	return
}

func (c *testConn) data() (data []byte) {
	for _, op := range c.ops {
		if !op.Command {
			data = append(data, op.Data...)
		}
	}
	return
}

// recordWriter is a PixelWriter that keeps every pixel, it fails after failAfter pixels.
type recordWriter struct {
	points    []image.Point
	colors    []pixel.CRGB16
	failAfter int
	calls     int
}

func (w *recordWriter) DrawPixels(pixels pixel.Sequence) error {
	w.calls++
	for pt, c := range pixels {
		if w.failAfter > 0 && len(w.points) == w.failAfter {
			return &TransferError{Op: "write", Err: errBusTimeout}
		}
		w.points = append(w.points, pt)
		w.colors = append(w.colors, c)
	}
	return nil
}
