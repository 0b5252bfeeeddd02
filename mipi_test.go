package roundlcd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/roundlcd/pixel"
)

func TestGC9A01Init(t *testing.T) {
	tests := []struct {
		Name   string
		Config *Config
		Invert byte
		MADCTL byte
		Bounds image.Rectangle
	}{
		{"default", nil, mipiINVON, 0x00, image.Rect(0, 0, 240, 240)},
		{"not inverted", &Config{Inversion: NotInverted}, mipiINVOFF, 0x00, image.Rect(0, 0, 240, 240)},
		{"bgr", &Config{BGR: true}, mipiINVON, mipiBGROrder, image.Rect(0, 0, 240, 240)},
		{"rotate 90", &Config{Rotation: Rotate90}, mipiINVON, mipiColumnAddressOrder | mipiPageColumnOrder, image.Rect(0, 0, 240, 240)},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			c := new(testConn)
			d, err := GC9A01(c, test.Config)
			if err != nil {
				it.Fatal(err)
			}
			if v := d.Bounds(); v != test.Bounds {
				it.Errorf("expected bounds %s, got %s", test.Bounds, v)
			}

			codes := c.commands()
			if len(codes) == 0 || codes[0] != gc9a01InterRegisterEnable2 {
				it.Fatalf("expected init to start with inter register enable, got % x", codes)
			}
			if last := codes[len(codes)-1]; last != mipiDISPON {
				it.Errorf("expected init to end with display on, got %#02x", last)
			}
			if !bytes.Contains(codes, []byte{test.Invert}) {
				it.Errorf("expected inversion command %#02x", test.Invert)
			}
			for _, op := range c.ops {
				switch op.Code {
				case mipiCOLMOD:
					if !bytes.Equal(op.Data, []byte{mipiPixelFormat16}) {
						it.Errorf("expected 16-bit pixel format, got % x", op.Data)
					}
				case mipiMADCTL:
					if !bytes.Equal(op.Data, []byte{test.MADCTL}) {
						it.Errorf("expected MADCTL %#02x, got % x", test.MADCTL, op.Data)
					}
				}
			}
			if len(c.reset) != 3 || c.reset[1] != gpio.Low || c.reset[2] != gpio.High {
				it.Errorf("expected reset pulse, got %v", c.reset)
			}
		})
	}
}

func TestMIPISize(t *testing.T) {
	tests := []struct {
		Name    string
		New     func(Conn, *Config) (Display, error)
		Config  *Config
		Bounds  image.Rectangle
		WantErr bool
	}{
		{"gc9a01 too wide", GC9A01, &Config{Width: 320}, image.Rectangle{}, true},
		{"st7789 default", ST7789, nil, image.Rect(0, 0, 240, 240), false},
		{"st7789 240x320", ST7789, &Config{Width: 240, Height: 320}, image.Rect(0, 0, 240, 320), false},
		{"st7789 320x240 rotated", ST7789, &Config{Width: 320, Height: 240, Rotation: Rotate270}, image.Rect(0, 0, 320, 240), false},
		{"st7789 320x240 not rotated", ST7789, &Config{Width: 320, Height: 240}, image.Rectangle{}, true},
		{"st7735 default", ST7735, nil, image.Rect(0, 0, 128, 160), false},
		{"st7735 offset", ST7735, &Config{ColOffset: 2, RowOffset: 1}, image.Rect(0, 0, 128, 160), false},
		{"st7735 offset too large", ST7735, &Config{ColOffset: 8}, image.Rectangle{}, true},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			d, err := test.New(new(testConn), test.Config)
			if test.WantErr {
				if err == nil {
					it.Fatal("expected error")
				}
				return
			}
			if err != nil {
				it.Fatal(err)
			}
			if v := d.Bounds(); v != test.Bounds {
				it.Errorf("expected bounds %s, got %s", test.Bounds, v)
			}
		})
	}
}

func TestMIPIDrawPixelsFullFrame(t *testing.T) {
	c := new(testConn)
	d := testGC9A01(t, c)

	fb := testFrameBuf(t, 240, 240)
	fb.Clear(pixel.Red)
	if err := Flush(d, fb); err != nil {
		t.Fatal(err)
	}

	if codes := c.commands(); !bytes.Equal(codes, []byte{mipiCASET, mipiRASET, mipiRAMWR}) {
		t.Fatalf("expected a single window, got commands % x", codes)
	}
	if v := c.ops[0].Data; !bytes.Equal(v, []byte{0, 0, 0, 239}) {
		t.Errorf("unexpected column window % x", v)
	}
	if v := c.ops[1].Data; !bytes.Equal(v, []byte{0, 0, 0, 239}) {
		t.Errorf("unexpected row window % x", v)
	}

	data := c.data()
	if len(data) != 240*240*2 {
		t.Fatalf("expected %d bytes of pixel data, got %d", 240*240*2, len(data))
	}
	for i := 0; i < len(data); i += 2 {
		if data[i] != 0xf8 || data[i+1] != 0x00 {
			t.Fatalf("pixel %d is % x, expected red", i/2, data[i:i+2])
		}
	}
	for _, op := range c.ops[3:] {
		if len(op.Data) > mipiBatchSize {
			t.Fatalf("expected writes of at most %d bytes, got %d", mipiBatchSize, len(op.Data))
		}
	}
}

func TestMIPIDrawPixelsWindows(t *testing.T) {
	tests := []struct {
		Name    string
		Points  []image.Point
		Windows [][]byte // CASET x0 and RASET y0 per window
		Bytes   int
	}{
		{
			Name:    "continuous",
			Points:  []image.Point{{0, 0}, {1, 0}, {2, 0}},
			Windows: [][]byte{{0, 0}},
			Bytes:   6,
		},
		{
			Name:    "gap",
			Points:  []image.Point{{0, 0}, {1, 0}, {5, 5}, {6, 5}},
			Windows: [][]byte{{0, 0}, {5, 5}},
			Bytes:   8,
		},
		{
			Name:    "clipped",
			Points:  []image.Point{{-1, 0}, {0, 0}, {240, 0}, {1, 0}, {0, 240}},
			Windows: [][]byte{{0, 0}},
			Bytes:   4,
		},
		{
			Name:    "wrap inside window",
			Points:  []image.Point{{238, 0}, {239, 0}, {238, 1}, {0, 2}},
			Windows: [][]byte{{238, 0}, {0, 2}},
			Bytes:   8,
		},
		{
			Name:    "last pixel",
			Points:  []image.Point{{239, 239}, {0, 0}},
			Windows: [][]byte{{239, 239}, {0, 0}},
			Bytes:   4,
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			c := new(testConn)
			d := testGC9A01(it, c)

			err := d.DrawPixels(func(yield func(image.Point, pixel.CRGB16) bool) {
				for _, pt := range test.Points {
					if !yield(pt, pixel.Blue) {
						return
					}
				}
			})
			if err != nil {
				it.Fatal(err)
			}

			var windows [][]byte
			for i, op := range c.ops {
				if op.Command && op.Code == mipiCASET {
					windows = append(windows, []byte{op.Data[1], c.ops[i+1].Data[1]})
				}
			}
			if len(windows) != len(test.Windows) {
				it.Fatalf("expected %d windows, got %d: %v", len(test.Windows), len(windows), windows)
			}
			for i := range windows {
				if !bytes.Equal(windows[i], test.Windows[i]) {
					it.Errorf("window %d starts at %v, expected %v", i, windows[i], test.Windows[i])
				}
			}
			if v := len(c.data()); v != test.Bytes {
				it.Errorf("expected %d bytes of pixel data, got %d", test.Bytes, v)
			}
		})
	}
}

func TestMIPIDrawPixelsError(t *testing.T) {
	c := new(testConn)
	d := testGC9A01(t, c)
	c.failAfter = 2

	fb := testFrameBuf(t, 240, 240)
	fb.Clear(pixel.Green)
	err := Flush(d, fb)
	if err == nil {
		t.Fatal("expected error")
	}
	var te *TransferError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransferError, got %T: %v", err, err)
	}
	if !errors.Is(err, errBusTimeout) {
		t.Errorf("expected bus timeout, got %v", err)
	}
	for _, c := range fb.Pix {
		if c != pixel.Green {
			t.Fatal("expected frame buffer to be unchanged")
		}
	}
}

func TestMIPIWindowOffset(t *testing.T) {
	c := new(testConn)
	d, err := ST7735(c, &Config{ColOffset: 2, RowOffset: 1})
	if err != nil {
		t.Fatal(err)
	}
	c.ops = nil

	m := d.(*mipiDisplay)
	if err = m.SetWindow(0, 0, 127, 159); err != nil {
		t.Fatal(err)
	}
	if v := c.ops[0].Data; !bytes.Equal(v, []byte{0, 2, 0, 129}) {
		t.Errorf("unexpected column window % x", v)
	}
	if v := c.ops[1].Data; !bytes.Equal(v, []byte{0, 1, 0, 160}) {
		t.Errorf("unexpected row window % x", v)
	}
	if err = m.SetWindow(0, 0, 128, 159); !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestMIPIDraw(t *testing.T) {
	c := new(testConn)
	d := testGC9A01(t, c)

	if err := d.(*mipiDisplay).Draw(image.Rect(10, 10, 12, 11), image.NewUniform(color.White), image.Point{}); err != nil {
		t.Fatal(err)
	}
	if v := c.data(); !bytes.Equal(v, []byte{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("expected two white pixels, got % x", v)
	}
}

func TestMIPIBacklight(t *testing.T) {
	bl := &gpiotest.Pin{N: "BL", Num: 3}
	d, err := GC9A01(new(testConn), &Config{Backlight: bl})
	if err != nil {
		t.Fatal(err)
	}
	if bl.L != gpio.High {
		t.Error("expected backlight to be enabled")
	}
	if err = d.SetContrast(0xff); err != nil {
		t.Fatal(err)
	}
	if want := gpio.DutyMax / 0xff * 0xff; bl.D != want {
		t.Errorf("expected duty %s, got %s", want, bl.D)
	}
}

func TestMIPIClose(t *testing.T) {
	c := new(testConn)
	d := testGC9A01(t, c)

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if !c.closed {
		t.Error("expected connection to be closed")
	}
	if codes := c.commands(); len(codes) != 1 || codes[0] != mipiDISPOFF {
		t.Errorf("expected display off, got % x", codes)
	}

	err := d.DrawPixels(testFrameBuf(t, 1, 1).Pixels())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func testGC9A01(t *testing.T, c *testConn) Display {
	t.Helper()
	d, err := GC9A01(c, nil)
	if err != nil {
		t.Fatal(err)
	}
	c.ops = nil
	return d
}
