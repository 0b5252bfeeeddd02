package pixel

import (
	"encoding/binary"
	"image/color"
	"testing"
)

func TestCRGB16(t *testing.T) {
	tests := []struct {
		Name    string
		Color   CRGB16
		R, G, B uint32
	}{
		{"black", Black, 0x0000, 0x0000, 0x0000},
		{"white", White, 0xffff, 0xffff, 0xffff},
		{"red", Red, 0xffff, 0x0000, 0x0000},
		{"green", Green, 0x0000, 0xffff, 0x0000},
		{"blue", Blue, 0x0000, 0x0000, 0xffff},
		{"yellow", Yellow, 0xffff, 0xffff, 0x0000},
		{"cyan", Cyan, 0x0000, 0xffff, 0xffff},
		{"magenta", Magenta, 0xffff, 0x0000, 0xffff},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			r, g, b, a := test.Color.RGBA()
			if r != test.R {
				it.Errorf("expected red to be %#04x, got %#04x", test.R, r)
			}
			if g != test.G {
				it.Errorf("expected green to be %#04x, got %#04x", test.G, g)
			}
			if b != test.B {
				it.Errorf("expected blue to be %#04x, got %#04x", test.B, b)
			}
			if a != 0xffff {
				it.Errorf("expected opaque alpha, got %#04x", a)
			}
		})
	}
}

func TestCRGB16Model(t *testing.T) {
	tests := []struct {
		Name  string
		Color color.Color
		Want  CRGB16
	}{
		{"rgba red", color.RGBA{R: 0xff, A: 0xff}, Red},
		{"rgba green", color.RGBA{G: 0xff, A: 0xff}, Green},
		{"rgba blue", color.RGBA{B: 0xff, A: 0xff}, Blue},
		{"gray16 white", color.Gray16{Y: 0xffff}, White},
		{"gray black", color.Gray{}, Black},
		{"nrgba cyan", color.NRGBA{G: 0xff, B: 0xff, A: 0xff}, Cyan},
		{"passthrough", CRGB16{0x1234}, CRGB16{0x1234}},
		{"truncated", color.RGBA{R: 0x0f, G: 0x03, B: 0x07, A: 0xff}, CRGB16{0x0800}},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if v := CRGB16Model.Convert(test.Color); v != test.Want {
				it.Errorf("expected %#+v, got %#+v", test.Want, v)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	for _, c := range []CRGB16{Black, White, Red, Green, Blue, Yellow, Cyan, Magenta} {
		r, g, b, _ := c.RGBA()
		if v := RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)); v != c {
			t.Errorf("expected %#04x, got %#04x", c.V, v.V)
		}
	}
	c := RGB(0xff, 0x80, 0x08)
	if c.R5() != 0x1f || c.G6() != 0x20 || c.B5() != 0x01 {
		t.Errorf("unexpected components %d %d %d", c.R5(), c.G6(), c.B5())
	}
}

func TestCRGB16Append(t *testing.T) {
	c := CRGB16{0xf81f}
	if v := c.Append(nil, binary.BigEndian); len(v) != 2 || v[0] != 0xf8 || v[1] != 0x1f {
		t.Errorf("big endian: got % x", v)
	}
	if v := c.Append([]byte{0x00}, binary.LittleEndian); len(v) != 3 || v[1] != 0x1f || v[2] != 0xf8 {
		t.Errorf("little endian: got % x", v)
	}
}
