package roundlcd

import (
	"periph.io/x/conn/v3/spi"
)

const (
	gc9a01DefaultWidth  = 240
	gc9a01DefaultHeight = 240
)

// Registers (from GC9A01A datasheet), MIPI commands are shared.
const (
	gc9a01InterRegisterEnable1 = 0xFE
	gc9a01InterRegisterEnable2 = 0xEF
	gc9a01DisplayFunction      = 0xB6 // Display Function Control
	gc9a01PowerControl2        = 0xC3 // Vreg1a voltage
	gc9a01PowerControl3        = 0xC4 // Vreg1b voltage
	gc9a01PowerControl4        = 0xC9 // Vreg2a voltage
	gc9a01FrameRate            = 0xE8 // Frame Rate
	gc9a01SetGamma1            = 0xF0
	gc9a01SetGamma2            = 0xF1
	gc9a01SetGamma3            = 0xF2
	gc9a01SetGamma4            = 0xF3
)

var gc9a01Model = mipiModel{
	name:      "GC9A01",
	width:     gc9a01DefaultWidth,
	height:    gc9a01DefaultHeight,
	maxWidth:  240,
	maxHeight: 240,
	inverted:  true, // IPS panel
	madctl:    0,
	init: [][]byte{
		{gc9a01InterRegisterEnable2},
		{0xEB, 0x14},
		{gc9a01InterRegisterEnable1},
		{gc9a01InterRegisterEnable2},
		{0xEB, 0x14},
		{0x84, 0x40},
		{0x85, 0xFF},
		{0x86, 0xFF},
		{0x87, 0xFF},
		{0x88, 0x0A},
		{0x89, 0x21},
		{0x8A, 0x00},
		{0x8B, 0x80},
		{0x8C, 0x01},
		{0x8D, 0x01},
		{0x8E, 0xFF},
		{0x8F, 0xFF},
		{gc9a01DisplayFunction, 0x00, 0x20}, // Gate scan direction, source output direction
		{0x90, 0x08, 0x08, 0x08, 0x08},
		{0xBD, 0x06},
		{0xBC, 0x00},
		{0xFF, 0x60, 0x01, 0x04},
		{gc9a01PowerControl2, 0x13},
		{gc9a01PowerControl3, 0x13},
		{gc9a01PowerControl4, 0x22},
		{0xBE, 0x11},
		{0xE1, 0x10, 0x0E},
		{0xDF, 0x21, 0x0C, 0x02},
		{gc9a01SetGamma1, 0x45, 0x09, 0x08, 0x08, 0x26, 0x2A},
		{gc9a01SetGamma2, 0x43, 0x70, 0x72, 0x36, 0x37, 0x6F},
		{gc9a01SetGamma3, 0x45, 0x09, 0x08, 0x08, 0x26, 0x2A},
		{gc9a01SetGamma4, 0x43, 0x70, 0x72, 0x36, 0x37, 0x6F},
		{0xED, 0x1B, 0x0B},
		{0xAE, 0x77},
		{0xCD, 0x63},
		{0x70, 0x07, 0x07, 0x04, 0x0E, 0x0F, 0x09, 0x07, 0x08, 0x03},
		{gc9a01FrameRate, 0x34}, // 4 dot inversion
		{0x62, 0x18, 0x0D, 0x71, 0xED, 0x70, 0x70, 0x18, 0x0F, 0x71, 0xEF, 0x70, 0x70},
		{0x63, 0x18, 0x11, 0x71, 0xF1, 0x70, 0x70, 0x18, 0x13, 0x71, 0xF3, 0x70, 0x70},
		{0x64, 0x28, 0x29, 0xF1, 0x01, 0xF1, 0x00, 0x07},
		{0x66, 0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00},
		{0x67, 0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98},
		{0x74, 0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00},
		{0x98, 0x3E, 0x07},
		{mipiTEON},
	},
}

// GC9A01 drives a 240x240 round IPS panel.
//
// The panel colors are inverted unless the configuration asks otherwise.
func GC9A01(c Conn, config *Config) (Display, error) {
	if bus, ok := c.(SPI); ok {
		bus.SetDataLow(false)
		if err := bus.SetMode(spi.Mode0); err != nil {
			return nil, err
		}
	}
	return newMIPIDisplay(c, &gc9a01Model, config)
}
