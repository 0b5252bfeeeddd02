package roundlcd

import (
	"periph.io/x/conn/v3/spi"
)

const (
	st7735DefaultWidth  = 128
	st7735DefaultHeight = 160
)

// Registers (from st7735.pdf), MIPI commands are shared.
const (
	st7735FRMCTR1 = 0xB1
	st7735FRMCTR2 = 0xB2
	st7735FRMCTR3 = 0xB3
	st7735INVCTR  = 0xB4
	st7735PWCTR1  = 0xC0
	st7735PWCTR2  = 0xC1
	st7735PWCTR3  = 0xC2
	st7735PWCTR4  = 0xC3
	st7735PWCTR5  = 0xC4
	st7735VMCTR1  = 0xC5
	st7735GMCTRP1 = 0xE0
	st7735GMCTRN1 = 0xE1
)

var st7735Model = mipiModel{
	name:      "ST7735",
	width:     st7735DefaultWidth,
	height:    st7735DefaultHeight,
	maxWidth:  132,
	maxHeight: 162,
	softReset: true,
	init: [][]byte{
		{st7735FRMCTR1, 0x01, 0x2C, 0x2D},
		{st7735FRMCTR2, 0x01, 0x2C, 0x2D},
		{st7735FRMCTR3, 0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D},
		{st7735INVCTR, 0x07},
		{st7735PWCTR1, 0xA2, 0x02, 0x84},
		{st7735PWCTR2, 0xC5},
		{st7735PWCTR3, 0x0A, 0x00},
		{st7735PWCTR4, 0x8A, 0x2A},
		{st7735PWCTR5, 0x8A, 0xEE},
		{st7735VMCTR1, 0x0E},
		{st7735GMCTRP1, 0x02, 0x1C, 0x07, 0x12, 0x37, 0x32, 0x29, 0x2D, 0x29, 0x25, 0x2B, 0x39, 0x00, 0x01, 0x03, 0x10},
		{st7735GMCTRN1, 0x03, 0x1D, 0x07, 0x06, 0x2E, 0x2C, 0x29, 0x2D, 0x2E, 0x2E, 0x37, 0x3F, 0x00, 0x00, 0x02, 0x10},
	},
}

// ST7735 drives 128x160 TFT panels.
func ST7735(c Conn, config *Config) (Display, error) {
	if bus, ok := c.(SPI); ok {
		bus.SetDataLow(false)
		if err := bus.SetMode(spi.Mode3); err != nil {
			return nil, err
		}
	}
	return newMIPIDisplay(c, &st7735Model, config)
}
