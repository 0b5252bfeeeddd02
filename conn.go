package roundlcd

import (
	"errors"
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/roundlcd/conn"
)

// Conn errors.
var (
	ErrDCPin = errors.New("roundlcd: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset sets the reset pin to the provided level.
	Reset(gpio.Level) error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// SPI is a Conn on a SPI bus with adjustable bus parameters.
type SPI interface {
	Conn

	// SetDataLow changes the data/command direction behaviour.
	SetDataLow(bool)

	// SetMode requests a SPI mode.
	SetMode(mode spi.Mode) error

	// SetMaxSpeed requests a SPI speed.
	SetMaxSpeed(hz int) error
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	// Bus is the periph SPI port name, empty selects the first available port.
	Bus       string
	Mode      spi.Mode
	SpeedHz   uint32
	DataLow   bool
	BatchSize uint

	// Reset pin, optional.
	Reset gpio.PinOut

	// DC is the data/command select pin.
	DC gpio.PinOut

	// CS is the chip select pin, optional. It is held low for the duration of each transfer.
	CS gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Mode:      spi.Mode0,
	SpeedHz:   40_000_000,
	BatchSize: 4096,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	28_000_000,
	32_000_000,
	36_000_000,
	40_000_000,
	48_000_000,
	50_000_000,
	52_000_000,
	62_500_000,
	80_000_000,
}

type spiConn struct {
	bus       *conn.SPI
	reset     gpio.PinOut
	dc        gpio.PinOut
	dcLevel   gpio.Level
	dcSet     bool
	cs        gpio.PinOut
	dataLow   bool
	batchSize int
}

// OpenSPI opens the SPI bus named in the configuration.
func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if !validPin(config.DC) {
		return nil, ErrDCPin
	}

	bus, err := conn.OpenSPI(config.Bus)
	if err != nil {
		return nil, err
	}

	c, err := newSPIConn(bus, config)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return c, nil
}

// NewSPI uses an already opened SPI port.
func NewSPI(port spi.Port, config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}
	if !validPin(config.DC) {
		return nil, ErrDCPin
	}
	return newSPIConn(conn.NewSPI(port), config)
}

func newSPIConn(bus *conn.SPI, config *SPIConfig) (*spiConn, error) {
	speed := config.SpeedHz
	if speed == 0 {
		speed = DefaultSPIConfig.SpeedHz
	}
	var valid bool
	for _, v := range ValidSPISpeeds {
		if valid = v == speed; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("roundlcd: invalid SPI speed %dHz", speed)
	}
	if err := bus.SetMaxSpeed(int(speed)); err != nil {
		return nil, err
	}
	if err := bus.SetMode(config.Mode); err != nil {
		return nil, err
	}

	batchSize := int(config.BatchSize)
	if batchSize == 0 {
		batchSize = int(DefaultSPIConfig.BatchSize)
	}

	c := &spiConn{
		bus:       bus,
		batchSize: batchSize,
		dataLow:   config.DataLow,
		dc:        config.DC,
	}
	if validPin(config.Reset) {
		c.reset = config.Reset
	}
	if validPin(config.CS) {
		c.cs = config.CS
		if err := c.cs.Out(gpio.High); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func validPin(p gpio.PinOut) bool {
	return p != nil && p != gpio.INVALID
}

func (c *spiConn) String() string {
	return c.bus.String()
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

// Reset drives the reset pin, it does nothing if no reset pin is wired.
func (c *spiConn) Reset(level gpio.Level) error {
	if c.reset == nil {
		return nil
	}
	return c.reset.Out(level)
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if !c.dcSet || c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
		c.dcSet = true
	}
	return nil
}

func (c *spiConn) updateCS(level gpio.Level) error {
	if c.cs == nil {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.updateDC(gpio.Level(c.dataLow)); err != nil {
		return
	}
	if _, err = c.bus.Write([]byte{cmnd}); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
			return
		}
		if err = c.writeChunked(data); err != nil {
			return
		}
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.Level(!c.dataLow)); err != nil {
		return
	}
	if err = c.updateCS(gpio.Low); err != nil {
		return
	}
	if err = c.writeChunked(data); err != nil {
		return
	}
	return c.updateCS(gpio.High)
}

func (c *spiConn) writeChunked(data []byte) (err error) {
	size := c.batchSize
	if limit := c.bus.MaxTxSize(); limit > 0 && limit < size {
		size = limit
	}
	if len(data) <= size {
		_, err = c.bus.Write(data)
		return
	}

	if debug {
		log.Printf("write %d bytes of data in %d chunks", len(data), (len(data)+size-1)/size)
	}
	for buffer := data; len(buffer) > 0; {
		n := min(len(buffer), size)
		if _, err = c.bus.Write(buffer[:n]); err != nil {
			return
		}
		buffer = buffer[n:]
	}
	return
}

func (c *spiConn) SetDataLow(v bool) {
	c.dataLow = v
	c.dcSet = false
}

func (c *spiConn) SetMode(mode spi.Mode) error {
	return c.bus.SetMode(mode)
}

func (c *spiConn) SetMaxSpeed(hz int) error {
	return c.bus.SetMaxSpeed(hz)
}
