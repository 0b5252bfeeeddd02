// Package conn wraps periph.io SPI ports for display controllers.
package conn

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// ErrConnected is returned when changing the bus parameters after the first transfer.
var ErrConnected = errors.New("conn: SPI port is already connected")

// SPI is a periph.io SPI port that connects on the first transfer.
//
// The bus mode, word size and speed can be adjusted until then; periph only allows a port to be
// connected once.
type SPI struct {
	port        spi.Port
	c           spi.Conn
	mode        spi.Mode
	bitsPerWord int
	maxSpeed    physic.Frequency
	maxTxSize   int
}

// OpenSPI opens the SPI port by name, an empty name opens the first available port.
func OpenSPI(name string) (*SPI, error) {
	p, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}
	return NewSPI(p), nil
}

// NewSPI uses an already opened port.
func NewSPI(port spi.Port) *SPI {
	return &SPI{
		port:        port,
		mode:        spi.Mode0,
		bitsPerWord: 8,
	}
}

// Close the port, if it can be closed.
func (c *SPI) Close() error {
	if p, ok := c.port.(spi.PortCloser); ok {
		return p.Close()
	}
	return nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s mode=%d bits per word=%d max speed=%s", c.port, c.mode, c.bitsPerWord, c.maxSpeed)
}

func (c *SPI) Mode() spi.Mode {
	return c.mode
}

func (c *SPI) SetMode(mode spi.Mode) error {
	if c.c != nil {
		if mode == c.mode {
			return nil
		}
		return ErrConnected
	}
	c.mode = mode
	return nil
}

func (c *SPI) BitsPerWord() int {
	return c.bitsPerWord
}

func (c *SPI) SetBitsPerWord(bits int) error {
	if bits < 8 || bits > 32 {
		return fmt.Errorf("conn: SPI bits per word need to be 8 or more and 32 or less, got %d", bits)
	}
	if c.c != nil {
		if bits == c.bitsPerWord {
			return nil
		}
		return ErrConnected
	}
	c.bitsPerWord = bits
	return nil
}

func (c *SPI) MaxSpeed() int {
	return int(c.maxSpeed / physic.Hertz)
}

// SetMaxSpeed requests a bus speed, 0 leaves the choice to the port.
func (c *SPI) SetMaxSpeed(hz int) error {
	if hz < 0 {
		return nil
	}
	f := physic.Frequency(hz) * physic.Hertz
	if c.c != nil {
		if f == c.maxSpeed {
			return nil
		}
		return ErrConnected
	}
	c.maxSpeed = f
	return nil
}

// MaxTxSize is the largest transfer the port accepts, 0 means unknown.
func (c *SPI) MaxTxSize() int {
	return c.maxTxSize
}

func (c *SPI) connect() (err error) {
	if c.c != nil {
		return
	}
	if c.c, err = c.port.Connect(c.maxSpeed, c.mode, c.bitsPerWord); err != nil {
		return
	}
	if l, ok := c.c.(conn.Limits); ok {
		c.maxTxSize = l.MaxTxSize()
	}
	return
}

// Connect establishes the connection with the current bus parameters.
func (c *SPI) Connect() error {
	return c.connect()
}

func (c *SPI) Write(b []byte) (n int, err error) {
	if err = c.connect(); err != nil {
		return
	}
	if err = c.c.Tx(b, nil); err != nil {
		return
	}
	return len(b), nil
}
