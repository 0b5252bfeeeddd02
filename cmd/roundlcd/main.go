package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"golang.org/x/image/font"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/roundlcd"
	"github.com/BeatGlow/roundlcd/draw"
	"github.com/BeatGlow/roundlcd/fbdev"
	"github.com/BeatGlow/roundlcd/framebuffer"
	"github.com/BeatGlow/roundlcd/internal/cycle"
	"github.com/BeatGlow/roundlcd/pixel"
)

// Frame storage for the 240x240 panels.
var data [240 * 240]pixel.CRGB16

func main() {
	driverFlag := flag.String("driver", "gc9a01", "Display driver (gc9a01, st7789, st7735 or fbdev)")
	widthFlag := flag.Int("width", 0, "Display width (default: use driver default)")
	heightFlag := flag.Int("height", 0, "Display height (default: use driver default)")
	spiFlag := flag.String("spi", "", "SPI port name (default: use first available)")
	speedFlag := flag.Uint("speed", uint(roundlcd.DefaultSPIConfig.SpeedHz), "SPI speed in Hz")
	resetPinFlag := flag.String("reset", "", "Reset GPIO pin (optional)")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	csPinFlag := flag.String("cs", "", "Chip select GPIO pin (optional)")
	blPinFlag := flag.String("bl", "GPIO19", "Backlight GPIO pin (optional)")
	invertFlag := flag.String("invert", "", "Color inversion (yes, no or empty for the panel default)")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	fbFlag := flag.String("fb", "/dev/fb0", "Framebuffer device, used by the fbdev driver")
	delayFlag := flag.Duration("delay", cycle.DefaultDelay, "Delay between colors")
	labelFlag := flag.Bool("label", false, "Draw the color name")
	fontSizeFlag := flag.Float64("font-size", 0, "Label font size in points (default: use the built-in bitmap font)")
	countFlag := flag.Int("count", 0, "Number of color cycles (default: run forever)")
	flag.Parse()

	var rotation roundlcd.Rotation
	switch *rotateFlag {
	case "", "no", "0":
		rotation = roundlcd.NoRotation
	case "90", "right", "cw":
		rotation = roundlcd.Rotate90
	case "180", "flip":
		rotation = roundlcd.Rotate180
	case "270", "left", "ccw":
		rotation = roundlcd.Rotate270
	default:
		fatal(fmt.Errorf("invalid rotation %q specified", *rotateFlag))
	}

	var inversion roundlcd.Inversion
	switch strings.ToLower(*invertFlag) {
	case "":
		inversion = roundlcd.DefaultInversion
	case "yes", "on", "true":
		inversion = roundlcd.Inverted
	case "no", "off", "false":
		inversion = roundlcd.NotInverted
	default:
		fatal(fmt.Errorf("invalid inversion %q specified", *invertFlag))
	}

	var (
		output interface {
			roundlcd.PixelWriter
			fmt.Stringer
			Bounds() image.Rectangle
			Close() error
		}
		err error
	)
	switch driver := strings.ToLower(*driverFlag); driver {
	case "fbdev":
		output, err = fbdev.Open(*fbFlag)

	case "gc9a01", "st7789", "st7735":
		if _, err = host.Init(); err != nil {
			fatal(err)
		}

		var (
			config = &roundlcd.Config{
				Width:     *widthFlag,
				Height:    *heightFlag,
				Rotation:  rotation,
				Inversion: inversion,
				Backlight: pin(*blPinFlag),
			}
			spiConfig = roundlcd.DefaultSPIConfig
			conn      roundlcd.Conn
		)
		spiConfig.Bus = *spiFlag
		spiConfig.SpeedHz = uint32(*speedFlag)
		spiConfig.Reset = pin(*resetPinFlag)
		spiConfig.DC = pin(*dcPinFlag)
		spiConfig.CS = pin(*csPinFlag)
		if conn, err = roundlcd.OpenSPI(&spiConfig); err != nil {
			fatal(err)
		}
		fmt.Printf("using connection: %s\n", conn)

		switch driver {
		case "gc9a01":
			output, err = roundlcd.GC9A01(conn, config)
		case "st7789":
			output, err = roundlcd.ST7789(conn, config)
		case "st7735":
			output, err = roundlcd.ST7735(conn, config)
		}
		if err != nil {
			_ = conn.Close()
		}

	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		fatal(err)
	}
	defer output.Close()
	fmt.Printf("using driver: %s\n", output)

	fb, err := newFrameBuf(output.Bounds())
	if err != nil {
		fatal(err)
	}

	var face font.Face
	if *labelFlag {
		if *fontSizeFlag > 0 {
			if face, err = draw.GoFace(*fontSizeFlag); err != nil {
				fatal(err)
			}
		} else {
			face = draw.DefaultFace
		}
	}

	loop := &cycle.Loop{
		Display: output,
		Frame:   fb,
		Delay:   *delayFlag,
		Label:   face,
		Logger:  log.Default(),
	}
	if *countFlag <= 0 {
		fmt.Println("hit control-c to stop...")
	}
	if err = loop.Run(*countFlag); err != nil {
		_ = output.Close()
		fatal(err)
	}
}

// newFrameBuf sizes the frame buffer to the output, using the static storage for 240x240 panels.
func newFrameBuf(r image.Rectangle) (*framebuffer.FrameBuf, error) {
	w, h := r.Dx(), r.Dy()
	if w == 240 && h == 240 {
		return framebuffer.New(data[:], w, h)
	}
	return framebuffer.New(make([]pixel.CRGB16, w*h), w, h)
}

func pin(name string) gpio.PinOut {
	if name == "" {
		return nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		fatal(fmt.Errorf("unknown GPIO pin %q", name))
	}
	return p
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
