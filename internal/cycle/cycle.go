// Package cycle implements the color cycling loop of the demo.
package cycle

import (
	"image"
	"log"
	"strings"
	"time"

	"golang.org/x/image/font"

	"github.com/BeatGlow/roundlcd"
	"github.com/BeatGlow/roundlcd/draw"
	"github.com/BeatGlow/roundlcd/framebuffer"
	"github.com/BeatGlow/roundlcd/pixel"
)

// DefaultDelay between two steps.
const DefaultDelay = 500 * time.Millisecond

// Step is one color in the cycle.
type Step struct {
	Name  string
	Color pixel.CRGB16
}

// DefaultSteps cycles through red, green and blue.
var DefaultSteps = []Step{
	{"red", pixel.Red},
	{"green", pixel.Green},
	{"blue", pixel.Blue},
}

// Loop clears the frame buffer to each color in turn and flushes it to the display.
type Loop struct {
	Display roundlcd.PixelWriter
	Frame   *framebuffer.FrameBuf

	// Steps to cycle through, DefaultSteps if empty.
	Steps []Step

	// Delay after each step, DefaultDelay if zero.
	Delay time.Duration

	// Label draws the step name in the center of the frame when set.
	Label font.Face

	// Sleep blocks for the delay, time.Sleep if nil.
	Sleep func(time.Duration)

	// Logger for progress messages, the standard logger if nil.
	Logger *log.Logger
}

// Run clears the display to black, then cycles through the steps. A non-positive number of
// iterations runs forever. The first flush error stops the loop and is returned.
func (l *Loop) Run(iterations int) (err error) {
	l.Frame.Clear(pixel.Black)
	if err = l.flush("black"); err != nil {
		return
	}

	steps := l.Steps
	if len(steps) == 0 {
		steps = DefaultSteps
	}
	for i := 0; iterations <= 0 || i < iterations; i++ {
		for _, step := range steps {
			if err = l.step(step); err != nil {
				return
			}
		}
	}
	return
}

func (l *Loop) step(step Step) error {
	l.Frame.Clear(step.Color)
	if l.Label != nil {
		draw.CenteredText(l.Frame, center(l.Frame.Bounds()), l.Label, strings.ToUpper(step.Name), contrast(step.Color))
	}
	if err := l.flush(step.Name); err != nil {
		return err
	}
	l.logger().Printf("%s!", strings.ToUpper(step.Name))
	l.sleep(l.delay())
	return nil
}

func (l *Loop) flush(name string) error {
	if err := roundlcd.Flush(l.Display, l.Frame); err != nil {
		l.logger().Printf("flush %s failed: %v", name, err)
		return err
	}
	return nil
}

func (l *Loop) delay() time.Duration {
	if l.Delay > 0 {
		return l.Delay
	}
	return DefaultDelay
}

func (l *Loop) sleep(d time.Duration) {
	if l.Sleep != nil {
		l.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (l *Loop) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// contrast picks black or white, whichever reads better on c.
func contrast(c pixel.CRGB16) pixel.CRGB16 {
	// Rec. 601 luma on 8-bit components.
	r, g, b, _ := c.RGBA()
	if (299*(r>>8)+587*(g>>8)+114*(b>>8))/1000 > 0x80 {
		return pixel.Black
	}
	return pixel.White
}
