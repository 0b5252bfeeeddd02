package roundlcd

import (
	"log"
	"time"

	"github.com/BeatGlow/roundlcd/framebuffer"
)

// Flush writes the full contents of fb to w in a single call. The frame buffer is not modified;
// any error from w is returned as is.
func Flush(w PixelWriter, fb *framebuffer.FrameBuf) error {
	if debug {
		defer func(start time.Time) {
			log.Printf("flush %dx%d took %s", fb.Width(), fb.Height(), time.Since(start))
		}(time.Now())
	}
	return w.DrawPixels(fb.Pixels())
}
