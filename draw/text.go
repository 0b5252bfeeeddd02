package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is a small fixed size bitmap font.
var DefaultFace font.Face = basicfont.Face7x13

// TrueTypeFace parses a TrueType font and returns a face of size points at 72 DPI.
func TrueTypeFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// GoFace returns the Go regular font at size points.
func GoFace(size float64) (font.Face, error) {
	return TrueTypeFace(goregular.TTF, size)
}

// Text draws s with its baseline starting at pt.
func Text(dst Image, pt image.Point, face font.Face, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y),
	}
	d.DrawString(s)
}

// TextBounds returns the size of s when drawn, the height spans ascent and descent.
func TextBounds(face font.Face, s string) image.Point {
	var (
		m = face.Metrics()
		w = font.MeasureString(face, s)
	)
	return image.Pt(w.Ceil(), (m.Ascent + m.Descent).Ceil())
}

// CenteredText draws s centered around p.
func CenteredText(dst Image, p image.Point, face font.Face, s string, c color.Color) {
	size := TextBounds(face, s)
	baseline := image.Pt(p.X-size.X/2, p.Y-size.Y/2+face.Metrics().Ascent.Ceil())
	Text(dst, baseline, face, s, c)
}
