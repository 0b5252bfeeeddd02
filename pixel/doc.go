// Package pixel implements the 16-bit RGB color used by the LCD panels in this module.
//
// The color model is compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so the standard library drawing routines can render into a framebuffer holding
// these colors.
package pixel
