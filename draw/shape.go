package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	for i := 0; i < w; i++ {
		dst.Set(x+i, y, c)
	}
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, rect.Dx(), c)
	}
}

// Circle draws the outline of a circle with its center at p.
func Circle(dst Image, p image.Point, radius int, c color.Color) {
	midpoint(radius, func(x, y int) {
		dst.Set(p.X+x, p.Y+y, c)
		dst.Set(p.X+y, p.Y+x, c)
		dst.Set(p.X-y, p.Y+x, c)
		dst.Set(p.X-x, p.Y+y, c)
		dst.Set(p.X-x, p.Y-y, c)
		dst.Set(p.X-y, p.Y-x, c)
		dst.Set(p.X+y, p.Y-x, c)
		dst.Set(p.X+x, p.Y-y, c)
	})
}

// Disc draws a filled circle with its center at p.
func Disc(dst Image, p image.Point, radius int, c color.Color) {
	midpoint(radius, func(x, y int) {
		HorizontalLine(dst, p.X-x, p.Y+y, 2*x+1, c)
		HorizontalLine(dst, p.X-x, p.Y-y, 2*x+1, c)
		HorizontalLine(dst, p.X-y, p.Y+x, 2*y+1, c)
		HorizontalLine(dst, p.X-y, p.Y-x, 2*y+1, c)
	})
}

// Ring draws a band between two radii around p, such as the bezel of a round panel.
func Ring(dst Image, p image.Point, inner, outer int, c color.Color) {
	var (
		r2min = inner * inner
		r2max = outer * outer
	)
	for y := -outer; y <= outer; y++ {
		for x := -outer; x <= outer; x++ {
			if d := x*x + y*y; d >= r2min && d <= r2max {
				dst.Set(p.X+x, p.Y+y, c)
			}
		}
	}
}

// midpoint walks one octant of a circle, x grows from 0 while y shrinks from radius.
func midpoint(radius int, plot func(x, y int)) {
	var (
		x = 0
		y = radius
		f = 1 - radius
	)
	for x <= y {
		plot(x, y)
		x++
		if f < 0 {
			f += 2*x + 1
		} else {
			y--
			f += 2*(x-y) + 1
		}
	}
}

func bresenham(dst Image, x0, y0, x1, y1 int, c color.Color) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy > 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		dst.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}
