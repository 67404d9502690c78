// Package imagegen renders placeholder hero images for seeded posts: an
// 800x500 vertical gradient with decorative circles, a tag label, and the
// wrapped post title.
package imagegen

import (
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math/rand"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	imgWidth  = 800
	imgHeight = 500

	jpegQuality = 85

	// titleWrapChars is the max characters per wrapped title line.
	titleWrapChars = 30
)

// palettes are the gradient endpoint pairs, cycled by palette index.
var palettes = [][2]color.RGBA{
	{{44, 62, 80, 255}, {52, 152, 219, 255}},   // dark blue -> light blue
	{{142, 68, 173, 255}, {41, 128, 185, 255}}, // purple -> blue
	{{39, 174, 96, 255}, {22, 160, 133, 255}},  // green -> teal
	{{211, 84, 0, 255}, {243, 156, 18, 255}},   // orange -> yellow
	{{192, 57, 43, 255}, {231, 76, 60, 255}},   // dark red -> light red
	{{44, 62, 80, 255}, {197, 230, 54, 255}},   // dark -> lime green
}

// Gradient writes a hero JPEG for the given title and tag. paletteIdx picks
// the gradient pair and seeds the circle placement, so the same index always
// yields the same image.
func Gradient(w io.Writer, title, tag string, paletteIdx int) error {
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	p := palettes[paletteIdx%len(palettes)]

	for y := 0; y < imgHeight; y++ {
		c := lerp(p[0], p[1], float64(y)/imgHeight)
		for x := 0; x < imgWidth; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	// Decorative circles, deterministic per palette index.
	rnd := rand.New(rand.NewSource(int64(paletteIdx)))
	mid := lerp(p[0], p[1], 0.5)
	lighter := color.RGBA{clamp8(int(mid.R) + 30), clamp8(int(mid.G) + 30), clamp8(int(mid.B) + 30), 255}
	for i := 0; i < 5; i++ {
		cx := rnd.Intn(imgWidth)
		cy := rnd.Intn(imgHeight)
		r := 30 + rnd.Intn(91)
		fillCircle(img, cx, cy, r, lighter)
	}

	lines := wrap(title, titleWrapChars)
	lineHeight := 42
	startY := (imgHeight - (len(lines)*lineHeight + 30)) / 2

	drawText(img, imgWidth/2-50, startY, strings.ToUpper(tag), color.RGBA{255, 255, 255, 255})
	startY += 40

	for i, line := range lines {
		y := startY + i*lineHeight
		drawText(img, imgWidth/2-150+2, y+2, line, color.RGBA{0, 0, 0, 255})
		drawText(img, imgWidth/2-150, y, line, color.RGBA{255, 255, 255, 255})
	}

	return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		255,
	}
}

func clamp8(v int) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		if y < 0 || y >= imgHeight {
			continue
		}
		for x := cx - r; x <= cx+r; x++ {
			if x < 0 || x >= imgWidth {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// wrap greedily packs words into lines of at most maxChars characters.
func wrap(s string, maxChars int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(s) {
		if current == "" {
			current = word
			continue
		}
		if len(current)+1+len(word) <= maxChars {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// drawText renders s at (x, y) with the basicfont face. The face is small
// for an 800px canvas but keeps the generator dependency-light; these are
// placeholder images.
func drawText(img *image.RGBA, x, y int, s string, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+13),
	}
	d.DrawString(s)
}
