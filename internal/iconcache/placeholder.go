package iconcache

import (
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var placeholderPalette = []color.RGBA{
	{R: 0x4c, G: 0x6e, B: 0xf5, A: 0xff},
	{R: 0xe0, G: 0x5d, B: 0x44, A: 0xff},
	{R: 0x2f, G: 0xa8, B: 0x6b, A: 0xff},
	{R: 0xc2, G: 0x8b, B: 0x1d, A: 0xff},
	{R: 0x8e, G: 0x5c, B: 0xd9, A: 0xff},
	{R: 0x3a, G: 0x9f, B: 0xb5, A: 0xff},
}

// Placeholder draws a size×size tile with the app's initial, in a color
// derived from the app id.
func Placeholder(appID string, size int) image.Image {
	if size <= 0 {
		size = DefaultSize
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	h := fnv.New32a()
	h.Write([]byte(appID))
	bg := placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawLetter(img, initial(appID), size/2, size/2)
	return img
}

// initial picks the first letter of the last dotted component, so
// "com.apple.Terminal" gives "T".
func initial(appID string) string {
	name := appID
	if i := strings.LastIndex(appID, "."); i >= 0 && i < len(appID)-1 {
		name = appID[i+1:]
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return strings.ToUpper(string(r))
		}
	}
	return "?"
}

// drawLetter centers text at (x, y) in white with a dark outline.
func drawLetter(img *image.RGBA, text string, x, y int) {
	// basicfont.Face7x13 glyphs are 7px wide; the baseline sits 11px below
	// the top of the cell.
	offsetX := x - len(text)*7/2
	offsetY := y + 11 - 13/2

	outline := image.NewUniform(color.RGBA{A: 0x90})
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  outline,
				Face: basicfont.Face7x13,
				Dot:  fixed.P(offsetX+dx, offsetY+dy),
			}
			d.DrawString(text)
		}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(offsetX, offsetY),
	}
	d.DrawString(text)
}
