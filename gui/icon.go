package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"accentring/surface"
)

const iconSize = 22

// iconImage draws a small ring with the slice boundaries cut out.
func iconImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	ring := surface.Ring{Outer: 10, Inner: 5, N: surface.DefaultRing().N}
	step := 2 * math.Pi / float64(ring.N)
	center := float64(iconSize) / 2
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) - center + 0.5
			dy := float64(y) - center + 0.5
			if ring.SliceAt(dx, dy) < 0 {
				continue
			}
			a := math.Atan2(dx, -dy)
			if a < 0 {
				a += 2 * math.Pi
			}
			if frac := math.Mod(a, step) / step; frac < 0.08 || frac > 0.92 {
				continue
			}
			img.Set(x, y, color.RGBA{211, 211, 211, 255})
		}
	}
	return img
}

func trayIcon() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, iconImage()); err != nil {
		return nil
	}
	return buf.Bytes()
}
