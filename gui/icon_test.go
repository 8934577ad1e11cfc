package gui

import (
	"bytes"
	"image/png"
	"testing"
)

func TestTrayIconIsPNG(t *testing.T) {
	data := trayIcon()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != iconSize || b.Dy() != iconSize {
		t.Errorf("icon is %dx%d", b.Dx(), b.Dy())
	}
}

func TestIconHasHole(t *testing.T) {
	img := iconImage()
	if _, _, _, a := img.At(iconSize/2, iconSize/2).RGBA(); a != 0 {
		t.Error("centre of icon should be transparent")
	}
	opaque := 0
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				opaque++
			}
		}
	}
	if opaque == 0 {
		t.Error("icon is empty")
	}
}
