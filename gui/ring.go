//go:build !nogui

package gui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"accentring/surface"
)

var (
	colorSlice  = color.RGBA{211, 211, 211, 255}
	colorHover  = color.RGBA{255, 215, 0, 255}
	colorBorder = color.RGBA{105, 105, 105, 255}
	colorLabel  = color.RGBA{0, 0, 0, 255}
)

const labelSize = 16

// RingWidget draws the slices and turns clicks into picks.
type RingWidget struct {
	widget.BaseWidget

	ring   surface.Ring
	labels []string

	mu      sync.Mutex
	hover   int
	onPick  func(idx int)
	onClose func()
}

func NewRingWidget(onPick func(int), onClose func()) *RingWidget {
	w := &RingWidget{
		ring:    surface.DefaultRing(),
		labels:  surface.Labels(),
		hover:   -1,
		onPick:  onPick,
		onClose: onClose,
	}
	w.ExtendBaseWidget(w)
	return w
}

func (w *RingWidget) MinSize() fyne.Size {
	return fyne.NewSize(surface.Diameter, surface.Diameter)
}

// sliceAt maps a position inside the widget to a slice.
func (w *RingWidget) sliceAt(p fyne.Position) int {
	size := w.Size()
	if size.Width <= 0 {
		return -1
	}
	scale := float64(surface.Diameter) / float64(size.Width)
	dx := (float64(p.X) - float64(size.Width)/2) * scale
	dy := (float64(p.Y) - float64(size.Height)/2) * scale
	return w.ring.SliceAt(dx, dy)
}

// Tapped picks the slice under the pointer. Taps in the hole or outside the
// ring are ignored.
func (w *RingWidget) Tapped(ev *fyne.PointEvent) {
	if idx := w.sliceAt(ev.Position); idx >= 0 && w.onPick != nil {
		w.onPick(idx)
	}
}

// TappedSecondary closes the ring without a pick.
func (w *RingWidget) TappedSecondary(*fyne.PointEvent) {
	if w.onClose != nil {
		w.onClose()
	}
}

func (w *RingWidget) MouseIn(ev *desktop.MouseEvent) { w.setHover(w.sliceAt(ev.Position)) }

func (w *RingWidget) MouseMoved(ev *desktop.MouseEvent) { w.setHover(w.sliceAt(ev.Position)) }

func (w *RingWidget) MouseOut() { w.setHover(-1) }

func (w *RingWidget) setHover(idx int) {
	w.mu.Lock()
	changed := w.hover != idx
	w.hover = idx
	w.mu.Unlock()
	if changed {
		w.Refresh()
	}
}

func (w *RingWidget) hovered() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hover
}

func (w *RingWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &ringRenderer{w: w}
	r.raster = canvas.NewRasterWithPixels(r.pixel)
	for _, l := range w.labels {
		t := canvas.NewText(l, colorLabel)
		t.TextSize = labelSize
		t.TextStyle = fyne.TextStyle{Bold: true}
		r.texts = append(r.texts, t)
	}
	return r
}

type ringRenderer struct {
	w      *RingWidget
	raster *canvas.Raster
	texts  []*canvas.Text
}

// pixel colours one raster pixel. The raster may be rendered at a
// different resolution than the widget size.
func (r *ringRenderer) pixel(x, y, width, height int) color.Color {
	if width <= 0 || height <= 0 {
		return color.Transparent
	}
	ring := r.w.ring
	scale := float64(surface.Diameter) / float64(width)
	dx := (float64(x) + 0.5 - float64(width)/2) * scale
	dy := (float64(y) + 0.5 - float64(height)/2) * scale
	idx := ring.SliceAt(dx, dy)
	if idx < 0 {
		return color.Transparent
	}
	// Thin border on the ring edges.
	if idx2 := ring.SliceAt(dx*1.02, dy*1.02); idx2 < 0 {
		return colorBorder
	}
	if idx2 := ring.SliceAt(dx*0.98, dy*0.98); idx2 < 0 {
		return colorBorder
	}
	if idx == r.w.hovered() {
		return colorHover
	}
	return colorSlice
}

func (r *ringRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
	scale := size.Width / surface.Diameter
	for i, t := range r.texts {
		dx, dy := r.w.ring.Mid(i)
		ts := t.MinSize()
		cx := size.Width/2 + float32(dx)*scale
		cy := size.Height/2 + float32(dy)*scale
		t.Move(fyne.NewPos(cx-ts.Width/2, cy-ts.Height/2))
		t.Resize(ts)
	}
}

func (r *ringRenderer) MinSize() fyne.Size { return r.w.MinSize() }

func (r *ringRenderer) Refresh() {
	r.raster.Refresh()
	for _, t := range r.texts {
		t.Refresh()
	}
}

func (r *ringRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(r.texts)+1)
	objs = append(objs, r.raster)
	for _, t := range r.texts {
		objs = append(objs, t)
	}
	return objs
}

func (r *ringRenderer) Destroy() {}
