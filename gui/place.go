package gui

// area is a screen rectangle in physical pixels.
type area struct {
	x, y, w, h int
}

func (a area) contains(px, py int) bool {
	return px >= a.x && px < a.x+a.w && py >= a.y && py < a.y+a.h
}

// centerOn returns the top-left corner that centres a w x h window on
// (px, py), shifted so it stays inside the work area holding the point.
// With no area holding the point the window is only centred.
func centerOn(px, py, w, h int, areas []area) (int, int) {
	x, y := px-w/2, py-h/2
	for _, a := range areas {
		if !a.contains(px, py) {
			continue
		}
		x = clamp(x, a.x, a.x+a.w-w)
		y = clamp(y, a.y, a.y+a.h-h)
		break
	}
	return x, y
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
