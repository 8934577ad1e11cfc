// Package compose maps a selected slice and a captured key to output text.
package compose

import "accentring/keyboard"

// StrokeIndex is the slice that substitutes a letter-with-stroke glyph
// instead of appending a combining mark.
const StrokeIndex = 2

const (
	strokeLower = "\u0111"
	strokeUpper = "\u0110"
)

type entry struct {
	mark rune // 0 for the stroke substitution
	name string
}

var table = [...]entry{
	{'\u0300', "grave"},
	{'\u0301', "acute"},
	{0, "stroke"},
	{'\u0309', "hook above"},
	{'\u0302', "circumflex"},
	{'\u0306', "breve"},
	{'\u0323', "dot below"},
	{'\u0303', "tilde"},
	{'\u031B', "horn"},
}

// Len is the number of slices.
func Len() int { return len(table) }

// InRange reports whether idx addresses a slice.
func InRange(idx int) bool { return idx >= 0 && idx < len(table) }

// Mark returns the combining mark for idx. ok is false for the stroke
// slice and for indices out of range.
func Mark(idx int) (mark rune, ok bool) {
	if !InRange(idx) || table[idx].mark == 0 {
		return 0, false
	}
	return table[idx].mark, true
}

// MarkName returns a human readable name for idx, or "" when out of range.
func MarkName(idx int) string {
	if !InRange(idx) {
		return ""
	}
	return table[idx].name
}

// Label is the glyph a selection surface shows for idx: the mark on a
// dotted circle, or the stroke glyph itself.
func Label(idx int) string {
	if !InRange(idx) {
		return ""
	}
	if idx == StrokeIndex {
		return strokeLower
	}
	return "\u25CC" + string(table[idx].mark)
}

// Compose returns the text for slice idx applied to key. The base
// character comes from tr under mods, except on the stroke slice where a
// key other than D is emitted unmodified. An empty result means nothing
// should be emitted.
func Compose(idx int, key keyboard.Key, mods keyboard.Modifiers, tr keyboard.Translator) string {
	if !InRange(idx) {
		return ""
	}
	if idx == StrokeIndex {
		if key == keyboard.KeyD {
			if mods.Has(keyboard.ModShift) {
				return strokeUpper
			}
			return strokeLower
		}
		// Any other key is emitted as its bare virtual-key character.
		return string(rune(key))
	}
	base := tr.Translate(key, mods)
	if base == "" {
		return ""
	}
	return base + string(table[idx].mark)
}
