package keyboard

// USLayout translates letters and digits as a US layout would. It is the
// fallback when the OS layout cannot produce text for a key.
type USLayout struct{}

func (USLayout) Translate(key Key, mods Modifiers) string {
	switch {
	case key.IsLetter():
		upper := mods.Has(ModShift) != mods.Has(ModCapsLock)
		if upper {
			return string(rune(key))
		}
		return string(rune(key) + ('a' - 'A'))
	case key.IsDigit():
		if mods.Has(ModShift) {
			return string(shiftedDigits[key-Key0])
		}
		return string(rune(key))
	case key == KeySpace:
		return " "
	}
	return ""
}

var shiftedDigits = [10]byte{')', '!', '@', '#', '$', '%', '^', '&', '*', '('}
