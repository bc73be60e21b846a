package mode

import (
	"strings"
	"unicode"
)

// Key is the normalized textual form of a key event: a single character
// (`a`, `A`, `7`, `/`), a named key (`enter`, `esc`, `tab`, `space`,
// `backspace`, `left`, `right`, `up`, `down`) or a control chord (`ctrl-x`).
// `tab` normalizes to `ctrl-i`.
type Key string

var namedKeys = map[string]struct{}{
	"enter":     {},
	"esc":       {},
	"space":     {},
	"backspace": {},
	"left":      {},
	"right":     {},
	"up":        {},
	"down":      {},
}

// ParseKey normalizes a key spelling from the config file or the terminal
// event source. Unrecognized spellings come back as-is so they can still be
// bound explicitly, matching by identity.
func ParseKey(s string) Key {
	if s == " " {
		return Key("space")
	}

	// Single printable characters keep their case.
	if runes := []rune(s); len(runes) == 1 {
		return Key(s)
	}

	lower := strings.ToLower(s)
	// The terminal event source spells chords with '+'.
	lower = strings.ReplaceAll(lower, "+", "-")

	if lower == "tab" || lower == "ctrl-i" {
		return Key("ctrl-i")
	}
	if lower == "escape" {
		return Key("esc")
	}
	if _, ok := namedKeys[lower]; ok {
		return Key(lower)
	}
	if rest, ok := strings.CutPrefix(lower, "ctrl-"); ok && len([]rune(rest)) == 1 {
		return Key(lower)
	}
	return Key(lower)
}

func (k Key) rune() (rune, bool) {
	runes := []rune(string(k))
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// IsAlphabet reports whether the key is a single letter.
func (k Key) IsAlphabet() bool {
	r, ok := k.rune()
	return ok && unicode.IsLetter(r)
}

// IsNumber reports whether the key is a single digit.
func (k Key) IsNumber() bool {
	r, ok := k.rune()
	return ok && unicode.IsDigit(r)
}

// IsSpecialCharacter reports whether the key is a single printable character
// that is neither a letter nor a digit.
func (k Key) IsSpecialCharacter() bool {
	r, ok := k.rune()
	return ok && !unicode.IsLetter(r) && !unicode.IsDigit(r) && unicode.IsPrint(r)
}

// TextRune returns the character this key types, if it types one. Letters,
// digits and punctuation map to themselves, space to ' '; everything else is
// non-textual.
func (k Key) TextRune() (rune, bool) {
	if k == "space" {
		return ' ', true
	}
	r, ok := k.rune()
	if !ok || !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}
