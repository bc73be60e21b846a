// Package input implements the editable line buffer behind prompt modes.
package input

import "unicode"

// Buffer is an append-only-at-the-end line editor.
type Buffer struct {
	value []rune
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.value)
}

// Set replaces the buffer contents.
func (b *Buffer) Set(s string) {
	b.value = []rune(s)
}

// AppendRune appends one character.
func (b *Buffer) AppendRune(r rune) {
	b.value = append(b.value, r)
}

// Append appends a string.
func (b *Buffer) Append(s string) {
	b.value = append(b.value, []rune(s)...)
}

// RemoveLastCharacter drops the trailing character, if any.
func (b *Buffer) RemoveLastCharacter() {
	if len(b.value) > 0 {
		b.value = b.value[:len(b.value)-1]
	}
}

// RemoveLastWord drops trailing whitespace, then the trailing run of
// non-whitespace.
func (b *Buffer) RemoveLastWord() {
	i := len(b.value)
	for i > 0 && unicode.IsSpace(b.value[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.value[i-1]) {
		i--
	}
	b.value = b.value[:i]
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.value = nil
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.value)
}
