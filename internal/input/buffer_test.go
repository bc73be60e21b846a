package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferEditing(t *testing.T) {
	b := New()
	b.Append("hel")
	b.AppendRune('l')
	b.AppendRune('o')
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, b.Len())

	b.RemoveLastCharacter()
	assert.Equal(t, "hell", b.String())

	b.Set("reset")
	assert.Equal(t, "reset", b.String())

	b.Clear()
	assert.Zero(t, b.Len())
	b.RemoveLastCharacter()
	assert.Equal(t, "", b.String())
}

func TestRemoveLastWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  foo  bar  ", "  foo  "},
		{"foo bar", "foo "},
		{"foo", ""},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run("input "+tc.in, func(t *testing.T) {
			b := New()
			b.Set(tc.in)
			b.RemoveLastWord()
			assert.Equal(t, tc.want, b.String())
		})
	}
}

func TestUnicodeRunes(t *testing.T) {
	b := New()
	b.Set("héllo")
	b.RemoveLastCharacter()
	assert.Equal(t, "héll", b.String())
	assert.Equal(t, 4, b.Len())
}
