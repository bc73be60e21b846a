package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xplr/internal/msg"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"a", "a"},
		{"A", "A"},
		{"7", "7"},
		{"/", "/"},
		{" ", "space"},
		{"enter", "enter"},
		{"Escape", "esc"},
		{"tab", "ctrl-i"},
		{"ctrl-i", "ctrl-i"},
		{"ctrl+c", "ctrl-c"},
		{"Ctrl-R", "ctrl-r"},
		{"up", "up"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseKey(tc.in))
		})
	}
}

func TestKeyClasses(t *testing.T) {
	assert.True(t, Key("x").IsAlphabet())
	assert.True(t, Key("5").IsNumber())
	assert.True(t, Key(".").IsSpecialCharacter())
	assert.False(t, Key("enter").IsAlphabet())
	assert.False(t, Key("x").IsNumber())

	r, ok := Key("space").TextRune()
	require.True(t, ok)
	assert.Equal(t, ' ', r)

	_, ok = Key("esc").TextRune()
	assert.False(t, ok)
}

func testMode() Mode {
	return Mode{
		Name: "test",
		KeyBindings: KeyBindings{
			Remaps: map[Key]Key{"j": "down"},
			OnKey: map[Key]*Action{
				"down": {Help: "down", Messages: []msg.Message{msg.FocusNext()}},
				"d":    {Help: "delete", Messages: []msg.Message{msg.SwitchMode("delete")}},
			},
			OnNumber: &Action{Help: "input", Messages: []msg.Message{msg.BufferInputFromKey()}},
			Default:  &Action{Messages: []msg.Message{msg.SwitchMode("default")}},
		},
	}
}

func TestLookupTiers(t *testing.T) {
	m := testMode()

	t.Run("remap resolves before explicit binding", func(t *testing.T) {
		action := m.Lookup("j")
		require.NotNil(t, action)
		assert.Equal(t, msg.KindFocusNext, action.Messages[0].Kind)
	})

	t.Run("explicit binding", func(t *testing.T) {
		action := m.Lookup("d")
		require.NotNil(t, action)
		assert.Equal(t, "delete", action.Help)
	})

	t.Run("character class", func(t *testing.T) {
		action := m.Lookup("4")
		require.NotNil(t, action)
		assert.Equal(t, msg.KindBufferInputFromKey, action.Messages[0].Kind)
	})

	t.Run("catch-all", func(t *testing.T) {
		action := m.Lookup("z")
		require.NotNil(t, action)
		assert.Equal(t, msg.KindSwitchMode, action.Messages[0].Kind)
	})

	t.Run("unbound when no default", func(t *testing.T) {
		bare := Mode{Name: "bare"}
		assert.Nil(t, bare.Lookup("x"))
	})
}

func TestRemapsAreSingleLevel(t *testing.T) {
	m := Mode{
		KeyBindings: KeyBindings{
			Remaps: map[Key]Key{"a": "b", "b": "c"},
			OnKey: map[Key]*Action{
				"b": {Messages: []msg.Message{msg.FocusFirst()}},
				"c": {Messages: []msg.Message{msg.FocusLast()}},
			},
		},
	}
	action := m.Lookup("a")
	require.NotNil(t, action)
	assert.Equal(t, msg.KindFocusFirst, action.Messages[0].Kind)
}

func TestSanitized(t *testing.T) {
	m := Mode{
		Name: "default",
		KeyBindings: KeyBindings{
			Remaps: map[Key]Key{"x": "d", "j": "down"},
			OnKey: map[Key]*Action{
				"down": {Messages: []msg.Message{msg.FocusNext()}},
				"d":    {Messages: []msg.Message{msg.BashExec("rm -f file")}},
				"m":    {Messages: []msg.Message{msg.FocusNext(), msg.Call("mv", "a", "b")}},
			},
			Default: &Action{Messages: []msg.Message{msg.BashExecSilently("touch x")}},
		},
	}

	s := m.Sanitized()
	assert.Contains(t, s.KeyBindings.OnKey, Key("down"))
	assert.NotContains(t, s.KeyBindings.OnKey, Key("d"))
	assert.NotContains(t, s.KeyBindings.OnKey, Key("m"))
	assert.Nil(t, s.KeyBindings.Default)

	assert.Equal(t, Key("down"), s.KeyBindings.Remaps["j"])
	assert.NotContains(t, s.KeyBindings.Remaps, Key("x"))

	// the original is untouched
	assert.Contains(t, m.KeyBindings.OnKey, Key("d"))
}

func TestHelpMenuSkipsRemappedKeys(t *testing.T) {
	m := Mode{
		Name:      "test",
		ExtraHelp: "line one\nline two",
		KeyBindings: KeyBindings{
			Remaps: map[Key]Key{"down": "j"},
			OnKey: map[Key]*Action{
				"j":    {Help: "down", Messages: []msg.Message{msg.FocusNext()}},
				"down": {Help: "down too", Messages: []msg.Message{msg.FocusNext()}},
				"q":    {Messages: []msg.Message{msg.Quit()}},
			},
			OnNumber: &Action{Help: "jump", Messages: []msg.Message{msg.BufferInputFromKey()}},
		},
	}

	lines := m.HelpMenu()
	require.Len(t, lines, 4)
	assert.Equal(t, "line one", lines[0].Paragraph)
	assert.Equal(t, "line two", lines[1].Paragraph)
	assert.Equal(t, "j", lines[2].Key)
	assert.Equal(t, "[0-9]", lines[3].Key)
}

func TestExtend(t *testing.T) {
	base := testMode()
	override := Mode{
		Help: "customized",
		KeyBindings: KeyBindings{
			Remaps: map[Key]Key{"k": "up"},
			OnKey: map[Key]*Action{
				"d":  {Help: "trash", Messages: []msg.Message{msg.SwitchMode("trash")}},
				"up": {Help: "up", Messages: []msg.Message{msg.FocusPrevious()}},
			},
		},
	}

	merged := base.Extend(override)
	assert.Equal(t, "test", merged.Name)
	assert.Equal(t, "customized", merged.Help)

	assert.Equal(t, Key("down"), merged.KeyBindings.Remaps["j"])
	assert.Equal(t, Key("up"), merged.KeyBindings.Remaps["k"])

	assert.Equal(t, "trash", merged.KeyBindings.OnKey["d"].Help)
	assert.Contains(t, merged.KeyBindings.OnKey, Key("down"))
	require.NotNil(t, merged.KeyBindings.OnNumber)
	require.NotNil(t, merged.KeyBindings.Default)
}
