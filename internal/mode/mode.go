// Package mode implements the declarative key-binding engine: named modes,
// their bindings with per-category fall-throughs, and the four-tier lookup.
package mode

import "xplr/internal/msg"

// Action binds a help label to the messages a key press emits.
type Action struct {
	Help     string        `yaml:"help,omitempty"`
	Messages []msg.Message `yaml:"messages"`
}

// sanitized keeps the action only when every one of its messages is
// read-only; an action carrying any other message disappears entirely.
func (a *Action) sanitized() *Action {
	if a == nil {
		return nil
	}
	for _, m := range a.Messages {
		if !m.IsReadOnly() {
			return nil
		}
	}
	return a
}

// KeyBindings is one mode's lookup table. Remaps alias keys to other keys
// (single level, no transitive resolution); on_key holds explicit bindings;
// the three category actions catch single characters by class; default is
// the catch-all.
type KeyBindings struct {
	Remaps             map[Key]Key     `yaml:"remaps,omitempty"`
	OnKey              map[Key]*Action `yaml:"on_key,omitempty"`
	OnAlphabet         *Action         `yaml:"on_alphabet,omitempty"`
	OnNumber           *Action         `yaml:"on_number,omitempty"`
	OnSpecialCharacter *Action         `yaml:"on_special_character,omitempty"`
	Default            *Action         `yaml:"default,omitempty"`
}

// Mode is a named set of key bindings active at a given time.
type Mode struct {
	Name        string      `yaml:"name"`
	Help        string      `yaml:"help,omitempty"`
	ExtraHelp   string      `yaml:"extra_help,omitempty"`
	KeyBindings KeyBindings `yaml:"key_bindings"`
}

// Lookup resolves a key through the four priority tiers: remap image, then
// explicit binding, then the first matching character class, then the
// catch-all. A nil result means the key is unbound.
func (m *Mode) Lookup(key Key) *Action {
	if image, ok := m.KeyBindings.Remaps[key]; ok {
		key = image
	}
	if action, ok := m.KeyBindings.OnKey[key]; ok {
		return action
	}
	switch {
	case key.IsAlphabet() && m.KeyBindings.OnAlphabet != nil:
		return m.KeyBindings.OnAlphabet
	case key.IsNumber() && m.KeyBindings.OnNumber != nil:
		return m.KeyBindings.OnNumber
	case key.IsSpecialCharacter() && m.KeyBindings.OnSpecialCharacter != nil:
		return m.KeyBindings.OnSpecialCharacter
	}
	return m.KeyBindings.Default
}

// Sanitized returns a copy stripped to read-only actions. Remaps pointing at
// bindings that vanished are dropped with them.
func (m Mode) Sanitized() Mode {
	out := m
	out.KeyBindings.OnKey = make(map[Key]*Action, len(m.KeyBindings.OnKey))
	for k, a := range m.KeyBindings.OnKey {
		if s := a.sanitized(); s != nil {
			out.KeyBindings.OnKey[k] = s
		}
	}
	out.KeyBindings.OnAlphabet = m.KeyBindings.OnAlphabet.sanitized()
	out.KeyBindings.OnNumber = m.KeyBindings.OnNumber.sanitized()
	out.KeyBindings.OnSpecialCharacter = m.KeyBindings.OnSpecialCharacter.sanitized()
	out.KeyBindings.Default = m.KeyBindings.Default.sanitized()

	out.KeyBindings.Remaps = make(map[Key]Key, len(m.KeyBindings.Remaps))
	for from, to := range m.KeyBindings.Remaps {
		if _, ok := out.KeyBindings.OnKey[to]; ok {
			out.KeyBindings.Remaps[from] = to
		}
	}
	return out
}

// HelpMenuLine is one row of the global help dump: either a key with its
// help label or a free paragraph.
type HelpMenuLine struct {
	Key       string
	Help      string
	Paragraph string
}

// HelpMenu flattens the mode's bindings into help lines. Remapped keys are
// excluded so aliases do not double up; category bindings render with a
// class placeholder.
func (m *Mode) HelpMenu() []HelpMenuLine {
	var lines []HelpMenuLine
	if m.ExtraHelp != "" {
		for _, l := range splitLines(m.ExtraHelp) {
			lines = append(lines, HelpMenuLine{Paragraph: l})
		}
	}
	for _, key := range sortedKeys(m.KeyBindings.OnKey) {
		if _, remapped := m.KeyBindings.Remaps[key]; remapped {
			continue
		}
		if help := m.KeyBindings.OnKey[key].Help; help != "" {
			lines = append(lines, HelpMenuLine{Key: string(key), Help: help})
		}
	}
	for _, category := range []struct {
		label  string
		action *Action
	}{
		{"[a-Z]", m.KeyBindings.OnAlphabet},
		{"[0-9]", m.KeyBindings.OnNumber},
		{"[spcl chars]", m.KeyBindings.OnSpecialCharacter},
		{"[default]", m.KeyBindings.Default},
	} {
		if category.action != nil && category.action.Help != "" {
			lines = append(lines, HelpMenuLine{Key: category.label, Help: category.action.Help})
		}
	}
	return lines
}
