package mode

// Extend overlays other onto the receiver: map entries from other win key by
// key, category and catch-all actions are replaced only when other sets them.
func (kb KeyBindings) Extend(other KeyBindings) KeyBindings {
	out := kb
	if len(other.Remaps) > 0 {
		out.Remaps = make(map[Key]Key, len(kb.Remaps)+len(other.Remaps))
		for k, v := range kb.Remaps {
			out.Remaps[k] = v
		}
		for k, v := range other.Remaps {
			out.Remaps[k] = v
		}
	}
	if len(other.OnKey) > 0 {
		out.OnKey = make(map[Key]*Action, len(kb.OnKey)+len(other.OnKey))
		for k, v := range kb.OnKey {
			out.OnKey[k] = v
		}
		for k, v := range other.OnKey {
			out.OnKey[k] = v
		}
	}
	if other.OnAlphabet != nil {
		out.OnAlphabet = other.OnAlphabet
	}
	if other.OnNumber != nil {
		out.OnNumber = other.OnNumber
	}
	if other.OnSpecialCharacter != nil {
		out.OnSpecialCharacter = other.OnSpecialCharacter
	}
	if other.Default != nil {
		out.Default = other.Default
	}
	return out
}

// Extend overlays other onto the mode. Empty strings in other leave the
// receiver's text untouched.
func (m Mode) Extend(other Mode) Mode {
	out := m
	if other.Name != "" {
		out.Name = other.Name
	}
	if other.Help != "" {
		out.Help = other.Help
	}
	if other.ExtraHelp != "" {
		out.ExtraHelp = other.ExtraHelp
	}
	out.KeyBindings = m.KeyBindings.Extend(other.KeyBindings)
	return out
}
