package config

import (
	"xplr/internal/mode"
	"xplr/internal/msg"
	"xplr/internal/node"
)

// Default builds the compiled-in configuration for the given application
// version.
func Default(appVersion string) Config {
	showHidden := false
	readOnly := false
	prompt := "> "
	initialMode := "default"
	initialSorting := []node.SorterApplicable{
		{Sorter: node.ByCanonicalIsDir, Reverse: true},
		{Sorter: node.ByIRelativePath},
	}

	return Config{
		Version: appVersion,
		General: GeneralConfig{
			ShowHidden:     &showHidden,
			ReadOnly:       &readOnly,
			Prompt:         &prompt,
			InitialMode:    &initialMode,
			InitialSorting: &initialSorting,
		},
		NodeTypes: defaultNodeTypes(),
		Modes: ModesConfig{
			Builtin: builtinModes(),
			Custom:  map[string]mode.Mode{},
		},
	}
}

func defaultNodeTypes() NodeTypesConfig {
	return NodeTypesConfig{
		Directory: NodeTypeConfig{
			Style: Style{Fg: "blue", AddModifiers: []string{"bold"}},
			Meta:  map[string]string{"icon": "d"},
		},
		File: NodeTypeConfig{
			Meta: map[string]string{"icon": "f"},
		},
		Symlink: NodeTypeConfig{
			Style: Style{Fg: "cyan", AddModifiers: []string{"italic"}},
			Meta:  map[string]string{"icon": "s"},
		},
		MimeEssence: map[string]NodeTypeConfig{},
		Extension:   map[string]NodeTypeConfig{},
		Special:     map[string]NodeTypeConfig{},
	}
}

func act(help string, messages ...msg.Message) *mode.Action {
	return &mode.Action{Help: help, Messages: messages}
}

func builtinModes() map[string]mode.Mode {
	return map[string]mode.Mode{
		"default":                        defaultMode(),
		"number":                         numberMode(),
		"go_to":                          goToMode(),
		"search":                         searchMode(),
		"selection_ops":                  selectionOpsMode(),
		"action":                         actionMode(),
		"create":                         createMode(),
		"create_file":                    createFileMode(),
		"create_directory":               createDirectoryMode(),
		"rename":                         renameMode(),
		"delete":                         deleteMode(),
		"sort":                           sortMode(),
		"filter":                         filterMode(),
		"relative_path_does_contain":     relativePathDoesContainMode(),
		"relative_path_does_not_contain": relativePathDoesNotContainMode(),
	}
}

func defaultMode() mode.Mode {
	return mode.Mode{
		Name: "default",
		KeyBindings: mode.KeyBindings{
			Remaps: map[mode.Key]mode.Key{
				"j": "down",
				"k": "up",
				"h": "left",
				"l": "right",
				"/": "ctrl-f",
				"v": "space",
				"V": "ctrl-a",
			},
			OnKey: map[mode.Key]*mode.Action{
				"up":    act("up", msg.FocusPrevious()),
				"down":  act("down", msg.FocusNext()),
				"right": act("enter", msg.Enter()),
				"left":  act("back", msg.Back()),
				"G":     act("go to bottom", msg.FocusLast()),
				"g":     act("go to", msg.SwitchMode("go_to")),
				"ctrl-f": act("search",
					msg.ResetInputBuffer(),
					msg.AddNodeFilterFromInput(node.IRelativePathDoesContain),
					msg.SwitchMode("search"),
					msg.Explore(),
				),
				"s": act("sort", msg.SwitchMode("sort")),
				"f": act("filter", msg.SwitchMode("filter")),
				"n": act("create", msg.SwitchMode("create")),
				"r": act("rename",
					msg.SwitchMode("rename"),
					msg.BashExecSilently(
						`printf 'SetInputBuffer: %s\n' "$(basename -- "${XPLR_FOCUS_PATH:?}")" >> "${XPLR_PIPE_MSG_IN:?}"`,
					),
				),
				"d":     act("delete", msg.SwitchMode("delete")),
				":":     act("action", msg.SwitchMode("action")),
				"space": act("toggle selection", msg.ToggleSelection(), msg.FocusNext()),
				"ctrl-a": act("toggle select all",
					msg.ToggleSelectAll(),
				),
				"u": act("clear selection", msg.ClearSelection()),
				".": act("show hidden",
					msg.ToggleNodeFilter(HiddenFilter()),
					msg.Explore(),
				),
				"~":      act("go home", msg.ChangeDirectory("~")),
				"ctrl-o": act("last visited path", msg.LastVisitedPath()),
				"ctrl-i": act("next visited path", msg.NextVisitedPath()),
				"ctrl-r": act("refresh screen", msg.ClearScreen(), msg.Explore()),
				"?": act("global help menu",
					msg.BashExec(
						`cat -- "${XPLR_PIPE_GLOBAL_HELP_MENU_OUT:?}" | "${PAGER:-less}"`,
					),
				),
				"enter":  act("quit with result", msg.PrintResultAndQuit()),
				"q":      act("quit", msg.Quit()),
				"ctrl-c": act("terminate", msg.Terminate()),
			},
			OnNumber: act("input number",
				msg.ResetInputBuffer(),
				msg.BufferInputFromKey(),
				msg.SwitchMode("number"),
			),
		},
	}
}

func numberMode() mode.Mode {
	toDefault := []msg.Message{msg.ResetInputBuffer(), msg.SwitchMode("default")}
	return mode.Mode{
		Name: "number",
		KeyBindings: mode.KeyBindings{
			Remaps: map[mode.Key]mode.Key{
				"j": "down",
				"k": "up",
			},
			OnKey: map[mode.Key]*mode.Action{
				"enter": act("to index",
					append([]msg.Message{msg.FocusByIndexFromInput()}, toDefault...)...,
				),
				"down": act("to down",
					append([]msg.Message{msg.FocusNextByRelativeIndexFromInput()}, toDefault...)...,
				),
				"up": act("to up",
					append([]msg.Message{msg.FocusPreviousByRelativeIndexFromInput()}, toDefault...)...,
				),
				"backspace": act("remove last character", msg.RemoveInputBufferLastCharacter()),
				"ctrl-u":    act("remove line", msg.SetInputBuffer("")),
				"esc":       act("cancel", toDefault...),
			},
			OnNumber: act("input", msg.BufferInputFromKey()),
			Default:  act("", toDefault...),
		},
	}
}

func goToMode() mode.Mode {
	return mode.Mode{
		Name: "go to",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"g": act("top", msg.FocusFirst(), msg.SwitchMode("default")),
				"f": act("follow symlink", msg.FollowSymlink(), msg.SwitchMode("default")),
				"h": act("home", msg.ChangeDirectory("~"), msg.SwitchMode("default")),
				"/": act("root", msg.ChangeDirectory("/"), msg.SwitchMode("default")),
				"x": act("open in gui",
					msg.BashExecSilently(
						`xdg-open "${XPLR_FOCUS_PATH:?}" >/dev/null 2>&1 &`,
					),
					msg.SwitchMode("default"),
				),
				"esc": act("cancel", msg.SwitchMode("default")),
			},
			Default: act("", msg.SwitchMode("default")),
		},
	}
}

func searchMode() mode.Mode {
	accept := []msg.Message{
		msg.RemoveLastNodeFilter(),
		msg.ResetInputBuffer(),
		msg.SwitchMode("default"),
		msg.Explore(),
	}
	return mode.Mode{
		Name: "search",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"up":   act("focus previous", msg.FocusPrevious()),
				"down": act("focus next", msg.FocusNext()),
				"backspace": act("remove last character",
					msg.RemoveInputBufferLastCharacter(),
					msg.RemoveLastNodeFilter(),
					msg.AddNodeFilterFromInput(node.IRelativePathDoesContain),
					msg.Explore(),
				),
				"ctrl-w": act("remove last word",
					msg.RemoveInputBufferLastWord(),
					msg.RemoveLastNodeFilter(),
					msg.AddNodeFilterFromInput(node.IRelativePathDoesContain),
					msg.Explore(),
				),
				"enter": act("focus", accept...),
				"esc":   act("cancel", accept...),
			},
			Default: act("input",
				msg.BufferInputFromKey(),
				msg.RemoveLastNodeFilter(),
				msg.AddNodeFilterFromInput(node.IRelativePathDoesContain),
				msg.Explore(),
			),
		},
	}
}

func selectionOpsMode() mode.Mode {
	return mode.Mode{
		Name: "selection ops",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"c": act("copy here",
					msg.BashExec(`(while IFS= read -r line; do
  if cp -vr -- "$line" ./; then
    printf 'LogSuccess: %s copied here\n' "$line" >> "${XPLR_PIPE_MSG_IN:?}"
  else
    printf 'LogError: failed to copy %s here\n' "$line" >> "${XPLR_PIPE_MSG_IN:?}"
  fi
done < "${XPLR_PIPE_SELECTION_OUT:?}")
printf 'ClearSelection\nExplore\n' >> "${XPLR_PIPE_MSG_IN:?}"
read -p '[press enter to continue]'`),
					msg.SwitchMode("default"),
				),
				"m": act("move here",
					msg.BashExec(`(while IFS= read -r line; do
  if mv -v -- "$line" ./; then
    printf 'LogSuccess: %s moved here\n' "$line" >> "${XPLR_PIPE_MSG_IN:?}"
  else
    printf 'LogError: failed to move %s here\n' "$line" >> "${XPLR_PIPE_MSG_IN:?}"
  fi
done < "${XPLR_PIPE_SELECTION_OUT:?}")
printf 'ClearSelection\nExplore\n' >> "${XPLR_PIPE_MSG_IN:?}"
read -p '[press enter to continue]'`),
					msg.SwitchMode("default"),
				),
				"x":   act("clear selection", msg.ClearSelection(), msg.SwitchMode("default")),
				"esc": act("cancel", msg.SwitchMode("default")),
			},
			Default: act("", msg.SwitchMode("default")),
		},
	}
}

func actionMode() mode.Mode {
	return mode.Mode{
		Name: "action to",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"!": act("shell",
					msg.Call("bash", "-i"),
					msg.Explore(),
					msg.SwitchMode("default"),
				),
				"e": act("open in editor",
					msg.BashExec(`"${EDITOR:-vi}" -- "${XPLR_FOCUS_PATH:?}"`),
					msg.SwitchMode("default"),
				),
				"l": act("logs",
					msg.BashExec(`cat -- "${XPLR_PIPE_LOGS_OUT:?}" | "${PAGER:-less}"`),
					msg.SwitchMode("default"),
				),
				"s":   act("selection operations", msg.SwitchMode("selection_ops")),
				"p":   act("print app state and quit", msg.PrintAppStateAndQuit()),
				"esc": act("cancel", msg.SwitchMode("default")),
			},
			OnNumber: act("go to index",
				msg.ResetInputBuffer(),
				msg.BufferInputFromKey(),
				msg.SwitchMode("number"),
			),
			Default: act("", msg.SwitchMode("default")),
		},
	}
}

func createMode() mode.Mode {
	return mode.Mode{
		Name: "create",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"f": act("create file",
					msg.SetInputBuffer(""),
					msg.SwitchMode("create_file"),
				),
				"d": act("create directory",
					msg.SetInputBuffer(""),
					msg.SwitchMode("create_directory"),
				),
				"esc": act("cancel", msg.SwitchMode("default")),
			},
			Default: act("", msg.SwitchMode("default")),
		},
	}
}

func createFileMode() mode.Mode {
	return mode.Mode{
		Name: "create file",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"enter": act("create file",
					msg.BashExecSilently(`f="${XPLR_INPUT_BUFFER}"
if [ -n "$f" ] && touch -- "$f"; then
  printf 'Explore\nLogSuccess: %s created\nFocusByFileName: %s\n' "$f" "$f" >> "${XPLR_PIPE_MSG_IN:?}"
else
  printf 'LogError: failed to create %s\n' "$f" >> "${XPLR_PIPE_MSG_IN:?}"
fi`),
					msg.ResetInputBuffer(),
					msg.SwitchMode("default"),
				),
				"backspace": act("remove last character", msg.RemoveInputBufferLastCharacter()),
				"ctrl-w":    act("remove last word", msg.RemoveInputBufferLastWord()),
				"ctrl-u":    act("remove line", msg.SetInputBuffer("")),
				"esc":       act("cancel", msg.ResetInputBuffer(), msg.SwitchMode("default")),
			},
			Default: act("input", msg.BufferInputFromKey()),
		},
	}
}

func createDirectoryMode() mode.Mode {
	return mode.Mode{
		Name: "create directory",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"enter": act("create directory",
					msg.BashExecSilently(`d="${XPLR_INPUT_BUFFER}"
if [ -n "$d" ] && mkdir -p -- "$d"; then
  printf 'Explore\nLogSuccess: %s created\nFocusByFileName: %s\n' "$d" "$d" >> "${XPLR_PIPE_MSG_IN:?}"
else
  printf 'LogError: failed to create %s\n' "$d" >> "${XPLR_PIPE_MSG_IN:?}"
fi`),
					msg.ResetInputBuffer(),
					msg.SwitchMode("default"),
				),
				"backspace": act("remove last character", msg.RemoveInputBufferLastCharacter()),
				"ctrl-w":    act("remove last word", msg.RemoveInputBufferLastWord()),
				"ctrl-u":    act("remove line", msg.SetInputBuffer("")),
				"esc":       act("cancel", msg.ResetInputBuffer(), msg.SwitchMode("default")),
			},
			Default: act("input", msg.BufferInputFromKey()),
		},
	}
}

func renameMode() mode.Mode {
	return mode.Mode{
		Name: "rename",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"enter": act("rename",
					msg.BashExecSilently(`src="${XPLR_FOCUS_PATH:?}"
dst="${XPLR_INPUT_BUFFER}"
if [ -n "$dst" ] && mv -- "$src" "$dst"; then
  printf 'Explore\nLogSuccess: %s renamed to %s\nFocusByFileName: %s\n' "$src" "$dst" "$dst" >> "${XPLR_PIPE_MSG_IN:?}"
else
  printf 'LogError: failed to rename %s\n' "$src" >> "${XPLR_PIPE_MSG_IN:?}"
fi`),
					msg.ResetInputBuffer(),
					msg.SwitchMode("default"),
				),
				"backspace": act("remove last character", msg.RemoveInputBufferLastCharacter()),
				"ctrl-w":    act("remove last word", msg.RemoveInputBufferLastWord()),
				"ctrl-u":    act("remove line", msg.SetInputBuffer("")),
				"esc":       act("cancel", msg.ResetInputBuffer(), msg.SwitchMode("default")),
			},
			Default: act("input", msg.BufferInputFromKey()),
		},
	}
}

func deleteMode() mode.Mode {
	return mode.Mode{
		Name: "delete",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"d": act("delete focused",
					msg.BashExec(`p="${XPLR_FOCUS_PATH:?}"
printf 'delete %s? [y/N] ' "$p"
read -r answer
if [ "$answer" = y ] && rm -r -- "$p"; then
  printf 'Explore\nLogSuccess: %s deleted\n' "$p" >> "${XPLR_PIPE_MSG_IN:?}"
else
  printf 'LogInfo: delete cancelled\n' >> "${XPLR_PIPE_MSG_IN:?}"
fi`),
					msg.SwitchMode("default"),
				),
				"s": act("delete selection",
					msg.BashExec(`printf 'delete selection? [y/N] '
read -r answer
if [ "$answer" = y ]; then
  (while IFS= read -r line; do
    if rm -r -- "$line"; then
      printf 'LogSuccess: %s deleted\n' "$line" >> "${XPLR_PIPE_MSG_IN:?}"
    else
      printf 'LogError: failed to delete %s\n' "$line" >> "${XPLR_PIPE_MSG_IN:?}"
    fi
  done < "${XPLR_PIPE_SELECTION_OUT:?}")
  printf 'ClearSelection\nExplore\n' >> "${XPLR_PIPE_MSG_IN:?}"
fi`),
					msg.SwitchMode("default"),
				),
				"esc": act("cancel", msg.SwitchMode("default")),
			},
			Default: act("", msg.SwitchMode("default")),
		},
	}
}

func sortMode() mode.Mode {
	addSorter := func(help string, kind node.SorterKind, reverse bool) *mode.Action {
		return act(help,
			msg.AddNodeSorter(node.SorterApplicable{Sorter: kind, Reverse: reverse}),
			msg.Explore(),
		)
	}
	return mode.Mode{
		Name:      "sort",
		ExtraHelp: "(lowercase forward, uppercase reverse)",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"r": addSorter("by relative path", node.ByIRelativePath, false),
				"R": addSorter("by relative path reverse", node.ByIRelativePath, true),
				"e": addSorter("by extension", node.ByExtension, false),
				"E": addSorter("by extension reverse", node.ByExtension, true),
				"s": addSorter("by size", node.BySize, false),
				"S": addSorter("by size reverse", node.BySize, true),
				"m": addSorter("by mime essence", node.ByMimeEssence, false),
				"M": addSorter("by mime essence reverse", node.ByMimeEssence, true),
				"d": addSorter("by directory", node.ByCanonicalIsDir, false),
				"D": addSorter("by directory reverse", node.ByCanonicalIsDir, true),
				"!": act("reverse sorters", msg.ReverseNodeSorters(), msg.Explore()),
				"backspace": act("remove last sorter",
					msg.RemoveLastNodeSorter(), msg.Explore()),
				"ctrl-r": act("reset sorters", msg.ResetNodeSorters(), msg.Explore()),
				"ctrl-u": act("clear sorters", msg.ClearNodeSorters(), msg.Explore()),
				"enter":  act("done", msg.SwitchMode("default")),
				"esc":    act("cancel", msg.SwitchMode("default")),
			},
		},
	}
}

func filterMode() mode.Mode {
	return mode.Mode{
		Name: "filter",
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"r": act("relative path does contain",
					msg.ResetInputBuffer(),
					msg.AddNodeFilterFromInput(node.IRelativePathDoesContain),
					msg.SwitchMode("relative_path_does_contain"),
					msg.Explore(),
				),
				"R": act("relative path does not contain",
					msg.ResetInputBuffer(),
					msg.AddNodeFilterFromInput(node.IRelativePathDoesNotContain),
					msg.SwitchMode("relative_path_does_not_contain"),
					msg.Explore(),
				),
				".": act("toggle hidden",
					msg.ToggleNodeFilter(HiddenFilter()),
					msg.Explore(),
				),
				"backspace": act("remove last filter",
					msg.RemoveLastNodeFilter(), msg.Explore()),
				"ctrl-r": act("reset filters", msg.ResetNodeFilters(), msg.Explore()),
				"ctrl-u": act("clear filters", msg.ClearNodeFilters(), msg.Explore()),
				"enter":  act("done", msg.SwitchMode("default")),
				"esc":    act("cancel", msg.SwitchMode("default")),
			},
		},
	}
}

func filterInputMode(name string, kind node.FilterKind) mode.Mode {
	retype := func(first msg.Message) *mode.Action {
		return act("input",
			first,
			msg.RemoveLastNodeFilter(),
			msg.AddNodeFilterFromInput(kind),
			msg.Explore(),
		)
	}
	return mode.Mode{
		Name: name,
		KeyBindings: mode.KeyBindings{
			OnKey: map[mode.Key]*mode.Action{
				"backspace": retype(msg.RemoveInputBufferLastCharacter()),
				"ctrl-w":    retype(msg.RemoveInputBufferLastWord()),
				"enter": act("apply filter",
					msg.ResetInputBuffer(),
					msg.SwitchMode("default"),
				),
				"esc": act("cancel",
					msg.RemoveLastNodeFilter(),
					msg.ResetInputBuffer(),
					msg.SwitchMode("default"),
					msg.Explore(),
				),
			},
			Default: retype(msg.BufferInputFromKey()),
		},
	}
}

func relativePathDoesContainMode() mode.Mode {
	return filterInputMode("relative path does contain", node.IRelativePathDoesContain)
}

func relativePathDoesNotContainMode() mode.Mode {
	return filterInputMode("relative path does not contain", node.IRelativePathDoesNotContain)
}
