package app

import (
	"os"
	"path/filepath"
	"strconv"

	"xplr/internal/errs"
	"xplr/internal/mode"
	"xplr/internal/msg"
	"xplr/internal/node"
)

// checkDirectory verifies path is an accessible directory.
func checkDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errs.WithPath(errs.Scan, err, "cannot access", path)
	}
	if !info.IsDir() {
		return errs.New(errs.Scan, "not a directory: "+path)
	}
	return nil
}

// maxBatchMessages bounds how many messages one tick may process. Messages
// enqueued beyond the cap stay pending for the next tick.
const maxBatchMessages = 1024

// EffectKind names a side effect the interpreter cannot perform itself.
type EffectKind int

const (
	// EffectExplore asks for a rescan of the current pwd.
	EffectExplore EffectKind = iota
	// EffectRefresh asks for a render pulse.
	EffectRefresh
	// EffectClearScreen asks for a full repaint.
	EffectClearScreen
	// EffectQuit exits successfully, printing the focused path.
	EffectQuit
	// EffectPrintResultAndQuit exits successfully, printing the result.
	EffectPrintResultAndQuit
	// EffectPrintAppStateAndQuit exits successfully, printing the state dump.
	EffectPrintAppStateAndQuit
	// EffectTerminate exits with a failure code.
	EffectTerminate
	// EffectRunForeground hands the terminal to a child process and waits.
	EffectRunForeground
	// EffectRunSilent spawns a detached child with discarded stdio.
	EffectRunSilent
)

// Effect is one side-effect request. Call is set for the Run kinds.
type Effect struct {
	Kind EffectKind
	Call msg.CallArg
}

// HandleKey resolves a key through the current mode and runs the bound
// messages. Unbound keys do nothing.
func (a *App) HandleKey(key mode.Key) []Effect {
	a.lastKey = key
	action := a.mode.Lookup(key)
	if action == nil {
		return nil
	}
	return a.HandleBatch(action.Messages)
}

// HandleBatch enqueues messages and drains the queue in FIFO order. A
// handled message may enqueue more; those run before the next external
// input. The drain is capped per call.
func (a *App) HandleBatch(messages []msg.Message) []Effect {
	a.pending = append(a.pending, messages...)

	var effects []Effect
	for processed := 0; len(a.pending) > 0 && processed < maxBatchMessages; processed++ {
		m := a.pending[0]
		a.pending = a.pending[1:]
		effects = append(effects, a.handle(m)...)
	}
	return effects
}

// Handle runs a single message. Equivalent to HandleBatch with one element.
func (a *App) Handle(m msg.Message) []Effect {
	return a.HandleBatch([]msg.Message{m})
}

func (a *App) enqueue(m msg.Message) {
	a.pending = append(a.pending, m)
}

func (a *App) handle(m msg.Message) []Effect {
	switch m.Kind {
	case msg.KindFocusFirst:
		a.focusTo(0)
	case msg.KindFocusLast:
		if buf := a.directoryBuffer; buf != nil {
			a.focusTo(len(buf.Nodes) - 1)
		}
	case msg.KindFocusNext:
		a.focusWrap(1)
	case msg.KindFocusPrevious:
		a.focusWrap(-1)
	case msg.KindFocusNextByRelativeIndexFromInput:
		if n, ok := a.inputIndex(); ok {
			a.focusRelative(n)
		}
	case msg.KindFocusPreviousByRelativeIndexFromInput:
		if n, ok := a.inputIndex(); ok {
			a.focusRelative(-n)
		}
	case msg.KindFocusPath:
		a.focusPath(m.Str)
	case msg.KindFocusByIndex:
		a.focusTo(m.Index)
	case msg.KindFocusByIndexFromInput:
		if n, ok := a.inputIndex(); ok {
			a.focusTo(n)
		}
	case msg.KindFocusByFileName:
		a.focusByFileName(m.Str)

	case msg.KindChangeDirectory:
		return a.changeDirectory(m.Str)
	case msg.KindEnter:
		return a.enter()
	case msg.KindBack:
		return a.back()
	case msg.KindLastVisitedPath:
		return a.visitHistory(a.history.VisitLast)
	case msg.KindNextVisitedPath:
		return a.visitHistory(a.history.VisitNext)
	case msg.KindFollowSymlink:
		return a.followSymlink()

	case msg.KindSetInputBuffer:
		a.inputBuffer.Set(m.Str)
	case msg.KindResetInputBuffer:
		a.inputBuffer.Clear()
	case msg.KindBufferInput:
		a.inputBuffer.Append(m.Str)
	case msg.KindBufferInputFromKey:
		if r, ok := a.lastKey.TextRune(); ok {
			a.inputBuffer.AppendRune(r)
		}
	case msg.KindRemoveInputBufferLastCharacter:
		a.inputBuffer.RemoveLastCharacter()
	case msg.KindRemoveInputBufferLastWord:
		a.inputBuffer.RemoveLastWord()

	case msg.KindToggleSelection:
		if n := a.FocusedNode(); n != nil {
			a.selection.Toggle(n.AbsolutePath)
		}
	case msg.KindToggleSelectAll:
		a.toggleSelectAll()
	case msg.KindClearSelection:
		a.selection.Clear()

	case msg.KindAddNodeFilter:
		a.explorerConfig.AddFilter(m.Filter)
		return a.explore()
	case msg.KindAddNodeFilterFromInput:
		a.explorerConfig.AddFilter(node.FilterApplicable{Kind: m.FilterKind, Input: a.inputBuffer.String()})
		return a.explore()
	case msg.KindRemoveNodeFilter:
		a.explorerConfig.RemoveFilter(m.Filter)
		return a.explore()
	case msg.KindRemoveNodeFilterFromInput:
		a.explorerConfig.RemoveFilter(node.FilterApplicable{Kind: m.FilterKind, Input: a.inputBuffer.String()})
		return a.explore()
	case msg.KindRemoveLastNodeFilter:
		a.explorerConfig.RemoveLastFilter()
		return a.explore()
	case msg.KindToggleNodeFilter:
		a.explorerConfig.ToggleFilter(m.Filter)
		return a.explore()
	case msg.KindResetNodeFilters:
		a.explorerConfig.Filters = a.initialConfig.Clone().Filters
		return a.explore()
	case msg.KindClearNodeFilters:
		a.explorerConfig.ClearFilters()
		return a.explore()

	case msg.KindAddNodeSorter:
		a.explorerConfig.AddSorter(m.Sorter)
		return a.explore()
	case msg.KindRemoveNodeSorter:
		a.explorerConfig.RemoveSorter(m.SorterKind)
		return a.explore()
	case msg.KindReverseNodeSorters:
		a.explorerConfig.ReverseSorters()
		return a.explore()
	case msg.KindResetNodeSorters:
		a.explorerConfig.Sorters = a.initialConfig.Clone().Sorters
		return a.explore()
	case msg.KindClearNodeSorters:
		a.explorerConfig.ClearSorters()
		return a.explore()
	case msg.KindRemoveLastNodeSorter:
		a.explorerConfig.RemoveLastSorter()
		return a.explore()

	case msg.KindSwitchMode:
		a.switchMode(m.Str)

	case msg.KindExplore:
		return a.explore()
	case msg.KindRefresh:
		return []Effect{{Kind: EffectRefresh}}
	case msg.KindClearScreen:
		return []Effect{{Kind: EffectClearScreen}}
	case msg.KindQuit:
		return []Effect{{Kind: EffectQuit}}
	case msg.KindTerminate:
		return []Effect{{Kind: EffectTerminate}}
	case msg.KindPrintResultAndQuit:
		return []Effect{{Kind: EffectPrintResultAndQuit}}
	case msg.KindPrintAppStateAndQuit:
		return []Effect{{Kind: EffectPrintAppStateAndQuit}}

	case msg.KindLogInfo:
		a.log(LogInfo, m.Str)
	case msg.KindLogSuccess:
		a.log(LogSuccess, m.Str)
	case msg.KindLogError:
		a.log(LogError, m.Str)

	case msg.KindCall:
		return []Effect{{Kind: EffectRunForeground, Call: m.Call}}
	case msg.KindBashExec:
		return []Effect{{
			Kind: EffectRunForeground,
			Call: msg.CallArg{Command: "bash", Args: []string{"-c", m.Str}},
		}}
	case msg.KindBashExecSilently:
		return []Effect{{
			Kind: EffectRunSilent,
			Call: msg.CallArg{Command: "bash", Args: []string{"-c", m.Str}},
		}}
	}
	return nil
}

func (a *App) log(level LogLevel, message string) {
	a.logs = append(a.logs, NewLog(level, message))
}

func (a *App) explore() []Effect {
	return []Effect{{Kind: EffectExplore}}
}

// recordFocus remembers the focused entry for the current directory so it
// can be restored on re-entry.
func (a *App) recordFocus() {
	if n := a.FocusedNode(); n != nil {
		a.lastFocus[a.pwd] = n.RelativePath
	}
}

func (a *App) focusTo(index int) {
	if a.directoryBuffer == nil || len(a.directoryBuffer.Nodes) == 0 {
		return
	}
	a.directoryBuffer.SetFocus(index)
	a.recordFocus()
}

// focusWrap moves focus by delta, wrapping at both ends.
func (a *App) focusWrap(delta int) {
	buf := a.directoryBuffer
	if buf == nil || len(buf.Nodes) == 0 {
		return
	}
	n := len(buf.Nodes)
	buf.Focus = ((buf.Focus+delta)%n + n) % n
	a.recordFocus()
}

// focusRelative moves focus by delta, saturating at both ends.
func (a *App) focusRelative(delta int) {
	buf := a.directoryBuffer
	if buf == nil || len(buf.Nodes) == 0 {
		return
	}
	a.focusTo(buf.Focus + delta)
}

func (a *App) inputIndex() (int, bool) {
	value := a.inputBuffer.String()
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		a.log(LogError, "invalid index: "+value)
		return 0, false
	}
	return n, true
}

func (a *App) focusPath(path string) {
	resolved, err := ResolvePath(path)
	if err != nil {
		a.log(LogError, err.Error())
		return
	}
	buf := a.directoryBuffer
	if buf == nil {
		return
	}
	for i := range buf.Nodes {
		if buf.Nodes[i].AbsolutePath == resolved {
			a.focusTo(i)
			return
		}
	}
	a.log(LogError, "not in the current directory: "+resolved)
}

func (a *App) focusByFileName(name string) {
	buf := a.directoryBuffer
	if buf == nil {
		return
	}
	if i := buf.IndexOf(name); i >= 0 {
		a.focusTo(i)
		return
	}
	a.log(LogError, "no such file: "+name)
}

func (a *App) changeDirectory(path string) []Effect {
	resolved, err := ResolvePath(path)
	if err != nil {
		a.log(LogError, err.Error())
		return nil
	}
	if resolved == a.pwd {
		return nil
	}
	if err := checkDirectory(resolved); err != nil {
		a.log(LogError, err.Error())
		return nil
	}
	a.recordFocus()
	a.pwd = resolved
	a.history.Visit(resolved)
	return a.explore()
}

func (a *App) enter() []Effect {
	n := a.FocusedNode()
	if n == nil {
		return nil
	}
	isDir := n.IsDir
	if n.Canonical != nil {
		isDir = n.Canonical.IsDir
	}
	if !isDir {
		return nil
	}
	return a.changeDirectory(n.AbsolutePath)
}

func (a *App) back() []Effect {
	parent := filepath.Dir(a.pwd)
	if parent == a.pwd {
		return nil
	}
	// Focus the directory being left after landing in the parent.
	a.lastFocus[parent] = filepath.Base(a.pwd)
	return a.changeDirectory(parent)
}

// visitHistory moves along the history ring without adding a new entry.
func (a *App) visitHistory(move func() (string, bool)) []Effect {
	path, moved := move()
	if !moved {
		return nil
	}
	if err := checkDirectory(path); err != nil {
		a.log(LogError, err.Error())
		return nil
	}
	a.recordFocus()
	a.pwd = path
	return a.explore()
}

func (a *App) followSymlink() []Effect {
	n := a.FocusedNode()
	if n == nil || !n.IsSymlink {
		a.log(LogError, "not a symlink")
		return nil
	}
	if n.Symlink == nil {
		a.log(LogError, "broken symlink: "+n.AbsolutePath)
		return nil
	}
	target := n.Symlink.AbsolutePath
	if n.Symlink.IsDir {
		return a.changeDirectory(target)
	}
	parent := filepath.Dir(target)
	a.lastFocus[parent] = filepath.Base(target)
	return a.changeDirectory(parent)
}

func (a *App) toggleSelectAll() {
	buf := a.directoryBuffer
	if buf == nil || len(buf.Nodes) == 0 {
		return
	}
	all := true
	for i := range buf.Nodes {
		if !a.selection.Contains(buf.Nodes[i].AbsolutePath) {
			all = false
			break
		}
	}
	for i := range buf.Nodes {
		if all {
			a.selection.Remove(buf.Nodes[i].AbsolutePath)
		} else {
			a.selection.Add(buf.Nodes[i].AbsolutePath)
		}
	}
}

func (a *App) switchMode(name string) {
	md, ok := a.config.Modes.Get(name)
	if !ok {
		a.log(LogWarning, "unknown mode: "+name)
		return
	}
	a.mode = md
}
