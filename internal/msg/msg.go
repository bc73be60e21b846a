// Package msg defines the closed message taxonomy the interpreter consumes,
// along with the line-oriented wire format spoken over the inbound pipe.
package msg

import (
	"fmt"

	"xplr/internal/node"
)

// Kind is the textual tag of a message. The set is closed: unknown tags are
// refused at parse time, never forwarded.
type Kind string

const (
	// Focus
	KindFocusFirst                            Kind = "FocusFirst"
	KindFocusLast                             Kind = "FocusLast"
	KindFocusNext                             Kind = "FocusNext"
	KindFocusPrevious                         Kind = "FocusPrevious"
	KindFocusNextByRelativeIndexFromInput     Kind = "FocusNextByRelativeIndexFromInput"
	KindFocusPreviousByRelativeIndexFromInput Kind = "FocusPreviousByRelativeIndexFromInput"
	KindFocusPath                             Kind = "FocusPath"
	KindFocusByIndex                          Kind = "FocusByIndex"
	KindFocusByIndexFromInput                 Kind = "FocusByIndexFromInput"
	KindFocusByFileName                       Kind = "FocusByFileName"

	// Navigation
	KindChangeDirectory Kind = "ChangeDirectory"
	KindEnter           Kind = "Enter"
	KindBack            Kind = "Back"
	KindLastVisitedPath Kind = "LastVisitedPath"
	KindNextVisitedPath Kind = "NextVisitedPath"
	KindFollowSymlink   Kind = "FollowSymlink"

	// Input buffer
	KindSetInputBuffer                Kind = "SetInputBuffer"
	KindResetInputBuffer              Kind = "ResetInputBuffer"
	KindBufferInput                   Kind = "BufferInput"
	KindBufferInputFromKey            Kind = "BufferInputFromKey"
	KindRemoveInputBufferLastCharacter Kind = "RemoveInputBufferLastCharacter"
	KindRemoveInputBufferLastWord     Kind = "RemoveInputBufferLastWord"

	// Selection
	KindToggleSelection Kind = "ToggleSelection"
	KindToggleSelectAll Kind = "ToggleSelectAll"
	KindClearSelection  Kind = "ClearSelection"

	// Filters
	KindAddNodeFilter             Kind = "AddNodeFilter"
	KindAddNodeFilterFromInput    Kind = "AddNodeFilterFromInput"
	KindRemoveNodeFilter          Kind = "RemoveNodeFilter"
	KindRemoveNodeFilterFromInput Kind = "RemoveNodeFilterFromInput"
	KindRemoveLastNodeFilter      Kind = "RemoveLastNodeFilter"
	KindToggleNodeFilter          Kind = "ToggleNodeFilter"
	KindResetNodeFilters          Kind = "ResetNodeFilters"
	KindClearNodeFilters          Kind = "ClearNodeFilters"

	// Sorters
	KindAddNodeSorter        Kind = "AddNodeSorter"
	KindRemoveNodeSorter     Kind = "RemoveNodeSorter"
	KindReverseNodeSorters   Kind = "ReverseNodeSorters"
	KindResetNodeSorters     Kind = "ResetNodeSorters"
	KindClearNodeSorters     Kind = "ClearNodeSorters"
	KindRemoveLastNodeSorter Kind = "RemoveLastNodeSorter"

	// Mode
	KindSwitchMode Kind = "SwitchMode"

	// Lifecycle
	KindExplore              Kind = "Explore"
	KindRefresh              Kind = "Refresh"
	KindClearScreen          Kind = "ClearScreen"
	KindQuit                 Kind = "Quit"
	KindTerminate            Kind = "Terminate"
	KindPrintResultAndQuit   Kind = "PrintResultAndQuit"
	KindPrintAppStateAndQuit Kind = "PrintAppStateAndQuit"

	// Logging
	KindLogInfo    Kind = "LogInfo"
	KindLogSuccess Kind = "LogSuccess"
	KindLogError   Kind = "LogError"

	// Side effects
	KindCall             Kind = "Call"
	KindBashExec         Kind = "BashExec"
	KindBashExecSilently Kind = "BashExecSilently"
)

// CallArg is the payload of a Call message.
type CallArg struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// Message is one unit of intent. Exactly the fields relevant to Kind are
// meaningful; the rest stay zero.
type Message struct {
	Kind       Kind
	Str        string
	Index      int
	Filter     node.FilterApplicable
	FilterKind node.FilterKind
	Sorter     node.SorterApplicable
	SorterKind node.SorterKind
	Call       CallArg
}

// IsReadOnly reports whether the message can run under a read-only session.
// Only the messages that hand control to external processes are excluded.
func (m Message) IsReadOnly() bool {
	switch m.Kind {
	case KindCall, KindBashExec, KindBashExecSilently:
		return false
	default:
		return true
	}
}

// Constructors, named after the wire tags.

func FocusFirst() Message    { return Message{Kind: KindFocusFirst} }
func FocusLast() Message     { return Message{Kind: KindFocusLast} }
func FocusNext() Message     { return Message{Kind: KindFocusNext} }
func FocusPrevious() Message { return Message{Kind: KindFocusPrevious} }

func FocusNextByRelativeIndexFromInput() Message {
	return Message{Kind: KindFocusNextByRelativeIndexFromInput}
}

func FocusPreviousByRelativeIndexFromInput() Message {
	return Message{Kind: KindFocusPreviousByRelativeIndexFromInput}
}

func FocusPath(path string) Message { return Message{Kind: KindFocusPath, Str: path} }
func FocusByIndex(i int) Message    { return Message{Kind: KindFocusByIndex, Index: i} }
func FocusByIndexFromInput() Message {
	return Message{Kind: KindFocusByIndexFromInput}
}
func FocusByFileName(name string) Message { return Message{Kind: KindFocusByFileName, Str: name} }

func ChangeDirectory(path string) Message { return Message{Kind: KindChangeDirectory, Str: path} }
func Enter() Message                      { return Message{Kind: KindEnter} }
func Back() Message                       { return Message{Kind: KindBack} }
func LastVisitedPath() Message            { return Message{Kind: KindLastVisitedPath} }
func NextVisitedPath() Message            { return Message{Kind: KindNextVisitedPath} }
func FollowSymlink() Message              { return Message{Kind: KindFollowSymlink} }

func SetInputBuffer(s string) Message { return Message{Kind: KindSetInputBuffer, Str: s} }
func ResetInputBuffer() Message       { return Message{Kind: KindResetInputBuffer} }
func BufferInput(s string) Message    { return Message{Kind: KindBufferInput, Str: s} }
func BufferInputFromKey() Message     { return Message{Kind: KindBufferInputFromKey} }
func RemoveInputBufferLastCharacter() Message {
	return Message{Kind: KindRemoveInputBufferLastCharacter}
}
func RemoveInputBufferLastWord() Message { return Message{Kind: KindRemoveInputBufferLastWord} }

func ToggleSelection() Message { return Message{Kind: KindToggleSelection} }
func ToggleSelectAll() Message { return Message{Kind: KindToggleSelectAll} }
func ClearSelection() Message  { return Message{Kind: KindClearSelection} }

func AddNodeFilter(f node.FilterApplicable) Message {
	return Message{Kind: KindAddNodeFilter, Filter: f}
}

func AddNodeFilterFromInput(kind node.FilterKind) Message {
	return Message{Kind: KindAddNodeFilterFromInput, FilterKind: kind}
}

func RemoveNodeFilter(f node.FilterApplicable) Message {
	return Message{Kind: KindRemoveNodeFilter, Filter: f}
}

func RemoveNodeFilterFromInput(kind node.FilterKind) Message {
	return Message{Kind: KindRemoveNodeFilterFromInput, FilterKind: kind}
}

func RemoveLastNodeFilter() Message { return Message{Kind: KindRemoveLastNodeFilter} }

func ToggleNodeFilter(f node.FilterApplicable) Message {
	return Message{Kind: KindToggleNodeFilter, Filter: f}
}

func ResetNodeFilters() Message { return Message{Kind: KindResetNodeFilters} }
func ClearNodeFilters() Message { return Message{Kind: KindClearNodeFilters} }

func AddNodeSorter(s node.SorterApplicable) Message {
	return Message{Kind: KindAddNodeSorter, Sorter: s}
}

func RemoveNodeSorter(kind node.SorterKind) Message {
	return Message{Kind: KindRemoveNodeSorter, SorterKind: kind}
}

func ReverseNodeSorters() Message   { return Message{Kind: KindReverseNodeSorters} }
func ResetNodeSorters() Message     { return Message{Kind: KindResetNodeSorters} }
func ClearNodeSorters() Message     { return Message{Kind: KindClearNodeSorters} }
func RemoveLastNodeSorter() Message { return Message{Kind: KindRemoveLastNodeSorter} }

func SwitchMode(name string) Message { return Message{Kind: KindSwitchMode, Str: name} }

func Explore() Message              { return Message{Kind: KindExplore} }
func Refresh() Message              { return Message{Kind: KindRefresh} }
func ClearScreen() Message          { return Message{Kind: KindClearScreen} }
func Quit() Message                 { return Message{Kind: KindQuit} }
func Terminate() Message            { return Message{Kind: KindTerminate} }
func PrintResultAndQuit() Message   { return Message{Kind: KindPrintResultAndQuit} }
func PrintAppStateAndQuit() Message { return Message{Kind: KindPrintAppStateAndQuit} }

func LogInfo(s string) Message    { return Message{Kind: KindLogInfo, Str: s} }
func LogSuccess(s string) Message { return Message{Kind: KindLogSuccess, Str: s} }
func LogError(s string) Message   { return Message{Kind: KindLogError, Str: s} }

func Call(command string, args ...string) Message {
	return Message{Kind: KindCall, Call: CallArg{Command: command, Args: args}}
}

func BashExec(script string) Message { return Message{Kind: KindBashExec, Str: script} }
func BashExecSilently(script string) Message {
	return Message{Kind: KindBashExecSilently, Str: script}
}

// Validate rejects messages whose payload enum values fall outside the closed
// sets.
func (m Message) Validate() error {
	switch m.Kind {
	case KindAddNodeFilter, KindRemoveNodeFilter, KindToggleNodeFilter:
		if !m.Filter.Kind.Valid() {
			return fmt.Errorf("unknown filter kind: %q", m.Filter.Kind)
		}
	case KindAddNodeFilterFromInput, KindRemoveNodeFilterFromInput:
		if !m.FilterKind.Valid() {
			return fmt.Errorf("unknown filter kind: %q", m.FilterKind)
		}
	case KindAddNodeSorter:
		if !m.Sorter.Sorter.Valid() {
			return fmt.Errorf("unknown sorter kind: %q", m.Sorter.Sorter)
		}
	case KindRemoveNodeSorter:
		if !m.SorterKind.Valid() {
			return fmt.Errorf("unknown sorter kind: %q", m.SorterKind)
		}
	case KindCall:
		if m.Call.Command == "" {
			return fmt.Errorf("Call requires a command")
		}
	}
	return nil
}
