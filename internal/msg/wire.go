package msg

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"xplr/internal/node"
)

// payloadShape describes what, if anything, follows a tag on the wire.
type payloadShape int

const (
	payloadNone payloadShape = iota
	payloadString
	payloadInt
	payloadFilter
	payloadFilterKind
	payloadSorter
	payloadSorterKind
	payloadCall
)

var shapes = map[Kind]payloadShape{
	KindFocusFirst:                            payloadNone,
	KindFocusLast:                             payloadNone,
	KindFocusNext:                             payloadNone,
	KindFocusPrevious:                         payloadNone,
	KindFocusNextByRelativeIndexFromInput:     payloadNone,
	KindFocusPreviousByRelativeIndexFromInput: payloadNone,
	KindFocusPath:                             payloadString,
	KindFocusByIndex:                          payloadInt,
	KindFocusByIndexFromInput:                 payloadNone,
	KindFocusByFileName:                       payloadString,

	KindChangeDirectory: payloadString,
	KindEnter:           payloadNone,
	KindBack:            payloadNone,
	KindLastVisitedPath: payloadNone,
	KindNextVisitedPath: payloadNone,
	KindFollowSymlink:   payloadNone,

	KindSetInputBuffer:                 payloadString,
	KindResetInputBuffer:               payloadNone,
	KindBufferInput:                    payloadString,
	KindBufferInputFromKey:             payloadNone,
	KindRemoveInputBufferLastCharacter: payloadNone,
	KindRemoveInputBufferLastWord:      payloadNone,

	KindToggleSelection: payloadNone,
	KindToggleSelectAll: payloadNone,
	KindClearSelection:  payloadNone,

	KindAddNodeFilter:             payloadFilter,
	KindAddNodeFilterFromInput:    payloadFilterKind,
	KindRemoveNodeFilter:          payloadFilter,
	KindRemoveNodeFilterFromInput: payloadFilterKind,
	KindRemoveLastNodeFilter:      payloadNone,
	KindToggleNodeFilter:          payloadFilter,
	KindResetNodeFilters:          payloadNone,
	KindClearNodeFilters:          payloadNone,

	KindAddNodeSorter:        payloadSorter,
	KindRemoveNodeSorter:     payloadSorterKind,
	KindReverseNodeSorters:   payloadNone,
	KindResetNodeSorters:     payloadNone,
	KindClearNodeSorters:     payloadNone,
	KindRemoveLastNodeSorter: payloadNone,

	KindSwitchMode: payloadString,

	KindExplore:              payloadNone,
	KindRefresh:              payloadNone,
	KindClearScreen:          payloadNone,
	KindQuit:                 payloadNone,
	KindTerminate:            payloadNone,
	KindPrintResultAndQuit:   payloadNone,
	KindPrintAppStateAndQuit: payloadNone,

	KindLogInfo:    payloadString,
	KindLogSuccess: payloadString,
	KindLogError:   payloadString,

	KindCall:             payloadCall,
	KindBashExec:         payloadString,
	KindBashExecSilently: payloadString,
}

// ParseLine decodes one wire line: a bare tag, `Tag: value`, or a tag with a
// nested YAML payload. Unknown tags and malformed payloads are errors.
func ParseLine(line string) (Message, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Message{}, fmt.Errorf("empty message")
	}

	tag := line
	payload := ""
	if i := strings.Index(line, ":"); i >= 0 {
		tag = strings.TrimSpace(line[:i])
		payload = strings.TrimSpace(line[i+1:])
	}

	kind := Kind(tag)
	shape, known := shapes[kind]
	if !known {
		return Message{}, fmt.Errorf("unknown message: %q", tag)
	}

	m := Message{Kind: kind}
	switch shape {
	case payloadNone:
		if payload != "" {
			return Message{}, fmt.Errorf("%s takes no value", kind)
		}
	case payloadString:
		m.Str = payload
	case payloadInt:
		i, err := strconv.Atoi(payload)
		if err != nil {
			return Message{}, fmt.Errorf("%s: invalid index %q", kind, payload)
		}
		m.Index = i
	case payloadFilter:
		if err := yaml.Unmarshal([]byte(payload), &m.Filter); err != nil {
			return Message{}, fmt.Errorf("%s: %w", kind, err)
		}
	case payloadFilterKind:
		m.FilterKind = node.FilterKind(payload)
	case payloadSorter:
		if err := yaml.Unmarshal([]byte(payload), &m.Sorter); err != nil {
			return Message{}, fmt.Errorf("%s: %w", kind, err)
		}
	case payloadSorterKind:
		m.SorterKind = node.SorterKind(payload)
	case payloadCall:
		if err := yaml.Unmarshal([]byte(payload), &m.Call); err != nil {
			return Message{}, fmt.Errorf("%s: %w", kind, err)
		}
	}

	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// String encodes the message back to its wire line. ParseLine(m.String())
// reproduces m for every valid message whose string payload has no leading
// or trailing whitespace and no line break; ParseLine trims the former and
// reads one line only.
func (m Message) String() string {
	switch shapes[m.Kind] {
	case payloadString:
		if m.Str == "" {
			return string(m.Kind) + ":"
		}
		return fmt.Sprintf("%s: %s", m.Kind, m.Str)
	case payloadInt:
		return fmt.Sprintf("%s: %d", m.Kind, m.Index)
	case payloadFilter:
		return fmt.Sprintf("%s: {kind: %s, input: %s}", m.Kind, m.Filter.Kind, flowScalar(m.Filter.Input))
	case payloadFilterKind:
		return fmt.Sprintf("%s: %s", m.Kind, m.FilterKind)
	case payloadSorter:
		return fmt.Sprintf("%s: {sorter: %s, reverse: %t}", m.Kind, m.Sorter.Sorter, m.Sorter.Reverse)
	case payloadSorterKind:
		return fmt.Sprintf("%s: %s", m.Kind, m.SorterKind)
	case payloadCall:
		args := make([]string, len(m.Call.Args))
		for i, a := range m.Call.Args {
			args[i] = flowScalar(a)
		}
		return fmt.Sprintf("%s: {command: %s, args: [%s]}",
			m.Kind, flowScalar(m.Call.Command), strings.Join(args, ", "))
	default:
		return string(m.Kind)
	}
}

// flowScalar quotes s when a bare YAML flow scalar would be ambiguous.
func flowScalar(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, ":{}[],#&*!|>'\"%@` \t") {
		return strconv.Quote(s)
	}
	return s
}
