package node

import "strings"

// FilterKind selects which path component a filter reads and how it compares.
// The I-prefixed kinds compare case-insensitively.
type FilterKind string

const (
	RelativePathIs                 FilterKind = "RelativePathIs"
	RelativePathIsNot              FilterKind = "RelativePathIsNot"
	IRelativePathIs                FilterKind = "IRelativePathIs"
	IRelativePathIsNot             FilterKind = "IRelativePathIsNot"
	RelativePathDoesStartWith      FilterKind = "RelativePathDoesStartWith"
	RelativePathDoesNotStartWith   FilterKind = "RelativePathDoesNotStartWith"
	IRelativePathDoesStartWith     FilterKind = "IRelativePathDoesStartWith"
	IRelativePathDoesNotStartWith  FilterKind = "IRelativePathDoesNotStartWith"
	RelativePathDoesContain        FilterKind = "RelativePathDoesContain"
	RelativePathDoesNotContain     FilterKind = "RelativePathDoesNotContain"
	IRelativePathDoesContain       FilterKind = "IRelativePathDoesContain"
	IRelativePathDoesNotContain    FilterKind = "IRelativePathDoesNotContain"
	RelativePathDoesEndWith        FilterKind = "RelativePathDoesEndWith"
	RelativePathDoesNotEndWith     FilterKind = "RelativePathDoesNotEndWith"
	IRelativePathDoesEndWith       FilterKind = "IRelativePathDoesEndWith"
	IRelativePathDoesNotEndWith    FilterKind = "IRelativePathDoesNotEndWith"
	AbsolutePathIs                 FilterKind = "AbsolutePathIs"
	AbsolutePathIsNot              FilterKind = "AbsolutePathIsNot"
	IAbsolutePathIs                FilterKind = "IAbsolutePathIs"
	IAbsolutePathIsNot             FilterKind = "IAbsolutePathIsNot"
	AbsolutePathDoesStartWith      FilterKind = "AbsolutePathDoesStartWith"
	AbsolutePathDoesNotStartWith   FilterKind = "AbsolutePathDoesNotStartWith"
	IAbsolutePathDoesStartWith     FilterKind = "IAbsolutePathDoesStartWith"
	IAbsolutePathDoesNotStartWith  FilterKind = "IAbsolutePathDoesNotStartWith"
	AbsolutePathDoesContain        FilterKind = "AbsolutePathDoesContain"
	AbsolutePathDoesNotContain     FilterKind = "AbsolutePathDoesNotContain"
	IAbsolutePathDoesContain       FilterKind = "IAbsolutePathDoesContain"
	IAbsolutePathDoesNotContain    FilterKind = "IAbsolutePathDoesNotContain"
	AbsolutePathDoesEndWith        FilterKind = "AbsolutePathDoesEndWith"
	AbsolutePathDoesNotEndWith     FilterKind = "AbsolutePathDoesNotEndWith"
	IAbsolutePathDoesEndWith       FilterKind = "IAbsolutePathDoesEndWith"
	IAbsolutePathDoesNotEndWith    FilterKind = "IAbsolutePathDoesNotEndWith"
)

var filterKinds = map[FilterKind]struct{}{
	RelativePathIs: {}, RelativePathIsNot: {}, IRelativePathIs: {}, IRelativePathIsNot: {},
	RelativePathDoesStartWith: {}, RelativePathDoesNotStartWith: {}, IRelativePathDoesStartWith: {}, IRelativePathDoesNotStartWith: {},
	RelativePathDoesContain: {}, RelativePathDoesNotContain: {}, IRelativePathDoesContain: {}, IRelativePathDoesNotContain: {},
	RelativePathDoesEndWith: {}, RelativePathDoesNotEndWith: {}, IRelativePathDoesEndWith: {}, IRelativePathDoesNotEndWith: {},
	AbsolutePathIs: {}, AbsolutePathIsNot: {}, IAbsolutePathIs: {}, IAbsolutePathIsNot: {},
	AbsolutePathDoesStartWith: {}, AbsolutePathDoesNotStartWith: {}, IAbsolutePathDoesStartWith: {}, IAbsolutePathDoesNotStartWith: {},
	AbsolutePathDoesContain: {}, AbsolutePathDoesNotContain: {}, IAbsolutePathDoesContain: {}, IAbsolutePathDoesNotContain: {},
	AbsolutePathDoesEndWith: {}, AbsolutePathDoesNotEndWith: {}, IAbsolutePathDoesEndWith: {}, IAbsolutePathDoesNotEndWith: {},
}

// Valid reports whether k names a known filter kind.
func (k FilterKind) Valid() bool {
	_, ok := filterKinds[k]
	return ok
}

// FilterApplicable is a filter kind bound to its input value.
type FilterApplicable struct {
	Kind  FilterKind `yaml:"kind"`
	Input string     `yaml:"input"`
}

// Apply reports whether n passes the filter.
func (f FilterApplicable) Apply(n Node) bool {
	relative := n.RelativePath
	absolute := n.AbsolutePath
	input := f.Input
	irelative := strings.ToLower(relative)
	iabsolute := strings.ToLower(absolute)
	iinput := strings.ToLower(input)

	switch f.Kind {
	case RelativePathIs:
		return relative == input
	case RelativePathIsNot:
		return relative != input
	case IRelativePathIs:
		return irelative == iinput
	case IRelativePathIsNot:
		return irelative != iinput
	case RelativePathDoesStartWith:
		return strings.HasPrefix(relative, input)
	case RelativePathDoesNotStartWith:
		return !strings.HasPrefix(relative, input)
	case IRelativePathDoesStartWith:
		return strings.HasPrefix(irelative, iinput)
	case IRelativePathDoesNotStartWith:
		return !strings.HasPrefix(irelative, iinput)
	case RelativePathDoesContain:
		return strings.Contains(relative, input)
	case RelativePathDoesNotContain:
		return !strings.Contains(relative, input)
	case IRelativePathDoesContain:
		return strings.Contains(irelative, iinput)
	case IRelativePathDoesNotContain:
		return !strings.Contains(irelative, iinput)
	case RelativePathDoesEndWith:
		return strings.HasSuffix(relative, input)
	case RelativePathDoesNotEndWith:
		return !strings.HasSuffix(relative, input)
	case IRelativePathDoesEndWith:
		return strings.HasSuffix(irelative, iinput)
	case IRelativePathDoesNotEndWith:
		return !strings.HasSuffix(irelative, iinput)
	case AbsolutePathIs:
		return absolute == input
	case AbsolutePathIsNot:
		return absolute != input
	case IAbsolutePathIs:
		return iabsolute == iinput
	case IAbsolutePathIsNot:
		return iabsolute != iinput
	case AbsolutePathDoesStartWith:
		return strings.HasPrefix(absolute, input)
	case AbsolutePathDoesNotStartWith:
		return !strings.HasPrefix(absolute, input)
	case IAbsolutePathDoesStartWith:
		return strings.HasPrefix(iabsolute, iinput)
	case IAbsolutePathDoesNotStartWith:
		return !strings.HasPrefix(iabsolute, iinput)
	case AbsolutePathDoesContain:
		return strings.Contains(absolute, input)
	case AbsolutePathDoesNotContain:
		return !strings.Contains(absolute, input)
	case IAbsolutePathDoesContain:
		return strings.Contains(iabsolute, iinput)
	case IAbsolutePathDoesNotContain:
		return !strings.Contains(iabsolute, iinput)
	case AbsolutePathDoesEndWith:
		return strings.HasSuffix(absolute, input)
	case AbsolutePathDoesNotEndWith:
		return !strings.HasSuffix(absolute, input)
	case IAbsolutePathDoesEndWith:
		return strings.HasSuffix(iabsolute, iinput)
	case IAbsolutePathDoesNotEndWith:
		return !strings.HasSuffix(iabsolute, iinput)
	}
	return true
}
