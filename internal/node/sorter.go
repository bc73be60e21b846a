package node

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SorterKind names one ordering dimension over nodes.
type SorterKind string

const (
	ByRelativePath SorterKind = "ByRelativePath"
	// ByIRelativePath is natural order: case-folded, embedded integer runs
	// compared numerically.
	ByIRelativePath SorterKind = "ByIRelativePath"
	ByExtension     SorterKind = "ByExtension"
	ByIsDir         SorterKind = "ByIsDir"
	ByIsFile        SorterKind = "ByIsFile"
	ByIsSymlink     SorterKind = "ByIsSymlink"
	ByIsBroken      SorterKind = "ByIsBroken"
	ByIsReadonly    SorterKind = "ByIsReadonly"
	ByMimeEssence   SorterKind = "ByMimeEssence"
	BySize          SorterKind = "BySize"

	ByCanonicalAbsolutePath  SorterKind = "ByCanonicalAbsolutePath"
	ByICanonicalAbsolutePath SorterKind = "ByICanonicalAbsolutePath"
	ByCanonicalExtension     SorterKind = "ByCanonicalExtension"
	ByCanonicalIsDir         SorterKind = "ByCanonicalIsDir"
	ByCanonicalIsFile        SorterKind = "ByCanonicalIsFile"
	ByCanonicalIsReadonly    SorterKind = "ByCanonicalIsReadonly"
	ByCanonicalMimeEssence   SorterKind = "ByCanonicalMimeEssence"
	ByCanonicalSize          SorterKind = "ByCanonicalSize"

	BySymlinkAbsolutePath  SorterKind = "BySymlinkAbsolutePath"
	ByISymlinkAbsolutePath SorterKind = "ByISymlinkAbsolutePath"
	BySymlinkExtension     SorterKind = "BySymlinkExtension"
	BySymlinkIsDir         SorterKind = "BySymlinkIsDir"
	BySymlinkIsFile        SorterKind = "BySymlinkIsFile"
	BySymlinkIsReadonly    SorterKind = "BySymlinkIsReadonly"
	BySymlinkMimeEssence   SorterKind = "BySymlinkMimeEssence"
	BySymlinkSize          SorterKind = "BySymlinkSize"
)

var sorterKinds = map[SorterKind]struct{}{
	ByRelativePath: {}, ByIRelativePath: {}, ByExtension: {}, ByIsDir: {}, ByIsFile: {},
	ByIsSymlink: {}, ByIsBroken: {}, ByIsReadonly: {}, ByMimeEssence: {}, BySize: {},
	ByCanonicalAbsolutePath: {}, ByICanonicalAbsolutePath: {}, ByCanonicalExtension: {},
	ByCanonicalIsDir: {}, ByCanonicalIsFile: {}, ByCanonicalIsReadonly: {},
	ByCanonicalMimeEssence: {}, ByCanonicalSize: {},
	BySymlinkAbsolutePath: {}, ByISymlinkAbsolutePath: {}, BySymlinkExtension: {},
	BySymlinkIsDir: {}, BySymlinkIsFile: {}, BySymlinkIsReadonly: {},
	BySymlinkMimeEssence: {}, BySymlinkSize: {},
}

// Valid reports whether k names a known sorter kind.
func (k SorterKind) Valid() bool {
	_, ok := sorterKinds[k]
	return ok
}

// SorterApplicable is a sorter kind with its direction.
type SorterApplicable struct {
	Sorter  SorterKind `yaml:"sorter"`
	Reverse bool       `yaml:"reverse"`
}

var (
	naturalMu sync.Mutex
	natural   = collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
)

// naturalCompare orders strings case-insensitively with embedded integer runs
// compared numerically ("file2" before "file10").
func naturalCompare(a, b string) int {
	naturalMu.Lock()
	defer naturalMu.Unlock()
	return natural.CompareString(a, b)
}

func compareStrings(a, b string) int {
	return strings.Compare(a, b)
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func canonicalOf(n Node) ResolvedNodeMetadata {
	if n.Canonical != nil {
		return *n.Canonical
	}
	return ResolvedNodeMetadata{}
}

func symlinkOf(n Node) ResolvedNodeMetadata {
	if n.Symlink != nil {
		return *n.Symlink
	}
	return ResolvedNodeMetadata{}
}

// Compare orders a before b per the sorter, already accounting for Reverse.
func (s SorterApplicable) Compare(a, b Node) int {
	ord := s.compare(a, b)
	if s.Reverse {
		return -ord
	}
	return ord
}

func (s SorterApplicable) compare(a, b Node) int {
	switch s.Sorter {
	case ByRelativePath:
		return compareStrings(a.RelativePath, b.RelativePath)
	case ByIRelativePath:
		return naturalCompare(a.RelativePath, b.RelativePath)
	case ByExtension:
		return compareStrings(a.Extension, b.Extension)
	case ByIsDir:
		return compareBools(a.IsDir, b.IsDir)
	case ByIsFile:
		return compareBools(a.IsFile, b.IsFile)
	case ByIsSymlink:
		return compareBools(a.IsSymlink, b.IsSymlink)
	case ByIsBroken:
		return compareBools(a.IsBroken(), b.IsBroken())
	case ByIsReadonly:
		return compareBools(a.IsReadonly, b.IsReadonly)
	case ByMimeEssence:
		return compareStrings(a.MimeEssence, b.MimeEssence)
	case BySize:
		return compareInt64(a.Size, b.Size)

	case ByCanonicalAbsolutePath:
		return compareStrings(canonicalOf(a).AbsolutePath, canonicalOf(b).AbsolutePath)
	case ByICanonicalAbsolutePath:
		return naturalCompare(canonicalOf(a).AbsolutePath, canonicalOf(b).AbsolutePath)
	case ByCanonicalExtension:
		return compareStrings(canonicalOf(a).Extension, canonicalOf(b).Extension)
	case ByCanonicalIsDir:
		return compareBools(canonicalOf(a).IsDir, canonicalOf(b).IsDir)
	case ByCanonicalIsFile:
		return compareBools(canonicalOf(a).IsFile, canonicalOf(b).IsFile)
	case ByCanonicalIsReadonly:
		return compareBools(canonicalOf(a).IsReadonly, canonicalOf(b).IsReadonly)
	case ByCanonicalMimeEssence:
		return compareStrings(canonicalOf(a).MimeEssence, canonicalOf(b).MimeEssence)
	case ByCanonicalSize:
		return compareInt64(canonicalOf(a).Size, canonicalOf(b).Size)

	case BySymlinkAbsolutePath:
		return compareStrings(symlinkOf(a).AbsolutePath, symlinkOf(b).AbsolutePath)
	case ByISymlinkAbsolutePath:
		return naturalCompare(symlinkOf(a).AbsolutePath, symlinkOf(b).AbsolutePath)
	case BySymlinkExtension:
		return compareStrings(symlinkOf(a).Extension, symlinkOf(b).Extension)
	case BySymlinkIsDir:
		return compareBools(symlinkOf(a).IsDir, symlinkOf(b).IsDir)
	case BySymlinkIsFile:
		return compareBools(symlinkOf(a).IsFile, symlinkOf(b).IsFile)
	case BySymlinkIsReadonly:
		return compareBools(symlinkOf(a).IsReadonly, symlinkOf(b).IsReadonly)
	case BySymlinkMimeEssence:
		return compareStrings(symlinkOf(a).MimeEssence, symlinkOf(b).MimeEssence)
	case BySymlinkSize:
		return compareInt64(symlinkOf(a).Size, symlinkOf(b).Size)
	}
	return 0
}
