// Package node models a single directory entry with its stat, symlink and
// canonical metadata, and the ordered buffer of entries the explorer renders.
package node

import (
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ResolvedNodeMetadata describes a resolved path: either the canonical
// (fully-followed) target of an entry, or the direct single-hop target of a
// symlink.
type ResolvedNodeMetadata struct {
	AbsolutePath string `yaml:"absolute_path"`
	Extension    string `yaml:"extension"`
	IsDir        bool   `yaml:"is_dir"`
	IsFile       bool   `yaml:"is_file"`
	IsReadonly   bool   `yaml:"is_readonly"`
	MimeEssence  string `yaml:"mime_essence"`
	Size         int64  `yaml:"size"`
}

// Node is the snapshot of one directory entry. RelativePath never contains a
// path separator. For non-symlinks Canonical mirrors the node's own metadata;
// for symlinks Canonical and Symlink are set only when the target resolves.
type Node struct {
	Parent       string                `yaml:"parent"`
	RelativePath string                `yaml:"relative_path"`
	AbsolutePath string                `yaml:"absolute_path"`
	Extension    string                `yaml:"extension"`
	IsDir        bool                  `yaml:"is_dir"`
	IsFile       bool                  `yaml:"is_file"`
	IsSymlink    bool                  `yaml:"is_symlink"`
	IsReadonly   bool                  `yaml:"is_readonly"`
	MimeEssence  string                `yaml:"mime_essence"`
	Size         int64                 `yaml:"size"`
	Canonical    *ResolvedNodeMetadata `yaml:"canonical,omitempty"`
	Symlink      *ResolvedNodeMetadata `yaml:"symlink,omitempty"`
}

// New stats the entry named relativePath inside parent and builds its Node.
// The entry itself is stat'ed without following symlinks; canonical metadata
// follows the full chain and symlink metadata follows a single hop. A broken
// link yields a Node with neither Canonical nor Symlink set.
func New(parent, relativePath string) Node {
	absolutePath := filepath.Join(parent, relativePath)
	extension := extensionOf(relativePath)

	n := Node{
		Parent:       parent,
		RelativePath: relativePath,
		AbsolutePath: absolutePath,
		Extension:    extension,
		MimeEssence:  MimeEssence(extension),
	}

	info, err := os.Lstat(absolutePath)
	if err != nil {
		return n
	}

	n.IsDir = info.IsDir()
	n.IsFile = info.Mode().IsRegular()
	n.IsSymlink = info.Mode()&os.ModeSymlink != 0
	n.IsReadonly = isReadonly(info)
	n.Size = info.Size()

	if n.IsFile && n.MimeEssence == "" {
		if kind, err := mimetype.DetectFile(absolutePath); err == nil {
			n.MimeEssence = stripParameters(kind.String())
		}
	}

	if !n.IsSymlink {
		n.Canonical = &ResolvedNodeMetadata{
			AbsolutePath: absolutePath,
			Extension:    extension,
			IsDir:        n.IsDir,
			IsFile:       n.IsFile,
			IsReadonly:   n.IsReadonly,
			MimeEssence:  n.MimeEssence,
			Size:         n.Size,
		}
		return n
	}

	if canonical, err := filepath.EvalSymlinks(absolutePath); err == nil {
		n.Canonical = resolve(canonical)
	}
	if target, err := os.Readlink(absolutePath); err == nil {
		if !filepath.IsAbs(target) {
			target = filepath.Join(parent, target)
		}
		if meta := resolve(target); meta != nil {
			n.Symlink = meta
		}
	}

	return n
}

// resolve stats path (following links) and packs the result, or nil when the
// path does not resolve.
func resolve(path string) *ResolvedNodeMetadata {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	extension := extensionOf(filepath.Base(path))
	return &ResolvedNodeMetadata{
		AbsolutePath: path,
		Extension:    extension,
		IsDir:        info.IsDir(),
		IsFile:       info.Mode().IsRegular(),
		IsReadonly:   isReadonly(info),
		MimeEssence:  MimeEssence(extension),
		Size:         info.Size(),
	}
}

// IsBroken reports whether the node is a symlink whose target does not
// resolve.
func (n Node) IsBroken() bool {
	return n.IsSymlink && n.Symlink == nil
}

// MimeEssence maps an extension to "type/subtype", dropping any parameters.
// Unknown extensions yield the empty string.
func MimeEssence(extension string) string {
	if extension == "" {
		return ""
	}
	return stripParameters(mime.TypeByExtension("." + extension))
}

func stripParameters(essence string) string {
	if i := strings.IndexByte(essence, ';'); i >= 0 {
		essence = strings.TrimSpace(essence[:i])
	}
	return essence
}

func extensionOf(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimPrefix(ext, ".")
}

func isReadonly(info os.FileInfo) bool {
	return info.Mode().Perm()&0o200 == 0
}

// DirectoryBuffer is the filtered, sorted view of one directory. Focus stays
// within [0, len(Nodes)) whenever Nodes is non-empty; an empty buffer keeps
// Focus at 0.
type DirectoryBuffer struct {
	Parent string `yaml:"parent"`
	Nodes  []Node `yaml:"nodes"`
	Total  int    `yaml:"total"`
	Focus  int    `yaml:"focus"`
}

// NewDirectoryBuffer builds a buffer over nodes with focus clamped to range.
func NewDirectoryBuffer(parent string, nodes []Node, focus int) DirectoryBuffer {
	buf := DirectoryBuffer{
		Parent: parent,
		Nodes:  nodes,
		Total:  len(nodes),
	}
	buf.Focus = buf.clamp(focus)
	return buf
}

// FocusedNode returns the node under focus, or nil for an empty buffer.
func (b *DirectoryBuffer) FocusedNode() *Node {
	if b == nil || len(b.Nodes) == 0 {
		return nil
	}
	return &b.Nodes[b.Focus]
}

// SetFocus moves focus, clamping into range. It reports whether the focus
// value changed.
func (b *DirectoryBuffer) SetFocus(focus int) bool {
	clamped := b.clamp(focus)
	if clamped == b.Focus {
		return false
	}
	b.Focus = clamped
	return true
}

// IndexOf returns the position of the node with the given relative path, or
// -1 when absent.
func (b *DirectoryBuffer) IndexOf(relativePath string) int {
	for i := range b.Nodes {
		if b.Nodes[i].RelativePath == relativePath {
			return i
		}
	}
	return -1
}

func (b *DirectoryBuffer) clamp(focus int) int {
	if len(b.Nodes) == 0 {
		return 0
	}
	if focus < 0 {
		return 0
	}
	if focus >= len(b.Nodes) {
		return len(b.Nodes) - 1
	}
	return focus
}
