package node

import (
	"os"

	"xplr/internal/errs"
)

// Explore enumerates parent into a DirectoryBuffer: every entry becomes a
// Node, the config's filters and sorters are applied, and focus lands on
// lastFocus when that entry survived the pipeline, else 0. The returned
// Total counts nodes after filtering.
func Explore(parent string, cfg ExplorerConfig, lastFocus string) (DirectoryBuffer, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return DirectoryBuffer{}, errs.WithPath(errs.Scan, err, "cannot read directory", parent)
	}

	nodes := make([]Node, 0, len(entries))
	for _, entry := range entries {
		nodes = append(nodes, New(parent, entry.Name()))
	}
	nodes = cfg.Apply(nodes)

	buf := NewDirectoryBuffer(parent, nodes, 0)
	if lastFocus != "" {
		if i := buf.IndexOf(lastFocus); i >= 0 {
			buf.SetFocus(i)
		}
	}
	return buf, nil
}
