package ui

import (
	"sort"

	"github.com/gobwas/glob"

	"xplr/internal/config"
	"xplr/internal/log"
	"xplr/internal/node"
)

type compiledSpecial struct {
	pattern string
	matcher glob.Glob
	cfg     config.NodeTypeConfig
}

// nodeStyler resolves a node to its configured style. Special entries match
// the file name exactly or as a glob pattern and win over extension, which
// wins over mime essence, which wins over the base class.
type nodeStyler struct {
	types    config.NodeTypesConfig
	specials []compiledSpecial
}

func newNodeStyler(types config.NodeTypesConfig) *nodeStyler {
	st := &nodeStyler{types: types}
	patterns := make([]string, 0, len(types.Special))
	for pattern := range types.Special {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)
	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern)
		if err != nil {
			log.Warnf("ui: invalid node_types.special pattern %q: %v", pattern, err)
			continue
		}
		st.specials = append(st.specials, compiledSpecial{
			pattern: pattern,
			matcher: matcher,
			cfg:     types.Special[pattern],
		})
	}
	return st
}

func (st *nodeStyler) resolve(n node.Node) config.NodeTypeConfig {
	for _, special := range st.specials {
		if special.pattern == n.RelativePath || special.matcher.Match(n.RelativePath) {
			return special.cfg
		}
	}
	if cfg, ok := st.types.Extension[n.Extension]; ok {
		return cfg
	}
	if cfg, ok := st.types.MimeEssence[n.MimeEssence]; ok {
		return cfg
	}
	switch {
	case n.IsSymlink:
		return st.types.Symlink
	case n.IsDir:
		return st.types.Directory
	default:
		return st.types.File
	}
}
