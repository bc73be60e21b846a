// Package app owns the application state and the message interpreter that
// folds key presses, pipe input and explorer results into state mutations
// plus side-effect requests for the outer loop.
package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"xplr/internal/config"
	"xplr/internal/errs"
	"xplr/internal/history"
	"xplr/internal/input"
	"xplr/internal/mode"
	"xplr/internal/msg"
	"xplr/internal/node"
	"xplr/internal/selection"
)

// App is the aggregate state. The main loop owns it exclusively; background
// workers communicate through messages and never touch it.
type App struct {
	config  config.Config
	version string

	pwd             string
	directoryBuffer *node.DirectoryBuffer
	lastFocus       map[string]string
	selection       *selection.Selection
	history         *history.History
	mode            mode.Mode
	inputBuffer     *input.Buffer
	explorerConfig  node.ExplorerConfig
	initialConfig   node.ExplorerConfig
	logs            []Log

	lastKey mode.Key
	pending []msg.Message
}

// New builds the starting state rooted at pwd. The directory buffer stays
// nil until the first explorer result arrives.
func New(cfg config.Config, version, pwd string) (*App, error) {
	pwd, err := ResolvePath(pwd)
	if err != nil {
		return nil, err
	}
	if err := checkDirectory(pwd); err != nil {
		return nil, err
	}

	md, ok := cfg.Modes.Get(cfg.InitialMode())
	if !ok {
		return nil, errs.Newf(errs.Config, "unknown initial mode: %q", cfg.InitialMode())
	}

	initial := node.ExplorerConfig{
		Filters: cfg.InitialFilters(),
		Sorters: cfg.InitialSorting(),
	}

	return &App{
		config:         cfg,
		version:        version,
		pwd:            pwd,
		lastFocus:      map[string]string{},
		selection:      selection.New(),
		history:        history.New(pwd),
		mode:           md,
		inputBuffer:    input.New(),
		explorerConfig: initial.Clone(),
		initialConfig:  initial,
	}, nil
}

// ResolvePath expands a leading ~ against HOME and makes the path absolute.
func ResolvePath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errs.Wrap(errs.Scan, err, "cannot resolve home directory")
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errs.WithPath(errs.Scan, err, "cannot resolve path", p)
	}
	return filepath.Clean(abs), nil
}

// Accessors. The returned values stay owned by the app.

func (a *App) Config() *config.Config             { return &a.config }
func (a *App) Version() string                    { return a.version }
func (a *App) Pwd() string                        { return a.pwd }
func (a *App) DirectoryBuffer() *node.DirectoryBuffer { return a.directoryBuffer }
func (a *App) Selection() *selection.Selection    { return a.selection }
func (a *App) History() *history.History          { return a.history }
func (a *App) Mode() *mode.Mode                   { return &a.mode }
func (a *App) InputBuffer() string                { return a.inputBuffer.String() }
func (a *App) ExplorerConfig() node.ExplorerConfig { return a.explorerConfig }
func (a *App) Logs() []Log                        { return a.logs }

// FocusedNode returns the node under focus, or nil.
func (a *App) FocusedNode() *node.Node {
	return a.directoryBuffer.FocusedNode()
}

// LastFocus returns the remembered focus for dir, empty when none.
func (a *App) LastFocus(dir string) string {
	return a.lastFocus[dir]
}

// SetDirectoryBuffer installs an explorer result. Results for a directory
// other than the current pwd are stale and dropped.
func (a *App) SetDirectoryBuffer(buf node.DirectoryBuffer) bool {
	if buf.Parent != a.pwd {
		return false
	}
	a.directoryBuffer = &buf
	a.recordFocus()
	return true
}

// Result is what quit-with-result prints: the selection when non-empty, else
// the focused path.
func (a *App) Result() []string {
	if a.selection.Len() > 0 {
		return a.selection.Paths()
	}
	if n := a.FocusedNode(); n != nil {
		return []string{n.AbsolutePath}
	}
	return nil
}

// DirectoryNodePaths lists the absolute paths of the current buffer, in
// display order.
func (a *App) DirectoryNodePaths() []string {
	if a.directoryBuffer == nil {
		return nil
	}
	paths := make([]string, len(a.directoryBuffer.Nodes))
	for i := range a.directoryBuffer.Nodes {
		paths[i] = a.directoryBuffer.Nodes[i].AbsolutePath
	}
	return paths
}

// LogLines renders the whole in-app log history.
func (a *App) LogLines() []string {
	lines := make([]string, len(a.logs))
	for i, l := range a.logs {
		lines[i] = l.String()
	}
	return lines
}

// GlobalHelpMenu renders every mode's help menu as one human-readable dump.
func (a *App) GlobalHelpMenu() string {
	var sb strings.Builder
	sb.WriteString("### Global Help Menu\n")
	appendMode := func(name string, md mode.Mode) {
		sb.WriteString("\n#### ")
		sb.WriteString(name)
		sb.WriteString("\n\n")
		for _, line := range md.HelpMenu() {
			if line.Paragraph != "" {
				sb.WriteString(line.Paragraph)
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(padRight(line.Key, 16))
			sb.WriteString(line.Help)
			sb.WriteString("\n")
		}
	}
	for _, name := range sortedModeNames(a.config.Modes.Builtin) {
		appendMode(name, a.config.Modes.Builtin[name])
	}
	for _, name := range sortedModeNames(a.config.Modes.Custom) {
		appendMode(name, a.config.Modes.Custom[name])
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

// appState is the serializable snapshot printed by the state dump.
type appState struct {
	Version         string                `yaml:"version"`
	Pwd             string                `yaml:"pwd"`
	Focus           string                `yaml:"focus,omitempty"`
	DirectoryBuffer *node.DirectoryBuffer `yaml:"directory_buffer,omitempty"`
	Selection       []string              `yaml:"selection,omitempty"`
	History         []string              `yaml:"history"`
	Mode            string                `yaml:"mode"`
	InputBuffer     string                `yaml:"input_buffer,omitempty"`
	ExplorerConfig  node.ExplorerConfig   `yaml:"explorer_config"`
	Logs            []string              `yaml:"logs,omitempty"`
}

// Serialize renders the app state as YAML.
func (a *App) Serialize() (string, error) {
	state := appState{
		Version:         a.version,
		Pwd:             a.pwd,
		DirectoryBuffer: a.directoryBuffer,
		Selection:       a.selection.Paths(),
		History:         a.history.Paths(),
		Mode:            a.mode.Name,
		InputBuffer:     a.inputBuffer.String(),
		ExplorerConfig:  a.explorerConfig,
		Logs:            a.LogLines(),
	}
	if n := a.FocusedNode(); n != nil {
		state.Focus = n.AbsolutePath
	}
	out, err := yaml.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func sortedModeNames(m map[string]mode.Mode) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
