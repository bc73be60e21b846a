// Package ui is the terminal frontend: a bubbletea model that feeds key
// events through the mode engine into the interpreter, applies the
// resulting effects, and renders the explorer state.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"xplr/internal/app"
	"xplr/internal/explorer"
	"xplr/internal/hook"
	"xplr/internal/log"
	"xplr/internal/mode"
	"xplr/internal/msg"
	"xplr/internal/node"
	"xplr/internal/pipe"
	"xplr/internal/runtime"
)

const (
	pipePollInterval = 100 * time.Millisecond
	helpPanelWidth   = 34
)

// Outcome is what the process does after the UI stops.
type Outcome struct {
	ExitCode int
	Output   []string
}

type scanResultMsg explorer.Result

type watcherTickMsg struct{}

type pipeTickMsg time.Time

type hookDoneMsg struct{ err error }

// Model drives the interactive session. The app state is owned here and
// mutated only inside Update.
type Model struct {
	app      *app.App
	session  *pipe.Session
	rt       runtime.Runtime
	explorer *explorer.Explorer
	watcher  *explorer.Watcher
	styler   *nodeStyler

	width    int
	height   int
	helpView viewport.Model
	helpFor  string
	scanning spinner.Model
	outcome  *Outcome
}

// New wires the model over an already-constructed state and session.
func New(a *app.App, s *pipe.Session, rt runtime.Runtime, ex *explorer.Explorer, w *explorer.Watcher) *Model {
	return &Model{
		app:      a,
		session:  s,
		rt:       rt,
		explorer: ex,
		watcher:  w,
		styler:   newNodeStyler(a.Config().NodeTypes),
		helpView: viewport.New(helpPanelWidth-2, 20),
		scanning: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyle)),
	}
}

// Outcome reports the exit code and output once the program has quit. It is
// nil while the session is still running.
func (m *Model) Outcome() *Outcome {
	return m.outcome
}

func (m *Model) Init() tea.Cmd {
	m.requestExplore()
	m.publishViews()
	return tea.Batch(m.listenScans(), m.listenWatcher(), m.pipeTick(), m.scanning.Tick)
}

func (m *Model) listenScans() tea.Cmd {
	return func() tea.Msg {
		return scanResultMsg(<-m.explorer.Results())
	}
}

func (m *Model) listenWatcher() tea.Cmd {
	return func() tea.Msg {
		<-m.watcher.Ticks()
		return watcherTickMsg{}
	}
}

func (m *Model) pipeTick() tea.Cmd {
	return tea.Tick(pipePollInterval, func(t time.Time) tea.Msg {
		return pipeTickMsg(t)
	})
}

func (m *Model) requestExplore() {
	pwd := m.app.Pwd()
	if err := m.watcher.SetRoot(pwd); err != nil {
		log.Warnf("ui: %v", err)
	}
	m.explorer.Explore(explorer.Request{
		Dir:       pwd,
		Config:    m.app.ExplorerConfig().Clone(),
		LastFocus: m.app.LastFocus(pwd),
	})
}

func (m *Model) publishViews() {
	focus := ""
	if n := m.app.FocusedNode(); n != nil {
		focus = n.AbsolutePath
	}
	m.session.Publish(pipe.Views{
		Selection:      m.app.Selection().Paths(),
		Result:         m.app.Result(),
		Logs:           m.app.LogLines(),
		DirectoryNodes: m.app.DirectoryNodePaths(),
		GlobalHelpMenu: m.app.GlobalHelpMenu(),
		FocusPath:      focus,
	})
}

func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := teaMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = ev.Width
		m.height = ev.Height
		m.helpView.Width = helpPanelWidth - 2
		m.helpView.Height = maxInt(ev.Height-4, 1)
		return m, nil

	case tea.KeyMsg:
		key := mode.ParseKey(ev.String())
		effects := m.app.HandleKey(key)
		cmd := m.applyEffects(effects)
		m.publishViews()
		return m, cmd

	case scanResultMsg:
		if ev.Err != nil {
			m.app.Handle(msg.LogError(ev.Err.Error()))
		} else {
			m.app.SetDirectoryBuffer(ev.Buffer)
		}
		m.publishViews()
		return m, m.listenScans()

	case watcherTickMsg:
		cmd := m.applyEffects(m.app.Handle(msg.Explore()))
		return m, tea.Batch(cmd, m.listenWatcher())

	case pipeTickMsg:
		var cmds []tea.Cmd
		for _, line := range m.session.ReadMessages() {
			parsed, err := msg.ParseLine(line)
			if err != nil {
				m.app.Handle(msg.LogError(err.Error()))
				continue
			}
			if cmd := m.applyEffects(m.app.Handle(parsed)); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		m.publishViews()
		cmds = append(cmds, m.pipeTick())
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.app.DirectoryBuffer() != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.scanning, cmd = m.scanning.Update(ev)
		return m, cmd

	case hookDoneMsg:
		if ev.err != nil {
			m.app.Handle(msg.LogError("hook failed: " + ev.err.Error()))
		}
		cmd := m.applyEffects(m.app.Handle(msg.Refresh()))
		m.publishViews()
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyEffects(effects []app.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch eff.Kind {
		case app.EffectExplore:
			m.requestExplore()

		case app.EffectRefresh:
			// Rendering happens after every Update.

		case app.EffectClearScreen:
			cmds = append(cmds, tea.ClearScreen)

		case app.EffectQuit:
			var out []string
			if n := m.app.FocusedNode(); n != nil {
				out = append(out, n.AbsolutePath)
			}
			m.outcome = &Outcome{Output: out}
			return tea.Quit

		case app.EffectPrintResultAndQuit:
			m.outcome = &Outcome{Output: m.app.Result()}
			return tea.Quit

		case app.EffectPrintAppStateAndQuit:
			state, err := m.app.Serialize()
			if err != nil {
				m.app.Handle(msg.LogError(err.Error()))
				continue
			}
			m.outcome = &Outcome{Output: []string{state}}
			return tea.Quit

		case app.EffectTerminate:
			m.outcome = &Outcome{ExitCode: 1}
			return tea.Quit

		case app.EffectRunForeground:
			cmd := hook.Command(eff.Call, m.app, m.session, m.rt)
			cmds = append(cmds, tea.ExecProcess(cmd, func(err error) tea.Msg {
				return hookDoneMsg{err: err}
			}))

		case app.EffectRunSilent:
			if err := hook.RunSilent(eff.Call, m.app, m.session, m.rt); err != nil {
				m.app.Handle(msg.LogError(err.Error()))
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	tableWidth := m.width
	showHelp := m.width >= 80
	if showHelp {
		tableWidth -= helpPanelWidth
	}
	tableHeight := maxInt(m.height-4, 1)

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(tableWidth),
		m.tableView(tableWidth, tableHeight),
		m.sortAndFilterView(tableWidth),
		m.statusView(tableWidth),
	)
	if !showHelp {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, m.helpPanelView())
}

func (m *Model) headerView(width int) string {
	left := headerStyle.Render(" xplr ")
	pwd := statusStyle.Render(" " + m.app.Pwd())
	return truncate(left+pwd, width)
}

func (m *Model) tableView(width, height int) string {
	buf := m.app.DirectoryBuffer()
	if buf == nil {
		return m.scanning.View() + statusStyle.Render("exploring...")
	}
	if len(buf.Nodes) == 0 {
		return statusStyle.Render("empty directory")
	}

	start := 0
	if buf.Focus >= height {
		start = buf.Focus - height + 1
	}
	end := minInt(start+height, len(buf.Nodes))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.rowView(buf.Nodes[i], i, i == buf.Focus, width))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m *Model) rowView(n node.Node, index int, focused bool, width int) string {
	cfg := m.styler.resolve(n)

	mark := "  "
	if m.app.Selection().Contains(n.AbsolutePath) {
		mark = selectedMarkStyle.Render("*") + " "
	}

	icon := cfg.Meta["icon"]
	if icon == "" {
		icon = " "
	}

	name := n.RelativePath
	if n.IsSymlink {
		if n.Symlink != nil {
			name += " -> " + n.Symlink.AbsolutePath
		} else {
			name += " -> !"
		}
	}

	size := ""
	if !n.IsDir {
		size = " " + humanize.IBytes(uint64(n.Size))
	}

	line := fmt.Sprintf("%s%s %s%s", mark, icon, name, size)
	if focused {
		return truncate(focusedStyle.Render(line), width)
	}
	return truncate(styleFor(cfg.Style).Render(line), width)
}

func (m *Model) sortAndFilterView(width int) string {
	cfg := m.app.ExplorerConfig()
	parts := make([]string, 0, len(cfg.Filters)+len(cfg.Sorters))
	for _, f := range cfg.Filters {
		parts = append(parts, fmt.Sprintf("%s(%s)", f.Kind, f.Input))
	}
	for _, s := range cfg.Sorters {
		direction := "+"
		if s.Reverse {
			direction = "-"
		}
		parts = append(parts, fmt.Sprintf("%s%s", direction, s.Sorter))
	}
	return truncate(statusStyle.Render(strings.Join(parts, " > ")), width)
}

func (m *Model) statusView(width int) string {
	md := m.app.Mode()
	left := headerStyle.Render(" " + md.Name + " ")

	if buffer := m.app.InputBuffer(); buffer != "" {
		return truncate(left+" "+m.app.Config().Prompt()+buffer, width)
	}

	logs := m.app.Logs()
	if len(logs) == 0 {
		return left
	}
	last := logs[len(logs)-1]
	line := last.String()
	switch last.Level {
	case app.LogError:
		line = errorStyle.Render(line)
	case app.LogSuccess:
		line = successStyle.Render(line)
	case app.LogWarning:
		line = warningStyle.Render(line)
	default:
		line = statusStyle.Render(line)
	}
	return truncate(left+" "+line, width)
}

func (m *Model) helpPanelView() string {
	md := m.app.Mode()
	if m.helpFor != md.Name {
		var sb strings.Builder
		for _, line := range md.HelpMenu() {
			if line.Paragraph != "" {
				sb.WriteString(line.Paragraph)
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(padRight(line.Key, 14))
			sb.WriteString(line.Help)
			sb.WriteString("\n")
		}
		m.helpView.SetContent(sb.String())
		m.helpView.GotoTop()
		m.helpFor = md.Name
	}
	title := headerStyle.Render(" help [" + md.Name + "] ")
	return helpStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.helpView.View()))
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
