// Package pipe owns the per-session IPC surface: a private session
// directory holding the inbound message pipe and the outbound view files
// that shell hooks and external tools read.
package pipe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"xplr/internal/errs"
	"xplr/internal/log"
)

// Session is the on-disk IPC surface. MsgIn is a FIFO read by the main
// loop; the *Out paths are plain files rewritten on every render so that
// readers never block, even while the main loop is suspended in a
// foreground hook.
type Session struct {
	Path string

	MsgIn             string
	SelectionOut      string
	ResultOut         string
	LogsOut           string
	DirectoryNodesOut string
	GlobalHelpMenuOut string
	FocusOut          string

	msgInReader *os.File
	partial     []byte
}

// NewSession creates the session directory (0700) under XDG_RUNTIME_DIR or
// the system temp directory, the msg_in FIFO (0600), and the empty view
// files.
func NewSession(pid int) (*Session, error) {
	root := os.Getenv("XDG_RUNTIME_DIR")
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, "xplr", "session", fmt.Sprintf("%d", pid))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errs.WithPath(errs.IPC, err, "cannot create session directory", dir)
	}

	s := &Session{
		Path:              dir,
		MsgIn:             filepath.Join(dir, "msg_in"),
		SelectionOut:      filepath.Join(dir, "selection_out"),
		ResultOut:         filepath.Join(dir, "result_out"),
		LogsOut:           filepath.Join(dir, "logs_out"),
		DirectoryNodesOut: filepath.Join(dir, "directory_nodes_out"),
		GlobalHelpMenuOut: filepath.Join(dir, "global_help_menu_out"),
		FocusOut:          filepath.Join(dir, "focus_out"),
	}

	if err := unix.Mkfifo(s.MsgIn, 0o600); err != nil && !os.IsExist(err) {
		os.RemoveAll(dir)
		return nil, errs.WithPath(errs.IPC, err, "cannot create message pipe", s.MsgIn)
	}
	// Opening read-nonblocking keeps the FIFO alive across writers and
	// never stalls the main loop.
	reader, err := os.OpenFile(s.MsgIn, os.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		os.RemoveAll(dir)
		return nil, errs.WithPath(errs.IPC, err, "cannot open message pipe", s.MsgIn)
	}
	s.msgInReader = reader

	for _, view := range s.viewPaths() {
		if err := os.WriteFile(view, nil, 0o600); err != nil {
			s.Close()
			return nil, errs.WithPath(errs.IPC, err, "cannot create view file", view)
		}
	}
	return s, nil
}

func (s *Session) viewPaths() []string {
	return []string{
		s.SelectionOut,
		s.ResultOut,
		s.LogsOut,
		s.DirectoryNodesOut,
		s.GlobalHelpMenuOut,
		s.FocusOut,
	}
}

// ReadMessages drains the complete lines currently buffered in the message
// pipe. A trailing fragment without a newline is kept for the next call.
func (s *Session) ReadMessages() []string {
	buf := make([]byte, 4096)
	for {
		n, err := s.msgInReader.Read(buf)
		if n > 0 {
			s.partial = append(s.partial, buf[:n]...)
		}
		if err != nil || n == 0 {
			break
		}
	}

	var lines []string
	for {
		i := bytes.IndexByte(s.partial, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(s.partial[:i]))
		s.partial = s.partial[i+1:]
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Views is one render's worth of outbound state.
type Views struct {
	Selection      []string
	Result         []string
	Logs           []string
	DirectoryNodes []string
	GlobalHelpMenu string
	FocusPath      string
}

// Publish rewrites every view file. Failures are logged and skipped; the
// next render retries.
func (s *Session) Publish(v Views) {
	s.writeView(s.SelectionOut, joinLines(v.Selection))
	s.writeView(s.ResultOut, joinLines(v.Result))
	s.writeView(s.LogsOut, joinLines(v.Logs))
	s.writeView(s.DirectoryNodesOut, joinLines(v.DirectoryNodes))
	s.writeView(s.GlobalHelpMenuOut, v.GlobalHelpMenu)
	s.writeView(s.FocusOut, v.FocusPath)
}

func (s *Session) writeView(path, content string) {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		log.Errorf("pipe: cannot write %s: %v", path, err)
	}
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

// Close tears down the reader and removes the session directory.
func (s *Session) Close() {
	if s.msgInReader != nil {
		s.msgInReader.Close()
		s.msgInReader = nil
	}
	if s.Path != "" {
		if err := os.RemoveAll(s.Path); err != nil {
			log.Errorf("pipe: cannot remove session directory: %v", err)
		}
	}
}
