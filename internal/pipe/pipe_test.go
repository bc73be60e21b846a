package pipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	s, err := NewSession(os.Getpid())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNewSessionLayout(t *testing.T) {
	s := newTestSession(t)

	info, err := os.Stat(s.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	info, err = os.Stat(s.MsgIn)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeNamedPipe)

	for _, view := range s.viewPaths() {
		content, err := os.ReadFile(view)
		require.NoError(t, err)
		assert.Empty(t, content)
	}
}

func TestReadMessages(t *testing.T) {
	s := newTestSession(t)

	w, err := os.OpenFile(s.MsgIn, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.WriteString("FocusNext\n  \nChangeDirectory: /tmp\nFocusLa")
	require.NoError(t, err)

	assert.Equal(t, []string{"FocusNext", "ChangeDirectory: /tmp"}, s.ReadMessages())

	// nothing new, fragment still pending
	assert.Empty(t, s.ReadMessages())

	_, err = w.WriteString("st\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"FocusLast"}, s.ReadMessages())
}

func TestReadMessagesWithoutWriter(t *testing.T) {
	s := newTestSession(t)
	assert.Empty(t, s.ReadMessages())
}

func TestPublish(t *testing.T) {
	s := newTestSession(t)

	s.Publish(Views{
		Selection:      []string{"/a", "/b"},
		Result:         []string{"/a"},
		DirectoryNodes: []string{"one.txt", "two.txt"},
		GlobalHelpMenu: "### default\n",
		FocusPath:      "/a",
	})

	read := func(path string) string {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		return string(content)
	}
	assert.Equal(t, "/a\n/b\n", read(s.SelectionOut))
	assert.Equal(t, "/a\n", read(s.ResultOut))
	assert.Equal(t, "one.txt\ntwo.txt\n", read(s.DirectoryNodesOut))
	assert.Equal(t, "### default\n", read(s.GlobalHelpMenuOut))
	assert.Equal(t, "/a\n", read(s.FocusOut))
	assert.Empty(t, read(s.LogsOut))

	// an emptied view is truncated on the next render
	s.Publish(Views{})
	assert.Empty(t, read(s.SelectionOut))
	assert.Empty(t, read(s.FocusOut))
}

func TestCloseRemovesSession(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	s, err := NewSession(os.Getpid())
	require.NoError(t, err)

	s.Close()
	_, statErr := os.Stat(s.Path)
	assert.True(t, os.IsNotExist(statErr))

	s.Close() // idempotent
}

func TestSessionPathIsPerPID(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", root)

	s, err := NewSession(1234)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, filepath.Join(root, "xplr", "session", "1234"), s.Path)
}
