package hook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xplr/internal/app"
	"xplr/internal/config"
	"xplr/internal/msg"
	"xplr/internal/node"
	"xplr/internal/pipe"
	"xplr/internal/runtime"
)

func envLookup(env []string, key string) (string, bool) {
	for _, kv := range env {
		if v, ok := strings.CutPrefix(kv, key+"="); ok {
			return v, true
		}
	}
	return "", false
}

func newFixture(t *testing.T) (*app.App, *pipe.Session, runtime.Runtime) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("x"), 0o644))

	a, err := app.New(config.Default(runtime.Version), runtime.Version, dir)
	require.NoError(t, err)

	buf, err := node.Explore(dir, a.ExplorerConfig(), "")
	require.NoError(t, err)
	a.SetDirectoryBuffer(buf)

	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	s, err := pipe.NewSession(os.Getpid())
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return a, s, runtime.New(os.Getpid(), s.Path)
}

func TestEnvContract(t *testing.T) {
	a, s, rt := newFixture(t)
	env := Env(a, s, rt)

	want := map[string]string{
		"XPLR_PIPE_MSG_IN":               s.MsgIn,
		"XPLR_PIPE_SELECTION_OUT":        s.SelectionOut,
		"XPLR_PIPE_RESULT_OUT":           s.ResultOut,
		"XPLR_PIPE_LOGS_OUT":             s.LogsOut,
		"XPLR_PIPE_DIRECTORY_NODES_OUT":  s.DirectoryNodesOut,
		"XPLR_PIPE_GLOBAL_HELP_MENU_OUT": s.GlobalHelpMenuOut,
		"XPLR_PIPE_FOCUS_PATH":           s.FocusOut,
		"XPLR_FOCUS_PATH":                filepath.Join(a.Pwd(), "doc.txt"),
		"XPLR_FOCUS_INDEX":               "0",
		"XPLR_PWD":                       a.Pwd(),
		"XPLR_INPUT_BUFFER":              "",
		"XPLR_SESSION_PATH":              s.Path,
		"XPLR_APP_VERSION":               runtime.Version,
	}
	for key, value := range want {
		got, ok := envLookup(env, key)
		require.True(t, ok, key)
		assert.Equal(t, value, got, key)
	}

	// the parent environment rides along
	_, ok := envLookup(env, "XDG_RUNTIME_DIR")
	assert.True(t, ok)
}

func TestEnvWithoutFocus(t *testing.T) {
	a, s, rt := newFixture(t)
	a.SetDirectoryBuffer(node.DirectoryBuffer{Parent: a.Pwd()})

	env := Env(a, s, rt)
	focus, _ := envLookup(env, "XPLR_FOCUS_PATH")
	assert.Empty(t, focus)
	index, _ := envLookup(env, "XPLR_FOCUS_INDEX")
	assert.Equal(t, "0", index)
}

func TestCommand(t *testing.T) {
	a, s, rt := newFixture(t)
	cmd := Command(msg.CallArg{Command: "git", Args: []string{"status", "--short"}}, a, s, rt)

	assert.Equal(t, a.Pwd(), cmd.Dir)
	assert.Equal(t, []string{"status", "--short"}, cmd.Args[1:])
	_, ok := envLookup(cmd.Env, "XPLR_SESSION_PATH")
	assert.True(t, ok)
}

func TestRunSilent(t *testing.T) {
	a, s, rt := newFixture(t)

	require.NoError(t, RunSilent(msg.CallArg{Command: "true"}, a, s, rt))
	assert.Error(t, RunSilent(msg.CallArg{Command: "/no/such/binary"}, a, s, rt))
}
