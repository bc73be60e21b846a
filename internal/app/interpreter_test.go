package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xplr/internal/config"
	"xplr/internal/msg"
	"xplr/internal/node"
)

const testVersion = "0.5.5"

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"alpha.txt", "beta.txt", "gamma.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	a, err := New(config.Default(testVersion), testVersion, dir)
	require.NoError(t, err)
	loadBuffer(t, a)
	return a, dir
}

// loadBuffer scans the app's pwd synchronously and installs the result, the
// way the main loop does when an explorer result arrives.
func loadBuffer(t *testing.T, a *App) {
	t.Helper()
	buf, err := node.Explore(a.Pwd(), a.ExplorerConfig(), a.LastFocus(a.Pwd()))
	require.NoError(t, err)
	require.True(t, a.SetDirectoryBuffer(buf))
}

func focusedName(t *testing.T, a *App) string {
	t.Helper()
	n := a.FocusedNode()
	require.NotNil(t, n)
	return n.RelativePath
}

func TestNewRejectsNonDirectories(t *testing.T) {
	cfg := config.Default(testVersion)

	_, err := New(cfg, testVersion, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = New(cfg, testVersion, file)
	assert.Error(t, err)
}

func TestFocusWrapping(t *testing.T) {
	a, _ := newTestApp(t)
	// sorted: sub (dir first), alpha, beta, gamma
	assert.Equal(t, "sub", focusedName(t, a))

	a.Handle(msg.FocusPrevious())
	assert.Equal(t, "gamma.txt", focusedName(t, a))

	a.Handle(msg.FocusNext())
	assert.Equal(t, "sub", focusedName(t, a))

	a.Handle(msg.FocusLast())
	assert.Equal(t, "gamma.txt", focusedName(t, a))
	a.Handle(msg.FocusFirst())
	assert.Equal(t, "sub", focusedName(t, a))
}

func TestFocusByIndexClamps(t *testing.T) {
	a, _ := newTestApp(t)
	a.Handle(msg.FocusByIndex(999))
	assert.Equal(t, "gamma.txt", focusedName(t, a))
	a.Handle(msg.FocusByIndex(-3))
	assert.Equal(t, "sub", focusedName(t, a))
}

func TestRelativeFocusFromInputSaturates(t *testing.T) {
	a, _ := newTestApp(t)
	a.Handle(msg.SetInputBuffer("100"))
	a.Handle(msg.FocusNextByRelativeIndexFromInput())
	assert.Equal(t, "gamma.txt", focusedName(t, a))

	a.Handle(msg.SetInputBuffer("nonsense"))
	a.Handle(msg.FocusPreviousByRelativeIndexFromInput())
	assert.Equal(t, "gamma.txt", focusedName(t, a))
	require.NotEmpty(t, a.Logs())
	assert.Equal(t, LogError, a.Logs()[len(a.Logs())-1].Level)
}

func TestFocusPath(t *testing.T) {
	a, dir := newTestApp(t)
	a.Handle(msg.FocusPath(filepath.Join(dir, "beta.txt")))
	assert.Equal(t, "beta.txt", focusedName(t, a))

	a.Handle(msg.FocusPath("/somewhere/else"))
	assert.Equal(t, LogError, a.Logs()[len(a.Logs())-1].Level)
}

func TestChangeDirectory(t *testing.T) {
	a, dir := newTestApp(t)
	sub := filepath.Join(dir, "sub")

	effects := a.Handle(msg.ChangeDirectory(sub))
	require.Len(t, effects, 1)
	assert.Equal(t, EffectExplore, effects[0].Kind)
	assert.Equal(t, sub, a.Pwd())
	assert.Equal(t, 2, a.History().Len())

	t.Run("same directory is a no-op", func(t *testing.T) {
		effects := a.Handle(msg.ChangeDirectory(sub))
		assert.Empty(t, effects)
		assert.Equal(t, 2, a.History().Len())
	})

	t.Run("missing directory logs and stays", func(t *testing.T) {
		effects := a.Handle(msg.ChangeDirectory(filepath.Join(dir, "void")))
		assert.Empty(t, effects)
		assert.Equal(t, sub, a.Pwd())
		assert.Equal(t, LogError, a.Logs()[len(a.Logs())-1].Level)
	})
}

func TestEnterAndBack(t *testing.T) {
	a, dir := newTestApp(t)

	t.Run("enter on a file is a no-op", func(t *testing.T) {
		a.Handle(msg.FocusByFileName("alpha.txt"))
		assert.Empty(t, a.Handle(msg.Enter()))
		assert.Equal(t, dir, a.Pwd())
	})

	t.Run("enter on a directory descends", func(t *testing.T) {
		a.Handle(msg.FocusByFileName("sub"))
		effects := a.Handle(msg.Enter())
		require.Len(t, effects, 1)
		assert.Equal(t, filepath.Join(dir, "sub"), a.Pwd())
	})

	t.Run("back ascends and remembers the departed child", func(t *testing.T) {
		effects := a.Handle(msg.Back())
		require.Len(t, effects, 1)
		assert.Equal(t, dir, a.Pwd())
		assert.Equal(t, "sub", a.LastFocus(dir))

		loadBuffer(t, a)
		assert.Equal(t, "sub", focusedName(t, a))
	})
}

func TestHistoryNavigation(t *testing.T) {
	a, dir := newTestApp(t)
	sub := filepath.Join(dir, "sub")
	a.Handle(msg.ChangeDirectory(sub))

	effects := a.Handle(msg.LastVisitedPath())
	require.Len(t, effects, 1)
	assert.Equal(t, dir, a.Pwd())

	// at the oldest entry nothing happens
	assert.Empty(t, a.Handle(msg.LastVisitedPath()))

	effects = a.Handle(msg.NextVisitedPath())
	require.Len(t, effects, 1)
	assert.Equal(t, sub, a.Pwd())

	assert.Empty(t, a.Handle(msg.NextVisitedPath()))
}

func TestFollowSymlink(t *testing.T) {
	dir := t.TempDir()
	targetDir := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(targetDir, 0o755))
	targetFile := filepath.Join(targetDir, "doc.txt")
	require.NoError(t, os.WriteFile(targetFile, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(targetDir, filepath.Join(dir, "dirlink")))
	require.NoError(t, os.Symlink(targetFile, filepath.Join(dir, "filelink")))

	a, err := New(config.Default(testVersion), testVersion, dir)
	require.NoError(t, err)
	loadBuffer(t, a)

	t.Run("directory target", func(t *testing.T) {
		a.Handle(msg.FocusByFileName("dirlink"))
		effects := a.Handle(msg.FollowSymlink())
		require.Len(t, effects, 1)
		assert.Equal(t, targetDir, a.Pwd())
	})

	t.Run("file target lands on the file", func(t *testing.T) {
		a.Handle(msg.ChangeDirectory(dir))
		loadBuffer(t, a)
		a.Handle(msg.FocusByFileName("filelink"))
		effects := a.Handle(msg.FollowSymlink())
		require.Len(t, effects, 1)
		assert.Equal(t, targetDir, a.Pwd())
		loadBuffer(t, a)
		assert.Equal(t, "doc.txt", focusedName(t, a))
	})

	t.Run("non-symlink logs an error", func(t *testing.T) {
		a.Handle(msg.FocusByFileName("doc.txt"))
		assert.Empty(t, a.Handle(msg.FollowSymlink()))
		assert.Equal(t, LogError, a.Logs()[len(a.Logs())-1].Level)
	})
}

func TestSelection(t *testing.T) {
	a, dir := newTestApp(t)

	a.Handle(msg.FocusByFileName("alpha.txt"))
	a.Handle(msg.ToggleSelection())
	assert.True(t, a.Selection().Contains(filepath.Join(dir, "alpha.txt")))

	a.Handle(msg.ToggleSelection())
	assert.Zero(t, a.Selection().Len())

	a.Handle(msg.ToggleSelectAll())
	assert.Equal(t, 4, a.Selection().Len())
	a.Handle(msg.ToggleSelectAll())
	assert.Zero(t, a.Selection().Len())

	a.Handle(msg.ToggleSelection())
	a.Handle(msg.ClearSelection())
	assert.Zero(t, a.Selection().Len())
}

func TestResultPrefersSelection(t *testing.T) {
	a, dir := newTestApp(t)
	assert.Equal(t, []string{filepath.Join(dir, "sub")}, a.Result())

	a.Handle(msg.FocusByFileName("beta.txt"))
	a.Handle(msg.ToggleSelection())
	a.Handle(msg.FocusByFileName("alpha.txt"))
	a.Handle(msg.ToggleSelection())
	assert.Equal(t, []string{
		filepath.Join(dir, "beta.txt"),
		filepath.Join(dir, "alpha.txt"),
	}, a.Result())
}

func TestFilterPipeline(t *testing.T) {
	a, _ := newTestApp(t)

	effects := a.Handle(msg.AddNodeFilter(node.FilterApplicable{
		Kind:  node.IRelativePathDoesContain,
		Input: "alpha",
	}))
	require.Len(t, effects, 1)
	assert.Equal(t, EffectExplore, effects[0].Kind)
	loadBuffer(t, a)
	assert.Equal(t, 1, a.DirectoryBuffer().Total)

	a.Handle(msg.RemoveLastNodeFilter())
	loadBuffer(t, a)
	assert.Equal(t, 4, a.DirectoryBuffer().Total)

	t.Run("from input", func(t *testing.T) {
		a.Handle(msg.SetInputBuffer("beta"))
		a.Handle(msg.AddNodeFilterFromInput(node.IRelativePathDoesContain))
		loadBuffer(t, a)
		assert.Equal(t, 1, a.DirectoryBuffer().Total)

		a.Handle(msg.RemoveNodeFilterFromInput(node.IRelativePathDoesContain))
		loadBuffer(t, a)
		assert.Equal(t, 4, a.DirectoryBuffer().Total)
	})

	t.Run("reset restores the initial set", func(t *testing.T) {
		a.Handle(msg.ClearNodeFilters())
		a.Handle(msg.ResetNodeFilters())
		assert.Equal(t, []node.FilterApplicable{config.HiddenFilter()}, a.ExplorerConfig().Filters)
	})
}

func TestSorterPipeline(t *testing.T) {
	a, _ := newTestApp(t)

	a.Handle(msg.AddNodeSorter(node.SorterApplicable{Sorter: node.BySize, Reverse: false}))
	sorters := a.ExplorerConfig().Sorters
	require.Len(t, sorters, 3)

	t.Run("same kind replaces in place", func(t *testing.T) {
		a.Handle(msg.AddNodeSorter(node.SorterApplicable{Sorter: node.BySize, Reverse: true}))
		sorters := a.ExplorerConfig().Sorters
		require.Len(t, sorters, 3)
		assert.Equal(t, node.SorterApplicable{Sorter: node.BySize, Reverse: true}, sorters[2])
	})

	t.Run("reverse flips every direction", func(t *testing.T) {
		before := a.ExplorerConfig().Sorters
		a.Handle(msg.ReverseNodeSorters())
		after := a.ExplorerConfig().Sorters
		for i := range before {
			assert.Equal(t, !before[i].Reverse, after[i].Reverse)
		}
	})

	t.Run("remove and reset", func(t *testing.T) {
		a.Handle(msg.RemoveNodeSorter(node.BySize))
		assert.Len(t, a.ExplorerConfig().Sorters, 2)

		a.Handle(msg.ClearNodeSorters())
		assert.Empty(t, a.ExplorerConfig().Sorters)

		a.Handle(msg.ResetNodeSorters())
		assert.Len(t, a.ExplorerConfig().Sorters, 2)
	})
}

func TestSwitchMode(t *testing.T) {
	a, _ := newTestApp(t)
	a.Handle(msg.SwitchMode("sort"))
	assert.Equal(t, "sort", a.Mode().Name)

	a.Handle(msg.SwitchMode("no_such_mode"))
	assert.Equal(t, "sort", a.Mode().Name)
	assert.Equal(t, LogWarning, a.Logs()[len(a.Logs())-1].Level)
}

func TestKeymapFlows(t *testing.T) {
	a, dir := newTestApp(t)

	t.Run("number jump", func(t *testing.T) {
		// default mode: pressing a digit buffers it and enters number mode
		a.HandleKey("2")
		assert.Equal(t, "number", a.Mode().Name)
		assert.Equal(t, "2", a.InputBuffer())

		a.HandleKey("enter")
		assert.Equal(t, "beta.txt", focusedName(t, a))
		assert.Equal(t, "default", a.Mode().Name)
	})

	t.Run("search narrows and focuses", func(t *testing.T) {
		a.HandleKey("/")
		assert.Equal(t, "search", a.Mode().Name)

		a.HandleKey("g")
		assert.Equal(t, "g", a.InputBuffer())
		loadBuffer(t, a)
		assert.Equal(t, 1, a.DirectoryBuffer().Total)
		assert.Equal(t, "gamma.txt", focusedName(t, a))

		a.HandleKey("enter")
		assert.Equal(t, "default", a.Mode().Name)
		assert.Empty(t, a.InputBuffer())
		assert.Equal(t, []node.FilterApplicable{config.HiddenFilter()}, a.ExplorerConfig().Filters)
	})

	t.Run("quit keys emit effects", func(t *testing.T) {
		effects := a.HandleKey("q")
		require.Len(t, effects, 1)
		assert.Equal(t, EffectQuit, effects[0].Kind)

		effects = a.HandleKey("ctrl-c")
		require.Len(t, effects, 1)
		assert.Equal(t, EffectTerminate, effects[0].Kind)
	})

	t.Run("G goes to bottom", func(t *testing.T) {
		a.HandleKey("G")
		assert.Equal(t, "gamma.txt", focusedName(t, a))
		_ = dir
	})
}

func TestBatchCap(t *testing.T) {
	a, _ := newTestApp(t)
	messages := make([]msg.Message, 2000)
	for i := range messages {
		messages[i] = msg.FocusNext()
	}
	a.HandleBatch(messages)
	// the cap leaves the overflow queued for the next tick
	assert.Equal(t, "sub", focusedName(t, a)) // 1024 % 4 == 0
	a.HandleBatch(nil)
	assert.Equal(t, "sub", focusedName(t, a)) // remaining 976 % 4 == 0
}

func TestStaleBufferDiscarded(t *testing.T) {
	a, _ := newTestApp(t)
	stale := node.NewDirectoryBuffer("/somewhere/else", nil, 0)
	assert.False(t, a.SetDirectoryBuffer(stale))
	assert.NotNil(t, a.DirectoryBuffer())
	assert.NotEqual(t, "/somewhere/else", a.DirectoryBuffer().Parent)
}

func TestLastFocusRestoredAcrossDirectories(t *testing.T) {
	a, dir := newTestApp(t)
	sub := filepath.Join(dir, "sub")

	a.Handle(msg.FocusByFileName("beta.txt"))
	a.Handle(msg.ChangeDirectory(sub))
	loadBuffer(t, a)

	a.Handle(msg.ChangeDirectory(dir))
	loadBuffer(t, a)
	assert.Equal(t, "beta.txt", focusedName(t, a))
}

func TestSerialize(t *testing.T) {
	a, dir := newTestApp(t)
	a.Handle(msg.FocusByFileName("alpha.txt"))
	a.Handle(msg.ToggleSelection())
	a.Handle(msg.LogSuccess("done"))

	state, err := a.Serialize()
	require.NoError(t, err)
	assert.Contains(t, state, "version: 0.5.5")
	assert.Contains(t, state, "pwd: "+dir)
	assert.Contains(t, state, "alpha.txt")
	assert.Contains(t, state, "mode: default")
	assert.Contains(t, state, "SUCCESS")
}

func TestGlobalHelpMenuListsEveryMode(t *testing.T) {
	a, _ := newTestApp(t)
	menu := a.GlobalHelpMenu()
	for _, name := range []string{"default", "number", "go_to", "search", "sort", "filter"} {
		assert.Contains(t, menu, fmt.Sprintf("#### %s", name))
	}
}

func TestInputBufferMessages(t *testing.T) {
	a, _ := newTestApp(t)
	a.Handle(msg.SetInputBuffer("hello world"))
	a.Handle(msg.RemoveInputBufferLastWord())
	assert.Equal(t, "hello ", a.InputBuffer())

	a.Handle(msg.BufferInput("there"))
	a.Handle(msg.RemoveInputBufferLastCharacter())
	assert.Equal(t, "hello ther", a.InputBuffer())

	a.Handle(msg.ResetInputBuffer())
	assert.Empty(t, a.InputBuffer())
}
