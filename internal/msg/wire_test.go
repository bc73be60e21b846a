package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xplr/internal/node"
)

func TestParseLine(t *testing.T) {
	t.Run("bare tag", func(t *testing.T) {
		m, err := ParseLine("FocusNext")
		require.NoError(t, err)
		assert.Equal(t, KindFocusNext, m.Kind)
	})

	t.Run("string payload", func(t *testing.T) {
		m, err := ParseLine("ChangeDirectory: /tmp/some dir")
		require.NoError(t, err)
		assert.Equal(t, KindChangeDirectory, m.Kind)
		assert.Equal(t, "/tmp/some dir", m.Str)
	})

	t.Run("int payload", func(t *testing.T) {
		m, err := ParseLine("FocusByIndex: 42")
		require.NoError(t, err)
		assert.Equal(t, 42, m.Index)

		_, err = ParseLine("FocusByIndex: five")
		assert.Error(t, err)
	})

	t.Run("filter payload", func(t *testing.T) {
		m, err := ParseLine("AddNodeFilter: {kind: RelativePathDoesNotStartWith, input: .}")
		require.NoError(t, err)
		assert.Equal(t, node.RelativePathDoesNotStartWith, m.Filter.Kind)
		assert.Equal(t, ".", m.Filter.Input)
	})

	t.Run("sorter payload", func(t *testing.T) {
		m, err := ParseLine("AddNodeSorter: {sorter: BySize, reverse: true}")
		require.NoError(t, err)
		assert.Equal(t, node.BySize, m.Sorter.Sorter)
		assert.True(t, m.Sorter.Reverse)
	})

	t.Run("call payload", func(t *testing.T) {
		m, err := ParseLine(`Call: {command: git, args: [status, "--short"]}`)
		require.NoError(t, err)
		assert.Equal(t, "git", m.Call.Command)
		assert.Equal(t, []string{"status", "--short"}, m.Call.Args)
	})

	t.Run("unknown tag is refused", func(t *testing.T) {
		_, err := ParseLine("FlyToTheMoon")
		assert.Error(t, err)
	})

	t.Run("unexpected payload is refused", func(t *testing.T) {
		_, err := ParseLine("FocusNext: 3")
		assert.Error(t, err)
	})

	t.Run("invalid filter kind is refused", func(t *testing.T) {
		_, err := ParseLine("AddNodeFilterFromInput: RelativePathMatchesRegex")
		assert.Error(t, err)
	})

	t.Run("empty line is an error", func(t *testing.T) {
		_, err := ParseLine("   ")
		assert.Error(t, err)
	})
}

func TestWireRoundTrip(t *testing.T) {
	messages := []Message{
		FocusFirst(),
		FocusByIndex(7),
		ChangeDirectory("/etc"),
		SwitchMode("default"),
		AddNodeFilter(node.FilterApplicable{Kind: node.IRelativePathDoesContain, Input: "a b"}),
		AddNodeFilterFromInput(node.IRelativePathDoesContain),
		AddNodeSorter(node.SorterApplicable{Sorter: node.ByIRelativePath, Reverse: true}),
		RemoveNodeSorter(node.BySize),
		LogInfo("hello world"),
		Call("mv", "a file", "b"),
		BashExec("echo hi"),
	}
	for _, want := range messages {
		t.Run(string(want.Kind), func(t *testing.T) {
			got, err := ParseLine(want.String())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.Error(t, Message{Kind: KindCall}.Validate())
	assert.NoError(t, Call("ls").Validate())
	assert.Error(t, Message{Kind: KindAddNodeSorter}.Validate())
}

func TestIsReadOnly(t *testing.T) {
	assert.True(t, FocusNext().IsReadOnly())
	assert.True(t, ChangeDirectory("/").IsReadOnly())
	assert.False(t, Call("rm").IsReadOnly())
	assert.False(t, BashExec("true").IsReadOnly())
	assert.False(t, BashExecSilently("true").IsReadOnly())
}
