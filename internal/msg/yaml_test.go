package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"xplr/internal/node"
)

func TestUnmarshalYAML(t *testing.T) {
	t.Run("bare scalar tag", func(t *testing.T) {
		var m Message
		require.NoError(t, yaml.Unmarshal([]byte("FocusLast"), &m))
		assert.Equal(t, KindFocusLast, m.Kind)
	})

	t.Run("single-key mapping", func(t *testing.T) {
		var m Message
		require.NoError(t, yaml.Unmarshal([]byte("SwitchMode: search"), &m))
		assert.Equal(t, KindSwitchMode, m.Kind)
		assert.Equal(t, "search", m.Str)
	})

	t.Run("nested payload", func(t *testing.T) {
		var m Message
		src := "AddNodeSorter:\n  sorter: ByExtension\n  reverse: true\n"
		require.NoError(t, yaml.Unmarshal([]byte(src), &m))
		assert.Equal(t, node.ByExtension, m.Sorter.Sorter)
		assert.True(t, m.Sorter.Reverse)
	})

	t.Run("list of messages", func(t *testing.T) {
		var ms []Message
		src := "- ResetInputBuffer\n- SwitchMode: number\n"
		require.NoError(t, yaml.Unmarshal([]byte(src), &ms))
		require.Len(t, ms, 2)
		assert.Equal(t, KindResetInputBuffer, ms[0].Kind)
		assert.Equal(t, KindSwitchMode, ms[1].Kind)
	})

	t.Run("unknown tag", func(t *testing.T) {
		var m Message
		assert.Error(t, yaml.Unmarshal([]byte("Levitate"), &m))
	})

	t.Run("multiple tags", func(t *testing.T) {
		var m Message
		assert.Error(t, yaml.Unmarshal([]byte("FocusNext: 1\nFocusLast: 2\n"), &m))
	})

	t.Run("missing required payload", func(t *testing.T) {
		var m Message
		assert.Error(t, yaml.Unmarshal([]byte("SwitchMode"), &m))
	})
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	messages := []Message{
		Quit(),
		SwitchMode("action"),
		FocusByIndex(3),
		ToggleNodeFilter(node.FilterApplicable{Kind: node.RelativePathDoesNotStartWith, Input: "."}),
		Call("bash", "-c", "echo hi"),
	}
	for _, want := range messages {
		t.Run(string(want.Kind), func(t *testing.T) {
			data, err := yaml.Marshal(want)
			require.NoError(t, err)
			var got Message
			require.NoError(t, yaml.Unmarshal(data, &got))
			assert.Equal(t, want, got)
		})
	}
}
