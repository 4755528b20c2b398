package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_AllBindingsSet(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	bindings := map[string][]string{
		"quit":       km.Quit.Keys(),
		"comment":    km.Comment.Keys(),
		"screenshot": km.Screenshot.Keys(),
		"highlight":  km.Highlight.Keys(),
		"sidebar":    km.Sidebar.Keys(),
		"escape":     km.Escape.Keys(),
		"up":         km.Up.Keys(),
		"down":       km.Down.Keys(),
		"select":     km.Select.Keys(),
		"delete":     km.Delete.Keys(),
	}
	for name, keys := range bindings {
		assert.NotEmpty(t, keys, "binding %s has no keys", name)
	}
}

func TestDefaultKeyMap_ToolShortcutsDistinct(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]bool{}
	for _, keys := range [][]string{km.Comment.Keys(), km.Screenshot.Keys(), km.Highlight.Keys()} {
		for _, k := range keys {
			assert.False(t, seen[k], "key %q bound to two tools", k)
			seen[k] = true
		}
	}
}
