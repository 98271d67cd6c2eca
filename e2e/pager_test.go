//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	tf.OpenHelp()
	require.True(t, tf.SeePlain("Storyline Help"), "Should show help in the pager")
	require.True(t, tf.SeePlain("Controls: Selectable list"))

	// q closes ov, then the shell redraws
	tf.Quit()
	require.True(t, tf.SeePlain("keys: canvas"), "Should return to the shell after closing the pager")
}

func TestDocsPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--story", "menus/context-menu"))
	require.True(t, tf.Ready())

	tf.OpenDocs()
	require.True(t, tf.SeePlain("menus/context-menu"))
	tf.Quit()
	require.True(t, tf.SeePlain("Document.txt"))
}
