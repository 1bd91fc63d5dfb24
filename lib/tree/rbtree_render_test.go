package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRbtreeRender(t *testing.T) {
	tree := newTestTree[uint64, uint64]()
	require.Equal(t, "", tree.Render())

	require.NoError(t, tree.Insert(10, 1))
	require.NoError(t, tree.Insert(20, 1))
	require.NoError(t, tree.Insert(30, 1))

	out := tree.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "20B:Root", lines[0])
	require.Contains(t, lines[1], "├── 10R:L")
	require.Contains(t, lines[2], "└── 30R:R")
}

func TestRbtreeRender_SingleChildShape(t *testing.T) {
	tree := newTestTree[uint64, uint64]()
	require.NoError(t, tree.Insert(2, 1))
	require.NoError(t, tree.Insert(1, 1))

	out := tree.Render()
	require.Contains(t, out, "2B:Root")
	// A lone left child gets the corner pointer.
	require.Contains(t, out, "└── 1R:L")
	require.NotContains(t, out, "├──")
}
