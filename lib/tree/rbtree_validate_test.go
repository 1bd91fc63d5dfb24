package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// Builds the symmetric seven-node tree
//
//	8B{4B{2R,6R}, 12B{10R,14R}}
//
// whose shape and colors are pinned by the insert fixup.
func buildSevenNodeTree(t *testing.T) *rbTree[uint64, uint64] {
	t.Helper()
	tree := newTestTree[uint64, uint64]()
	for _, key := range []uint64{8, 4, 12, 2, 6, 10, 14} {
		require.NoError(t, tree.Insert(key, key))
	}
	require.NoError(t, tree.Validate())
	require.NoError(t, tree.ValidateAll())
	require.Equal(t, uint64(8), tree.root.key)
	require.Equal(t, uint64(4), tree.root.left.key)
	require.Equal(t, uint64(12), tree.root.right.key)
	return tree
}

func TestRbtreeValidate_RootViolation(t *testing.T) {
	tree := buildSevenNodeTree(t)

	tree.root.color = Red
	require.ErrorIs(t, tree.Validate(), ErrRBTreeRootViolation)
	require.ErrorIs(t, tree.ValidateAll(), ErrRBTreeRootViolation)

	tree.root.color = Black
	require.NoError(t, tree.Validate())
}

func TestRbtreeValidate_RedViolation(t *testing.T) {
	tree := buildSevenNodeTree(t)

	// 4R over 2R and 6R.
	tree.root.left.color = Red
	require.ErrorIs(t, tree.Validate(), ErrRBTreeRedViolation)
	require.ErrorIs(t, tree.ValidateAll(), ErrRBTreeRedViolation)
	require.ErrorIs(t, RedViolationValidate[uint64, uint64](tree), ErrRBTreeRedViolation)

	tree.root.left.color = Black
	require.NoError(t, tree.Validate())
}

func TestRbtreeValidate_BlackViolation(t *testing.T) {
	tree := buildSevenNodeTree(t)

	// Darkening one leaf unbalances the black depths under 4.
	tree.root.left.left.color = Black
	require.ErrorIs(t, tree.Validate(), ErrRBTreeBlackViolation)
	require.ErrorIs(t, tree.ValidateAll(), ErrRBTreeBlackViolation)
	require.ErrorIs(t, BlackViolationValidate[uint64, uint64](tree), ErrRBTreeBlackViolation)

	tree.root.left.left.color = Red
	require.NoError(t, tree.Validate())
}

func TestRbtreeValidate_ColorViolation(t *testing.T) {
	tree := buildSevenNodeTree(t)

	tree.root.left.right.color = RBColor(7)
	require.ErrorIs(t, tree.Validate(), ErrRBTreeColorViolation)
	require.ErrorIs(t, tree.ValidateAll(), ErrRBTreeColorViolation)

	tree.root.left.right.color = Red
	require.NoError(t, tree.Validate())
}

func TestRbtreeValidate_NilLeafViolation(t *testing.T) {
	tree := buildSevenNodeTree(t)

	tree.nilLeaf.color = Red
	require.ErrorIs(t, tree.Validate(), ErrRBTreeNilLeafViolation)
	require.ErrorIs(t, tree.ValidateAll(), ErrRBTreeNilLeafViolation)

	tree.nilLeaf.color = Black
	require.NoError(t, tree.Validate())
}

func TestRbtreeValidateAll_AggregatesViolations(t *testing.T) {
	tree := buildSevenNodeTree(t)

	tree.root.color = Red
	tree.root.left.color = Red

	err := tree.ValidateAll()
	require.ErrorIs(t, err, ErrRBTreeRootViolation)
	require.ErrorIs(t, err, ErrRBTreeRedViolation)

	// Validate stops at the first broken rule.
	first := tree.Validate()
	require.Error(t, first)
	require.False(t, errors.Is(first, ErrRBTreeRedViolation) && errors.Is(first, ErrRBTreeRootViolation))
}

func TestRbtreeValidate_EmptyTree(t *testing.T) {
	tree := newTestTree[uint64, uint64]()
	require.NoError(t, tree.Validate())
	require.NoError(t, tree.ValidateAll())
	require.Equal(t, 0, tree.BlackHeight())
}

func TestRbtreeBlackHeight(t *testing.T) {
	tree := buildSevenNodeTree(t)
	// Leftmost path below the root: 4B, 2R, sentinel.
	require.Equal(t, 2, tree.BlackHeight())

	single := newTestTree[uint64, uint64]()
	require.NoError(t, single.Insert(1, 1))
	require.Equal(t, 1, single.BlackHeight())
}
