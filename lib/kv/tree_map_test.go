package kv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omnikit/xtree/lib/tree"
)

func TestOrderedMap_AddGetDelete(t *testing.T) {
	store := NewOrderedMap[uint64, string]()

	store.AddOrUpdate(3, "c")
	store.AddOrUpdate(1, "a")
	store.AddOrUpdate(2, "b")
	require.Equal(t, int64(3), store.Len())

	val, exists := store.Get(2)
	require.True(t, exists)
	require.Equal(t, "b", val)

	_, exists = store.Get(9)
	require.False(t, exists)

	// Overwrite semantics, not duplicate entries.
	store.AddOrUpdate(2, "bb")
	require.Equal(t, int64(3), store.Len())
	val, _ = store.Get(2)
	require.Equal(t, "bb", val)

	removed, err := store.Delete(2)
	require.NoError(t, err)
	require.Equal(t, "bb", removed)
	require.Equal(t, int64(2), store.Len())

	_, err = store.Delete(2)
	require.ErrorIs(t, err, tree.ErrRBTreeNotFound)
}

func TestOrderedMap_OrderedListing(t *testing.T) {
	store := NewOrderedMap[uint64, string]()
	for _, k := range []uint64{42, 7, 19, 3, 88} {
		store.AddOrUpdate(k, "v")
	}

	require.Equal(t, []uint64{3, 7, 19, 42, 88}, store.ListKeys())

	odd := store.ListKeys(func(key uint64) bool { return key%2 == 1 })
	require.Equal(t, []uint64{3, 7, 19}, odd)

	key, _, exists := store.First()
	require.True(t, exists)
	require.Equal(t, uint64(3), key)

	values := store.ListValues(3, 88, 100)
	require.Equal(t, []string{"v", "v"}, values)
	require.Len(t, store.ListValues(), 5)
}

func TestOrderedMap_Purge(t *testing.T) {
	store := NewOrderedMap[uint64, string]()
	for i := uint64(0); i < 100; i++ {
		store.AddOrUpdate(i, "v")
	}
	require.NoError(t, store.Purge())
	require.Equal(t, int64(0), store.Len())
	_, _, exists := store.First()
	require.False(t, exists)

	// Reusable after purge.
	store.AddOrUpdate(1, "a")
	require.Equal(t, int64(1), store.Len())
}
