package kv

import (
	"sync"

	"github.com/omnikit/xtree/lib/infra"
	"github.com/omnikit/xtree/lib/tree"
)

// treeMap guards a red-black tree with a mutex to present an
// exclusive-access store. The tree itself carries no locking; this
// wrapper is the one place where callers that want a store-shaped
// API get their mutual exclusion.
type treeMap[K infra.OrderedKey, V any] struct {
	lock sync.RWMutex
	tree tree.RBTree[K, V]
}

func (t *treeMap[K, V]) AddOrUpdate(key K, obj V) {
	t.lock.Lock()
	defer t.lock.Unlock()
	_ = t.tree.Insert(key, obj)
}

func (t *treeMap[K, V]) Delete(key K) (V, error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	node, err := t.tree.Remove(key)
	if err != nil {
		return *new(V), err
	}
	return node.Val(), nil
}

func (t *treeMap[K, V]) Get(key K) (item V, exists bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	item, err := t.tree.Get(key)
	return item, err == nil
}

func (t *treeMap[K, V]) First() (key K, item V, exists bool) {
	t.lock.RLock()
	defer t.lock.RUnlock()
	t.tree.Foreach(func(idx int64, color tree.RBColor, k K, v V) bool {
		key, item, exists = k, v, true
		return false
	})
	return key, item, exists
}

func (t *treeMap[K, V]) ListKeys(filters ...OrderedStoreKeyFilterFunc[K]) []K {
	realFilters := make([]OrderedStoreKeyFilterFunc[K], 0, len(filters))
	for _, filter := range filters {
		if filter != nil {
			realFilters = append(realFilters, filter)
		}
	}
	if len(realFilters) == 0 {
		realFilters = append(realFilters, defaultAllKeysFilter[K])
	}

	t.lock.RLock()
	defer t.lock.RUnlock()

	keys := make([]K, 0, t.tree.Len())
	t.tree.Foreach(func(idx int64, color tree.RBColor, key K, val V) bool {
		for _, filter := range realFilters {
			if filter(key) {
				keys = append(keys, key)
				break
			}
		}
		return true
	})
	return keys
}

func (t *treeMap[K, V]) ListValues(keys ...K) (items []V) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	if len(keys) == 0 {
		return t.tree.Values()
	}
	values := make([]V, 0, len(keys))
	for _, key := range keys {
		if val, err := t.tree.Get(key); err == nil {
			values = append(values, val)
		}
	}
	return values
}

func (t *treeMap[K, V]) Len() int64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.tree.Len()
}

func (t *treeMap[K, V]) Purge() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.tree.Release()
	return nil
}

// NewOrderedMap builds an OrderedStorer backed by a red-black tree
// with overwrite-on-duplicate insert semantics.
func NewOrderedMap[K infra.OrderedKey, V any]() OrderedStorer[K, V] {
	return &treeMap[K, V]{
		tree: tree.NewRBTree[K, V](tree.WithRBTreeReplaceOnDup[K, V]()),
	}
}
