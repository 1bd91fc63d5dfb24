package kv

import "github.com/omnikit/xtree/lib/infra"

type OrderedStoreKeyFilterFunc[K infra.OrderedKey] func(key K) bool

func defaultAllKeysFilter[K infra.OrderedKey](key K) bool {
	return true
}

// OrderedStorer is a store-shaped facade over a sorted container.
// Unlike a hash-backed store, ListKeys and ListValues report entries
// in key order and First is the smallest entry.
type OrderedStorer[K infra.OrderedKey, V any] interface {
	AddOrUpdate(key K, obj V)
	Delete(key K) (V, error)
	Get(key K) (item V, exists bool)
	First() (key K, item V, exists bool)
	ListKeys(filters ...OrderedStoreKeyFilterFunc[K]) []K
	ListValues(keys ...K) (items []V)
	Len() int64
	Purge() error
}
