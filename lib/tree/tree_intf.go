package tree

import (
	"errors"

	"github.com/omnikit/xtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

//go:generate stringer -type=TraverseOrder
type TraverseOrder uint8

const (
	InOrder TraverseOrder = iota
	PreOrder
	PostOrder
)

var (
	// ErrRBTreeIsEmpty specializes the not-found case: Remove and
	// RemoveMin return it instead of ErrRBTreeNotFound when the tree
	// holds no elements at all.
	ErrRBTreeIsEmpty      = errors.New("[rbtree] there is no element")
	ErrRBTreeNotFound     = errors.New("[rbtree] key not found")
	ErrRBTreeDuplicateKey = errors.New("[rbtree] insert if-not-present violated by an equal key")

	// Validator verdicts. Each one maps to a single red-black
	// property (p1-p5 in the rbtree.go reference block); a correct
	// implementation never produces them outside of tests.
	ErrRBTreeColorViolation   = errors.New("[rbtree] color violation, node is neither red nor black (p1)")
	ErrRBTreeNilLeafViolation = errors.New("[rbtree] nil leaf violation, sentinel is not black (p2)")
	ErrRBTreeRedViolation     = errors.New("[rbtree] red violation, red node with a red child (p3)")
	ErrRBTreeBlackViolation   = errors.New("[rbtree] black violation, unequal black depths (p4)")
	ErrRBTreeRootViolation    = errors.New("[rbtree] root violation, root is not black (p5)")
)

// RBNode is the read-only view of a tree node. The sentinel nil
// leaf is never exposed through it; child and parent accessors
// return a nil interface instead.
type RBNode[K infra.OrderedKey, V any] interface {
	Key() K
	Val() V
	Color() RBColor
	Left() RBNode[K, V]
	Right() RBNode[K, V]
	Parent() RBNode[K, V]
}

type RBTree[K infra.OrderedKey, V any] interface {
	Len() int64
	Root() RBNode[K, V]
	Insert(key K, val V, ifNotPresent ...bool) error
	Remove(key K) (RBNode[K, V], error)
	RemoveMin() (RBNode[K, V], error)
	Get(key K) (V, error)
	Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V]
	Foreach(action func(idx int64, color RBColor, key K, val V) bool)
	Traverse(order TraverseOrder, action func(idx int64, color RBColor, key K, val V) bool)
	Keys() []K
	Values() []V
	Validate() error
	ValidateAll() error
	BlackHeight() int
	Render() string
	Release()
}
