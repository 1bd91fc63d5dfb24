package tree

import (
	"go.uber.org/multierr"

	"github.com/omnikit/xtree/lib/infra"
)

// rbtree rule validation utilities. The checks are O(n), side-effect
// free and diagnostic only; a correct tree never trips them.

// validateSubtree re-derives the black height of node's subtree and
// reports the first violated property on the way. The sentinel
// contributes height 1 at every leaf.
func validateSubtree[K infra.OrderedKey, V any](node *rbNode[K, V]) (blackHeight int, err error) {
	if node.isNilLeaf() {
		if node != nil && node.color != Black {
			return 0, ErrRBTreeNilLeafViolation
		}
		return 1, nil
	}
	if node.color != Red && node.color != Black {
		return 0, ErrRBTreeColorViolation
	}
	if node.isRed() && (node.left.isRed() || node.right.isRed()) {
		return 0, ErrRBTreeRedViolation
	}

	lh, err := validateSubtree(node.left)
	if err != nil {
		return 0, err
	}
	rh, err := validateSubtree(node.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, ErrRBTreeBlackViolation
	}

	if node.color == Black {
		lh++
	}
	return lh, nil
}

// Validate reports the first violated red-black property, or nil.
func (tree *rbTree[K, V]) Validate() error {
	if tree.nilLeaf.color != Black {
		return ErrRBTreeNilLeafViolation
	}
	if tree.root.isNilLeaf() {
		return nil
	}
	if tree.root.color != Black {
		return ErrRBTreeRootViolation
	}
	_, err := validateSubtree(tree.root)
	return err
}

// ValidateAll runs every property check independently and aggregates
// all violations instead of stopping at the first one.
func (tree *rbTree[K, V]) ValidateAll() error {
	var err error
	if tree.nilLeaf.color != Black {
		err = multierr.Append(err, ErrRBTreeNilLeafViolation)
	}
	if !tree.root.isNilLeaf() && tree.root.color != Black {
		err = multierr.Append(err, ErrRBTreeRootViolation)
	}
	err = multierr.Append(err, colorViolationWalk(tree.root))
	err = multierr.Append(err, RedViolationValidate[K, V](tree))
	err = multierr.Append(err, BlackViolationValidate[K, V](tree))
	return err
}

func colorViolationWalk[K infra.OrderedKey, V any](node *rbNode[K, V]) error {
	if node.isNilLeaf() {
		return nil
	}
	if node.color != Red && node.color != Black {
		return ErrRBTreeColorViolation
	}
	if err := colorViolationWalk(node.left); err != nil {
		return err
	}
	return colorViolationWalk(node.right)
}

// BlackHeight re-derives the root's black height by counting black
// nodes down the leftmost path, the start node excluded and the
// sentinel included. Meaningful only while Validate passes.
func (tree *rbTree[K, V]) BlackHeight() int {
	if tree.root.isNilLeaf() {
		return 0
	}
	height := 0
	for aux := tree.root.left; ; aux = aux.left {
		if aux.isBlack() {
			height++
		}
		if aux.isNilLeaf() {
			break
		}
	}
	return height
}

// Interface-level helpers for the iterative cross-check validators
// below. The RBNode view hides the sentinel behind nil interfaces.

func isRedN[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

func isBlackN[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node == nil || node.Color() == Black
}

func isRootN[K infra.OrderedKey, V any](node RBNode[K, V]) bool {
	return node != nil && node.Parent() == nil
}

func blackDepthTo[K infra.OrderedKey, V any](target, to RBNode[K, V]) int {
	depth := 0
	for aux := target; aux != nil && aux != to; aux = aux.Parent() {
		if isBlackN[K, V](aux) {
			depth++
		}
	}
	return depth
}

// RedViolationValidate checks p3 alone with an iterative inorder
// walk over the read-only node view.
func RedViolationValidate[K infra.OrderedKey, V any](tree RBTree[K, V]) error {
	size := tree.Len()
	var aux RBNode[K, V] = tree.Root()
	if size <= 0 || aux == nil {
		return nil
	}

	stack := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; isRedN[K, V](aux) {
			if isRedN[K, V](aux.Parent()) || isRedN[K, V](aux.Left()) || isRedN[K, V](aux.Right()) {
				return ErrRBTreeRedViolation
			}
		}

		stack = stack[:size-1]
		if aux.Right() != nil {
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}
	return nil
}

// bfsLeaves loads every node that borders the sentinel on at least
// one side. All black-depth comparisons run against them.
func bfsLeaves[K infra.OrderedKey, V any](tree RBTree[K, V]) []RBNode[K, V] {
	size := tree.Len()
	var aux RBNode[K, V] = tree.Root()
	if size <= 0 || aux == nil {
		return nil
	}

	leaves := make([]RBNode[K, V], 0, size>>1+1)
	queue := make([]RBNode[K, V], 0, size>>1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := aux.Left(), aux.Right()
		if l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

// BlackViolationValidate checks p4 alone by comparing the black
// depth from every sentinel-bordering node up to the root.
func BlackViolationValidate[K infra.OrderedKey, V any](tree RBTree[K, V]) error {
	leaves := bfsLeaves[K, V](tree)
	if leaves == nil {
		return nil
	}

	blackDepth := blackDepthTo[K, V](leaves[0], tree.Root())
	for i := 1; i < len(leaves); i++ {
		if blackDepthTo[K, V](leaves[i], tree.Root()) != blackDepth {
			return ErrRBTreeBlackViolation
		}
	}
	return nil
}
