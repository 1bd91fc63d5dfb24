package tree

import "sync/atomic"

// Foreach visits every pair in key order. The walk is iterative, DFS
// with an explicit left-spine stack, and stops early when the action
// returns false.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	tree.Traverse(InOrder, action)
}

func (tree *rbTree[K, V]) Traverse(order TraverseOrder, action func(idx int64, color RBColor, key K, val V) bool) {
	switch order {
	case InOrder:
		tree.inorderWalk(action)
	case PreOrder:
		tree.preorderWalk(action)
	case PostOrder:
		idx := int64(0)
		tree.postorderWalk(tree.root, &idx, action)
	default:
		// impossible run to here
		panic("[rbtree] unknown traverse order")
	}
}

func (tree *rbTree[K, V]) inorderWalk(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	if size <= 0 || aux.isNilLeaf() {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if !aux.right.isNilLeaf() {
			for aux = aux.right; !aux.isNilLeaf(); aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

func (tree *rbTree[K, V]) preorderWalk(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&tree.count)
	if size <= 0 || tree.root.isNilLeaf() {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, tree.root)

	idx := int64(0)
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		// Right pushed first so the left subtree pops first.
		if !aux.right.isNilLeaf() {
			stack = append(stack, aux.right)
		}
		if !aux.left.isNilLeaf() {
			stack = append(stack, aux.left)
		}
	}
}

func (tree *rbTree[K, V]) postorderWalk(node *rbNode[K, V], idx *int64, action func(idx int64, color RBColor, key K, val V) bool) bool {
	if node.isNilLeaf() {
		return true
	}
	if !tree.postorderWalk(node.left, idx, action) {
		return false
	}
	if !tree.postorderWalk(node.right, idx, action) {
		return false
	}
	if !action(*idx, node.color, node.key, node.val) {
		return false
	}
	*idx++
	return true
}

func (tree *rbTree[K, V]) Keys() []K {
	keys := make([]K, 0, atomic.LoadInt64(&tree.count))
	tree.Foreach(func(idx int64, color RBColor, key K, val V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (tree *rbTree[K, V]) Values() []V {
	values := make([]V, 0, atomic.LoadInt64(&tree.count))
	tree.Foreach(func(idx int64, color RBColor, key K, val V) bool {
		values = append(values, val)
		return true
	})
	return values
}
