package tree

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/omnikit/xtree/lib/infra"
	"github.com/omnikit/xtree/lib/xlog"
)

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// p1. Every node is either red or black.
// p2. The nil leaf sentinel is black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every simple path from a node to any of its descendant
//   nil leaves goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// A single shared sentinel stands in for every missing child and for
// the parent of the root, so rotation and fixup code never tests for
// absent siblings or absent parents.

type rbNode[K infra.OrderedKey, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
	hasKV  bool
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left.isNilLeaf() {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right.isNilLeaf() {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent.isNilLeaf() {
		return nil
	}
	return node.parent
}

// The sentinel carries no key-value pair, so hasKV doubles as the
// nil leaf discriminator.
func (node *rbNode[K, V]) isNilLeaf() bool {
	return node == nil || !node.hasKV
}

func (node *rbNode[K, V]) isRed() bool {
	return !node.isNilLeaf() && node.color == Red
}

func (node *rbNode[K, V]) isBlack() bool {
	return node.isNilLeaf() || node.color == Black
}

func (node *rbNode[K, V]) isRoot() bool {
	return !node.isNilLeaf() && node.parent.isNilLeaf()
}

func (node *rbNode[K, V]) isLeaf() bool {
	return !node.isNilLeaf() && node.left.isNilLeaf() && node.right.isNilLeaf()
}

// Direction is recomputed on demand by comparing against the parent's
// child links. A cached side flag desynchronizes too easily across
// rotation and transplant, so none is stored.
func (node *rbNode[K, V]) Direction() RBDirection {
	if node.isNilLeaf() {
		// impossible run to here
		panic("[rbtree] nil leaf node without direction")
	}
	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) sibling() *rbNode[K, V] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) uncle() *rbNode[K, V] {
	return node.parent.sibling()
}

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for !aux.isNilLeaf() && !aux.left.isNilLeaf() {
		aux = aux.left
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for !aux.isNilLeaf() && !aux.right.isNilLeaf() {
		aux = aux.right
	}
	return aux
}

type rbTree[K infra.OrderedKey, V any] struct {
	root           *rbNode[K, V]
	nilLeaf        *rbNode[K, V]
	tracer         xlog.XLogger
	count          int64
	isDesc         bool
	isRmBorrowPred bool
	isReplaceOnDup bool
}

func (tree *rbTree[K, V]) keyCompare(k1, k2 K) int64 {
	if k1 == k2 {
		return 0
	} else if k1 < k2 {
		if !tree.isDesc {
			return -1
		}
		return 1
	} else {
		if !tree.isDesc {
			return 1
		}
		return -1
	}
}

func (tree *rbTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	if tree.root.isNilLeaf() {
		return nil
	}
	return tree.root
}

func (tree *rbTree[K, V]) newNode(key K, val V, color RBColor) *rbNode[K, V] {
	return &rbNode[K, V]{
		key:    key,
		val:    val,
		color:  color,
		left:   tree.nilLeaf,
		right:  tree.nilLeaf,
		parent: tree.nilLeaf,
		hasKV:  true,
	}
}

/*
	 |                         |
	 X                         Y
	/ \     leftRotate(X)     / \
   A   Y    ============>    X   C
	  / \                   / \
	 B   C                 A   B

Purely structural. Colors are untouched; the calling fixup recolors
explicitly afterwards.
*/
func (tree *rbTree[K, V]) leftRotate(x *rbNode[K, V]) {
	if x.isNilLeaf() || x.right.isNilLeaf() {
		// Deliberate no-op guard. The fixup paths never reach here
		// with a missing pivot child.
		return
	}
	tree.tracer.Debug("left rotate", zap.Any("pivot", x.key))

	y := x.right
	x.right = y.left
	if !y.left.isNilLeaf() {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent.isNilLeaf():
		tree.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

/*
	   |                          |
	   Y                          X
	  / \     rightRotate(Y)     / \
	 X   C    =============>    A   Y
	/ \                            / \
   A   B                          B   C
*/
func (tree *rbTree[K, V]) rightRotate(y *rbNode[K, V]) {
	if y.isNilLeaf() || y.left.isNilLeaf() {
		// Deliberate no-op guard, mirror of leftRotate.
		return
	}
	tree.tracer.Debug("right rotate", zap.Any("pivot", y.key))

	x := y.left
	y.left = x.right
	if !x.right.isNilLeaf() {
		x.right.parent = y
	}
	x.parent = y.parent
	switch {
	case y.parent.isNilLeaf():
		tree.root = x
	case y == y.parent.right:
		y.parent.right = x
	default:
		y.parent.left = x
	}
	x.right = y
	y.parent = x
}

// Insert walks a plain BST descent and attaches the new key as a red
// node, then rebalances. An equal key descends to the right of the
// existing one, so duplicates are kept unless the tree was built with
// WithRBTreeReplaceOnDup (overwrite) or the call passes ifNotPresent
// (reject).
func (tree *rbTree[K, V]) Insert(key K, val V, ifNotPresent ...bool) error {
	if tree.root.isNilLeaf() {
		tree.root = tree.newNode(key, val, Black)
		atomic.AddInt64(&tree.count, 1)
		return nil
	}

	y := tree.nilLeaf
	for x := tree.root; !x.isNilLeaf(); {
		y = x
		res := tree.keyCompare(key, x.key)
		if res == 0 {
			if len(ifNotPresent) > 0 && ifNotPresent[0] {
				return ErrRBTreeDuplicateKey
			}
			if tree.isReplaceOnDup {
				x.val = val
				return nil
			}
			// Equal keys land in the right subtree of the equal node.
			x = x.right
		} else if res < 0 {
			x = x.left
		} else {
			x = x.right
		}
	}

	if y.isNilLeaf() {
		// impossible run to here
		panic("[rbtree] insert lost the attachment parent")
	}

	z := tree.newNode(key, val, Red)
	z.parent = y
	if tree.keyCompare(key, y.key) < 0 {
		y.left = z
	} else {
		y.right = z
	}
	atomic.AddInt64(&tree.count, 1)
	tree.insertFixup(z)
	return nil
}

/*
insertFixup restores p3/p5 after attaching the red node z.

if1: Uncle is red. Pull the grandparent's black down to both of its
children and push the red up; recheck from the grandparent.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<Z>             <Z>

if2: Uncle is black and z is the inner grandchild (zig-zag). Rotate the
parent so the shape reduces to if3.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <Z> [U]
	  \                 /
	  <Z>             <P>

if3: Uncle is black and z is the outer grandchild. Recolor parent and
grandparent, rotate the grandparent the opposite way; done.

	    [G]                 [P]
	    / \    recolor      / \
	  <P> [U]  + rotate   <Z> <G>
	  /        ========>        \
	<Z>                         [U]

The loop exits as soon as the parent is black; forcing the root black
at the end restores p5 unconditionally and is idempotent.
*/
func (tree *rbTree[K, V]) insertFixup(z *rbNode[K, V]) {
	for z.parent.isRed() {
		// A red parent is never the root, so the grandparent is a
		// real node here.
		if z.parent == z.grandpa().left {
			uncle := z.grandpa().right
			if uncle.isRed() {
				/* if1 */
				z.parent.color = Black
				uncle.color = Black
				z.grandpa().color = Red
				z = z.grandpa()
			} else {
				if z == z.parent.right {
					/* if2 */
					z = z.parent
					tree.leftRotate(z)
				}
				/* if3 */
				z.parent.color = Black
				z.grandpa().color = Red
				tree.rightRotate(z.grandpa())
			}
		} else {
			uncle := z.grandpa().left
			if uncle.isRed() {
				/* if1 */
				z.parent.color = Black
				uncle.color = Black
				z.grandpa().color = Red
				z = z.grandpa()
			} else {
				if z == z.parent.left {
					/* if2 */
					z = z.parent
					tree.rightRotate(z)
				}
				/* if3 */
				z.parent.color = Black
				z.grandpa().color = Red
				tree.leftRotate(z.grandpa())
			}
		}
	}
	tree.root.color = Black
}

// transplant replaces the subtree rooted at u with the subtree rooted
// at v in u's parent. v keeps its own children. v may be the sentinel;
// its parent backlink is still written because removeFixup climbs
// through it when the spliced-in node is a nil leaf.
func (tree *rbTree[K, V]) transplant(u, v *rbNode[K, V]) {
	switch {
	case u.parent.isNilLeaf():
		tree.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	v.parent = u.parent
}

// removeNode unlinks z from the tree and returns a detached copy of
// the removed pair.
//
// A node with two real children is never physically unlinked. Its
// key and value are overwritten with the in-order successor's (or
// predecessor's, under WithRBTreeRemoveBorrowPred), and the borrowed
// node, which has at most one real child, is spliced out instead.
// Removing a black node leaves a black-height deficit at the splice
// point, which removeFixup repairs.
func (tree *rbTree[K, V]) removeNode(z *rbNode[K, V]) (*rbNode[K, V], error) {
	res := &rbNode[K, V]{key: z.key, val: z.val, color: z.color, hasKV: true}

	y := z
	if !z.left.isNilLeaf() && !z.right.isNilLeaf() {
		if tree.isRmBorrowPred {
			y = z.left.maximum()
		} else {
			y = z.right.minimum()
		}
		if y.isNilLeaf() {
			// impossible run to here
			panic("[rbtree] borrowed node resolved to the sentinel")
		}
		z.key, z.val = y.key, y.val
	}

	yOriginalColor := y.color
	x := y.right
	if !y.left.isNilLeaf() {
		x = y.left
	}
	tree.transplant(y, x)
	if yOriginalColor == Black {
		tree.removeFixup(x)
	}

	// Detach the spliced-out node so it never resurrects stale links.
	y.parent, y.left, y.right = nil, nil, nil
	y.hasKV = false
	// The sentinel may have been written to as a splice point; restore
	// its resting state.
	tree.nilLeaf.parent = nil
	tree.nilLeaf.color = Black

	return res, nil
}

/*
removeFixup repairs the black-height deficit carried by x after a
black node was spliced out. x is doubly-black until the deficit is
absorbed; the sibling w always exists because the sentinel stands in
for every missing child.

rf1: w is red, so the parent and both nephews are black. Rotate the
parent toward x and swap its color with w; x's new sibling is black,
reducing to rf2-rf4.

	  [P]                   [W]
	  / \    l-rotate(P)    / \
	[X] <W>  + recolor    <P> [D]
	    / \  ========>    / \
	  [C] [D]           [X] [C]

rf2: w and both of w's children are black. Paint w red, which balances
the two subtrees locally, and push the deficit up to the parent.

rf3: w is black, the far nephew is black and the near one is red.
Rotate w away from x and swap colors so the far nephew turns red,
reducing to rf4.

rf4: w is black and the far nephew is red. Rotate the parent toward x,
give w the parent's color, paint parent and far nephew black. The
deficit is absorbed; terminate.
*/
func (tree *rbTree[K, V]) removeFixup(x *rbNode[K, V]) {
	for x != tree.root && x.isBlack() {
		if x == x.parent.left {
			w := x.parent.right
			if w.isNilLeaf() {
				// impossible run to here
				panic("[rbtree] fixup sibling is the sentinel, broken sentinel maintenance")
			}
			if w.isRed() {
				/* rf1 */
				w.color = Black
				x.parent.color = Red
				tree.leftRotate(x.parent)
				w = x.parent.right
			}
			if w.left.isBlack() && w.right.isBlack() {
				/* rf2 */
				w.color = Red
				x = x.parent
			} else {
				if w.right.isBlack() {
					/* rf3 */
					w.left.color = Black
					w.color = Red
					tree.rightRotate(w)
					w = x.parent.right
				}
				/* rf4 */
				w.color = x.parent.color
				x.parent.color = Black
				w.right.color = Black
				tree.leftRotate(x.parent)
				x = tree.root
			}
		} else {
			w := x.parent.left
			if w.isNilLeaf() {
				// impossible run to here
				panic("[rbtree] fixup sibling is the sentinel, broken sentinel maintenance")
			}
			if w.isRed() {
				/* rf1 */
				w.color = Black
				x.parent.color = Red
				tree.rightRotate(x.parent)
				w = x.parent.left
			}
			if w.right.isBlack() && w.left.isBlack() {
				/* rf2 */
				w.color = Red
				x = x.parent
			} else {
				if w.left.isBlack() {
					/* rf3 */
					w.right.color = Black
					w.color = Red
					tree.leftRotate(w)
					w = x.parent.left
				}
				/* rf4 */
				w.color = x.parent.color
				x.parent.color = Black
				w.left.color = Black
				tree.rightRotate(x.parent)
				x = tree.root
			}
		}
	}
	// A red x absorbs the deficit for free; painting unconditionally
	// also keeps the root black.
	x.color = Black
}

func (tree *rbTree[K, V]) findNode(key K) *rbNode[K, V] {
	for aux := tree.root; !aux.isNilLeaf(); {
		res := tree.keyCompare(key, aux.key)
		if res == 0 {
			return aux
		} else if res < 0 {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return nil
}

func (tree *rbTree[K, V]) Get(key K) (V, error) {
	if z := tree.findNode(key); z != nil {
		return z.val, nil
	}
	return *new(V), ErrRBTreeNotFound
}

func (tree *rbTree[K, V]) Remove(key K) (RBNode[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, ErrRBTreeIsEmpty
	}
	z := tree.findNode(key)
	if z == nil {
		return nil, ErrRBTreeNotFound
	}
	defer func() {
		atomic.AddInt64(&tree.count, -1)
	}()
	return tree.removeNode(z)
}

func (tree *rbTree[K, V]) RemoveMin() (RBNode[K, V], error) {
	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, ErrRBTreeIsEmpty
	}
	_min := tree.root.minimum()
	if _min.isNilLeaf() {
		return nil, ErrRBTreeNotFound
	}
	defer func() {
		atomic.AddInt64(&tree.count, -1)
	}()
	return tree.removeNode(_min)
}

func (tree *rbTree[K, V]) Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V] {
	if x == nil {
		return nil
	}

	for aux := x; aux != nil; {
		res := fn(aux)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.Right()
		} else {
			aux = aux.Left()
		}
	}
	return nil
}

// Release tears the tree down iteratively and restores the
// single-sentinel empty state. Links are severed node by node so a
// leaked external node reference cannot retain the whole graph.
func (tree *rbTree[K, V]) Release() {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	tree.root = tree.nilLeaf
	if size <= 0 || aux.isNilLeaf() {
		atomic.StoreInt64(&tree.count, 0)
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; !aux.isNilLeaf(); aux = aux.left {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		aux = stack[size-1]
		r := aux.right
		aux.left, aux.right, aux.parent = nil, nil, nil
		aux.hasKV = false
		atomic.AddInt64(&tree.count, -1)
		stack = stack[:size-1]
		if !r.isNilLeaf() {
			for aux = r; !aux.isNilLeaf(); aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
	atomic.StoreInt64(&tree.count, 0)
}

type RBTreeOpt[K infra.OrderedKey, V any] func(*rbTree[K, V])

// WithRBTreeDesc flips the comparator so the tree sorts descending.
func WithRBTreeDesc[K infra.OrderedKey, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

// WithRBTreeRemoveBorrowPred borrows the in-order predecessor instead
// of the successor when removing a node with two children.
func WithRBTreeRemoveBorrowPred[K infra.OrderedKey, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isRmBorrowPred = true
	}
}

// WithRBTreeReplaceOnDup makes Insert overwrite the value of an equal
// key instead of keeping both entries.
func WithRBTreeReplaceOnDup[K infra.OrderedKey, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isReplaceOnDup = true
	}
}

// WithRBTreeTraceLogger routes rotation tracing to the given logger
// at debug level. Tracing is off (nop logger) by default.
func WithRBTreeTraceLogger[K infra.OrderedKey, V any](logger xlog.XLogger) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		if logger != nil {
			tree.tracer = logger
		}
	}
}

func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	nilLeaf := &rbNode[K, V]{color: Black}
	tree := &rbTree[K, V]{
		root:    nilLeaf,
		nilLeaf: nilLeaf,
		tracer:  xlog.NewNopLogger(),
		count:   0,
	}

	for _, o := range opts {
		o(tree)
	}
	return tree
}
