package tree

import (
	"fmt"
	"strings"

	"github.com/omnikit/xtree/lib/infra"
)

// Render draws the tree as an ASCII diagram for test fixtures and
// manual inspection. The format is not stable; do not parse it.
//
//	8B:Root
//	├── 4R:L
//	└── 12R:R
func (tree *rbTree[K, V]) Render() string {
	sb := strings.Builder{}
	renderNode(&sb, "", "", tree.root)
	return sb.String()
}

func renderNode[K infra.OrderedKey, V any](sb *strings.Builder, padding, pointer string, node *rbNode[K, V]) {
	if node.isNilLeaf() {
		return
	}

	colorTag := "B"
	if node.isRed() {
		colorTag = "R"
	}
	dirTag := "Root"
	switch node.Direction() {
	case Left:
		dirTag = "L"
	case Right:
		dirTag = "R"
	default:
	}

	sb.WriteString(padding)
	sb.WriteString(pointer)
	sb.WriteString(fmt.Sprintf("%v%s:%s\n", node.key, colorTag, dirTag))

	filler := "│   "
	switch pointer {
	case "└── ":
		filler = "    "
	case "":
		filler = ""
	}
	childPadding := padding + filler

	pointerForLeft := "└── "
	if !node.right.isNilLeaf() {
		pointerForLeft = "├── "
	}
	renderNode(sb, childPadding, pointerForLeft, node.left)
	renderNode(sb, childPadding, "└── ", node.right)
}
