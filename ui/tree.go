// Package ui renders tag-path hierarchies for console output.
package ui

import "strings"

// Tree hierarchy symbols using box drawing characters
const (
	TreeBranch     = "├── " // Branch connector (tee right + horizontal line + space)
	TreeLastBranch = "└── " // Last branch connector (bottom left corner + horizontal line + space)
	TreeContinue   = "│   " // Vertical line + 3 spaces (parent has more siblings)
	TreeIndent     = "    " // 4 spaces (parent was last, no vertical line needed)
)

// BuildTreePrefix generates a tree prefix based on depth, position, and
// the positions of the ancestors.
func BuildTreePrefix(depth int, isLast bool, parentIsLast []bool) string {
	if depth == 0 {
		return ""
	}

	var prefix string
	for i := 0; i < depth-1; i++ {
		if i < len(parentIsLast) && parentIsLast[i] {
			prefix += TreeIndent // No vertical line if parent was last
		} else {
			prefix += TreeContinue // Vertical line if parent has siblings below
		}
	}

	if isLast {
		prefix += TreeLastBranch
	} else {
		prefix += TreeBranch
	}
	return prefix
}

// PathDelimiter separates the tokens of a tag path.
const PathDelimiter = "@"

type treeNode struct {
	tag      string
	children []*treeNode
	index    map[string]*treeNode
}

func (n *treeNode) child(tag string) *treeNode {
	if c, ok := n.index[tag]; ok {
		return c
	}
	c := &treeNode{tag: tag, index: make(map[string]*treeNode)}
	n.index[tag] = c
	n.children = append(n.children, c)
	return c
}

// RenderTree renders a list of full tag paths as a rooted tree. Paths
// arrive in walk completion order (children before their parent); sibling
// order in the rendering follows first appearance, which matches
// declaration order in the test lists.
func RenderTree(paths []string) string {
	root := &treeNode{index: make(map[string]*treeNode)}
	for _, path := range paths {
		node := root
		for _, tag := range strings.Split(strings.TrimPrefix(path, PathDelimiter), PathDelimiter) {
			if tag == "" {
				continue
			}
			node = node.child(tag)
		}
	}

	var b strings.Builder
	for _, top := range root.children {
		renderNode(&b, top, 0, true, nil)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *treeNode, depth int, isLast bool, parentIsLast []bool) {
	b.WriteString(BuildTreePrefix(depth, isLast, parentIsLast))
	b.WriteString(n.tag)
	b.WriteByte('\n')

	// parentIsLast tracks ancestors from depth 1 down; the top level
	// draws no vertical lines.
	childAncestors := parentIsLast
	if depth > 0 {
		childAncestors = append(parentIsLast, isLast)
	}
	for i, c := range n.children {
		renderNode(b, c, depth+1, i == len(n.children)-1, childAncestors)
	}
}
