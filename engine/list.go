package engine

import "github.com/embedded-infra/ret/types"

// Func is a test function. Leaf functions check t.ShouldSkip() at the
// top of their body and run user assertions; branch functions call
// t.Run on a sub-list instead.
type Func func(t *T) types.Result

// Node pairs a test function with its author-supplied tag.
type Node struct {
	Tag  string
	Func Func
}

// List is an ordered, fixed sequence of test nodes. Execution and report
// order follow insertion order; no node is visited twice within one list.
type List struct {
	Nodes []Node
}

// NewList builds a list from nodes in declaration order.
func NewList(nodes ...Node) List {
	return List{Nodes: nodes}
}

// Branch wraps a sub-list as a node function, the way branch test
// functions in user code recurse into their own list.
func Branch(list List) Func {
	return func(t *T) types.Result {
		return t.Run(list)
	}
}
