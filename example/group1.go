package example

import (
	"github.com/embedded-infra/ret/engine"
	"github.com/embedded-infra/ret/registry"
	"github.com/embedded-infra/ret/types"
)

// Example of a test list that contains both leaf and branch nodes.
var group1 = registry.Group{
	Tag: "group_1_tests",
	Nodes: []engine.Node{
		{Tag: "Group1Test0", Func: group1Test0},
		{Tag: "Group1Test1", Func: group1Test1},
		{Tag: "group_2_tests", Func: engine.Branch(engine.NewList(group2Nodes...))},
	},
}

func group1Test0(t *engine.T) types.Result {
	if t.ShouldSkip() {
		return types.ResultPass
	}

	t.Assert(true)

	return types.ResultPass
}

// group1Test1 fails its assertion on purpose, demonstrating the abort
// path and the FAIL report line.
func group1Test1(t *engine.T) types.Result {
	if t.ShouldSkip() {
		return types.ResultPass
	}

	t.Assert(false)

	return types.ResultPass
}
