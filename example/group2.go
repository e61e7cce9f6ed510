package example

import (
	"github.com/embedded-infra/ret/engine"
	"github.com/embedded-infra/ret/types"
)

var group2Nodes = []engine.Node{
	{Tag: "Group2Test0", Func: group2Test0},
	{Tag: "Group2Test1", Func: group2Test1},
}

func group2Test0(t *engine.T) types.Result {
	if t.ShouldSkip() {
		return types.ResultPass
	}

	t.Assert(true)

	return types.ResultPass
}

func group2Test1(t *engine.T) types.Result {
	if t.ShouldSkip() {
		return types.ResultPass
	}

	t.Assert(true)

	return types.ResultPass
}
