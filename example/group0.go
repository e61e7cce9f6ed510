package example

import (
	"github.com/embedded-infra/ret/engine"
	"github.com/embedded-infra/ret/registry"
	"github.com/embedded-infra/ret/types"
)

var group0 = registry.Group{
	Tag: "group_0_tests",
	Nodes: []engine.Node{
		{Tag: "Group0Test0", Func: group0Test0},
		{Tag: "Group0Test1", Func: group0Test1},
	},
}

func group0Test0(t *engine.T) types.Result {
	// Every leaf function checks the skip guard at the start of its body.
	if t.ShouldSkip() {
		return types.ResultPass
	}

	t.Assert(true)

	return types.ResultPass
}

func group0Test1(t *engine.T) types.Result {
	if t.ShouldSkip() {
		return types.ResultPass
	}

	t.Assert(true)

	return types.ResultPass
}
