package example

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-infra/ret/engine"
	"github.com/embedded-infra/ret/registry"
	"github.com/embedded-infra/ret/reporting"
	"github.com/embedded-infra/ret/types"
)

func buildExampleEngine(t *testing.T) (*engine.Engine, *reporting.Collector) {
	t.Helper()
	reg, err := registry.NewRegistry(registry.Config{})
	require.NoError(t, err)
	require.NoError(t, RegisterAll(reg))

	list, err := reg.Build()
	require.NoError(t, err)

	col := &reporting.Collector{}
	eng, err := engine.New(engine.Config{Root: list, Sink: col.Sink()})
	require.NoError(t, err)
	return eng, col
}

func TestExampleTreeFullRun(t *testing.T) {
	eng, col := buildExampleEngine(t)

	res := eng.Start(&types.RunConfig{Mode: types.ModeExecute, TargetTag: engine.RootTag})
	assert.Equal(t, types.ResultFail, res, "Group1Test1 fails by design of the example")

	rep, err := col.Report()
	require.NoError(t, err)
	require.True(t, rep.Done)

	byPath := map[string]types.Result{}
	for _, l := range rep.TestLines() {
		byPath[l.Text] = l.Result
	}
	assert.Equal(t, types.ResultPass, byPath["@ROOT@group_0_tests@Group0Test0"])
	assert.Equal(t, types.ResultPass, byPath["@ROOT@group_0_tests@Group0Test1"])
	assert.Equal(t, types.ResultPass, byPath["@ROOT@group_1_tests@Group1Test0"])
	assert.Equal(t, types.ResultFail, byPath["@ROOT@group_1_tests@Group1Test1"])
	assert.Equal(t, types.ResultPass, byPath["@ROOT@group_1_tests@group_2_tests@Group2Test0"])
	assert.Equal(t, types.ResultPass, byPath["@ROOT@group_1_tests@group_2_tests@Group2Test1"])
	assert.Equal(t, types.ResultFail, byPath["@ROOT@group_1_tests"])
	assert.Equal(t, types.ResultFail, byPath["@ROOT"])

	stats := eng.Stats()
	assert.Equal(t, 10, stats.Total, "6 leaves, 3 branches and the root")
	assert.Equal(t, 7, stats.Passed)
	assert.Equal(t, 3, stats.Failed, "the failing leaf plus its two enclosing lists")
}

func TestExampleTreeSearch(t *testing.T) {
	eng, col := buildExampleEngine(t)

	res := eng.Start(&types.RunConfig{Mode: types.ModeSearch, TargetTag: engine.RootTag})
	assert.Equal(t, types.ResultPass, res, "search never runs the failing assertion")

	rep, err := col.Report()
	require.NoError(t, err)
	assert.Contains(t, rep.SearchPaths(), "@ROOT@group_1_tests@group_2_tests@Group2Test1")
	assert.Len(t, rep.SearchPaths(), 10)
}

func TestExampleTreeSingleTarget(t *testing.T) {
	eng, col := buildExampleEngine(t)

	res := eng.Start(&types.RunConfig{Mode: types.ModeExecute, TargetTag: "Group1Test1"})
	assert.Equal(t, types.ResultFail, res)

	rep, err := col.Report()
	require.NoError(t, err)
	tls := rep.TestLines()
	require.Len(t, tls, 1)
	assert.Equal(t, "@ROOT@group_1_tests@Group1Test1", tls[0].Text)
}
