package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedded-infra/ret/types"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Line
	}{
		{
			name: "info line",
			in:   "I,   3,    ,      ,test path not found",
			want: Line{Kind: KindInfo, Seq: 3, Text: "test path not found"},
		},
		{
			name: "search line",
			in:   "S,  12,    ,      ,@ROOT@group_0_tests@Group0Test0",
			want: Line{Kind: KindSearch, Seq: 12, Text: "@ROOT@group_0_tests@Group0Test0"},
		},
		{
			name: "test line",
			in:   "T,   0,PASS,    42,@ROOT@A",
			want: Line{Kind: KindTest, Seq: 0, Result: types.ResultPass, Elapsed: 42, Text: "@ROOT@A"},
		},
		{
			name: "free text field may contain separators",
			in:   "I,   1,    ,      ,Assert at line 10 of leaf.go == 0, really",
			want: Line{Kind: KindInfo, Seq: 1, Text: "Assert at line 10 of leaf.go == 0, really"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too few fields", "T,   0,PASS"},
		{"unknown kind", "X,   0,    ,      ,msg"},
		{"bad sequence", "I,  xy,    ,      ,msg"},
		{"unknown result keyword", "T,   0,WAT,     1,@ROOT"},
		{"bad elapsed", "T,   0,PASS,  abc,@ROOT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestParseReportRoundTrip(t *testing.T) {
	e, c := newTestEmitter(true)
	e.Info("starting")
	e.Test(types.ResultPass, 3, "@ROOT@A")
	e.Test(types.ResultFail, 9, "@ROOT@B")
	e.Done()

	rep, err := c.Report()
	require.NoError(t, err)
	assert.True(t, rep.Done)
	require.Len(t, rep.Lines, 3)

	tls := rep.TestLines()
	require.Len(t, tls, 2)
	assert.Equal(t, types.ResultPass, tls[0].Result)
	assert.Equal(t, "@ROOT@A", tls[0].Text)
	assert.Equal(t, types.ResultFail, tls[1].Result)
	assert.Equal(t, uint64(9), tls[1].Elapsed)
}

func TestParseReportSearchPaths(t *testing.T) {
	raw := "S,   0,    ,      ,@ROOT\nS,   1,    ,      ,@ROOT@A\n\nDONE"
	rep, err := ParseReport(raw)
	require.NoError(t, err)
	assert.True(t, rep.Done)
	assert.Equal(t, []string{"@ROOT", "@ROOT@A"}, rep.SearchPaths())
}

func TestParseReportWithoutDone(t *testing.T) {
	rep, err := ParseReport("I,   0,    ,      ,test path not found\n")
	require.NoError(t, err)
	assert.False(t, rep.Done)
	require.Len(t, rep.Lines, 1)
	assert.Equal(t, "test path not found", rep.Lines[0].Text)
}

func TestCollectorReset(t *testing.T) {
	c := &Collector{}
	c.Sink()([]byte("I,   0,    ,      ,x\n"))
	c.Reset()
	assert.Empty(t, c.String())
}
