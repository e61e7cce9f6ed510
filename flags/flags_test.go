package flags

import (
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// TestUniqueFlagNames guards against copy-paste collisions.
func TestUniqueFlagNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Flags {
		for _, name := range f.Names() {
			require.False(t, seen[name], "flag name %q used twice", name)
			seen[name] = true
		}
	}
}

func TestEnvVarsPrefixed(t *testing.T) {
	for _, f := range Flags {
		docFlag, ok := f.(cli.DocGenerationFlag)
		require.True(t, ok, "flag %v does not expose env vars", f.Names())
		envVars := docFlag.GetEnvVars()
		require.NotEmpty(t, envVars, "flag %v has no env var", f.Names())
		for _, v := range envVars {
			assert.True(t, strings.HasPrefix(v, EnvVarPrefix+"_"),
				"env var %q missing %s_ prefix", v, EnvVarPrefix)
		}
	}
}

func TestCheckRequiredRunInterval(t *testing.T) {
	ctxWithInterval := func(d time.Duration) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.Duration(RunInterval.Name, d, "")
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	assert.NoError(t, CheckRequired(ctxWithInterval(0)))
	assert.NoError(t, CheckRequired(ctxWithInterval(time.Minute)))
	assert.Error(t, CheckRequired(ctxWithInterval(500*time.Millisecond)))
	assert.Error(t, CheckRequired(ctxWithInterval(-time.Second)))
}
