package flags

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "RET"

// PrefixEnvVar adds the service prefix to an environment variable name.
func PrefixEnvVar(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	Mode = &cli.StringFlag{
		Name:    "mode",
		Value:   "execute",
		EnvVars: PrefixEnvVar("MODE"),
		Usage:   "Run mode: 'execute' runs test bodies, 'search' lists tag paths without running anything",
	}
	Target = &cli.StringFlag{
		Name:    "target",
		Value:   "ROOT",
		EnvVars: PrefixEnvVar("TARGET"),
		Usage:   "Target tag selecting the subtree to run (eg. 'group_1_tests', '@ROOT@group_1_tests@Group1Test1')",
	}
	RunPlan = &cli.StringFlag{
		Name:    "plan",
		Value:   "",
		EnvVars: PrefixEnvVar("PLAN"),
		Usage:   "Path to run plan file (eg. 'plan.yaml'). Omit to run every registered group.",
	}
	BufferAll = &cli.BoolFlag{
		Name:    "buffer-all",
		Value:   false,
		EnvVars: PrefixEnvVar("BUFFER_ALL"),
		Usage:   "Buffer the whole report and transmit it once at run completion instead of line by line",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: PrefixEnvVar("RUN_INTERVAL"),
		Usage:   "Interval between test runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	MaxPathLen = &cli.IntFlag{
		Name:    "max-path-len",
		Value:   0,
		EnvVars: PrefixEnvVar("MAX_PATH_LEN"),
		Usage:   "Maximum tag path length; 0 uses the engine default",
	}
	MaxDepth = &cli.IntFlag{
		Name:    "max-depth",
		Value:   0,
		EnvVars: PrefixEnvVar("MAX_DEPTH"),
		Usage:   "Maximum test list nesting depth; 0 uses the engine default",
	}
	LogDir = &cli.StringFlag{
		Name:    "logdir",
		Value:   "",
		EnvVars: PrefixEnvVar("LOGDIR"),
		Usage:   "Directory to store run reports (eg. 'logs'). Omit to disable report persistence.",
	}
	ServerAddr = &cli.StringFlag{
		Name:    "server-addr",
		Value:   "",
		EnvVars: PrefixEnvVar("SERVER_ADDR"),
		Usage:   "Address for the health and metrics HTTP server (eg. ':8080'). Omit to disable.",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log.level",
		Value:   "info",
		EnvVars: PrefixEnvVar("LOG_LEVEL"),
		Usage:   "The lowest log level that will be output",
	}
)

var optionalFlags = []cli.Flag{
	Mode,
	Target,
	RunPlan,
	BufferAll,
	RunInterval,
	MaxPathLen,
	MaxDepth,
	LogDir,
	ServerAddr,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(Flags, optionalFlags...)
}

// CheckRequired validates flag combinations that cli cannot express.
func CheckRequired(ctx *cli.Context) error {
	if ctx.Duration(RunInterval.Name) < 0 {
		return fmt.Errorf("flag %s must not be negative", RunInterval.Name)
	}
	if iv := ctx.Duration(RunInterval.Name); iv > 0 && iv < time.Second {
		return fmt.Errorf("flag %s must be at least one second", RunInterval.Name)
	}
	return nil
}
