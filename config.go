package ret

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/embedded-infra/ret/flags"
	"github.com/embedded-infra/ret/types"
	"github.com/ethereum/go-ethereum/log"
)

// Config holds the application configuration
type Config struct {
	Mode        types.Mode    // Run mode: execute or search
	TargetTag   string        // Tag selecting the subtree to run
	PlanFile    string        // Path to the run plan file, empty runs everything
	BufferAll   bool          // Buffer the whole report instead of flushing per line
	RunInterval time.Duration // Interval between test runs
	RunOnce     bool          // Indicates if the service should exit after one test run
	MaxPathLen  int           // Maximum tag path length, 0 uses the engine default
	MaxDepth    int           // Maximum nesting depth, 0 uses the engine default
	LogDir      string        // Directory to store run reports, empty disables persistence
	ServerAddr  string        // Health/metrics server address override, empty uses defaults
	Log         log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, log log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	mode, ok := types.ParseMode(ctx.String(flags.Mode.Name))
	if !ok {
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q",
			ctx.String(flags.Mode.Name), types.ModeExecute, types.ModeSearch)
	}

	target := ctx.String(flags.Target.Name)
	if target == "" {
		return nil, fmt.Errorf("target tag must not be empty")
	}

	planFile := ctx.String(flags.RunPlan.Name)
	if planFile != "" {
		var err error
		planFile, err = filepath.Abs(planFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for run plan '%s': %w", ctx.String(flags.RunPlan.Name), err)
		}
	}

	logDir := ctx.String(flags.LogDir.Name)
	if logDir != "" {
		var err error
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for log directory '%s': %w", ctx.String(flags.LogDir.Name), err)
		}
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)
	runOnce := runInterval == 0

	return &Config{
		Mode:        mode,
		TargetTag:   target,
		PlanFile:    planFile,
		BufferAll:   ctx.Bool(flags.BufferAll.Name),
		RunInterval: runInterval,
		RunOnce:     runOnce,
		MaxPathLen:  ctx.Int(flags.MaxPathLen.Name),
		MaxDepth:    ctx.Int(flags.MaxDepth.Name),
		LogDir:      logDir,
		ServerAddr:  ctx.String(flags.ServerAddr.Name),
		Log:         log,
	}, nil
}
