package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	ret "github.com/embedded-infra/ret"
	"github.com/embedded-infra/ret/example"
	"github.com/embedded-infra/ret/exitcodes"
	"github.com/embedded-infra/ret/flags"
	"github.com/embedded-infra/ret/registry"
	"github.com/embedded-infra/ret/service"
)

var (
	Version   = "v1.0.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "ret"
	app.Usage = "Recursive Embedded Test runner"
	app.Description = "ret executes tag-addressed test trees and reports the results"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Use the exit code from the ExitCoder
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if ret.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if ret.IsTestFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			} else {
				// Unspecified errors default to the test failure code
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			}
		}
	}

	// Start telemetry
	shutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Warn("Failed to setup open telemetry, continuing without it", "message", err)
	} else {
		defer shutdown()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(cliCtx *cli.Context) error {
	logger, err := setupLogger(cliCtx)
	if err != nil {
		return ret.NewRuntimeError(err)
	}

	cfg, err := ret.NewConfig(cliCtx, logger)
	if err != nil {
		return ret.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	reg, err := registry.NewRegistry(registry.Config{
		Log:           logger,
		PlanFile:      cfg.PlanFile,
		EngineVersion: Version,
	})
	if err != nil {
		return ret.NewRuntimeError(fmt.Errorf("failed to create registry: %w", err))
	}
	if err := example.RegisterAll(reg); err != nil {
		return ret.NewRuntimeError(fmt.Errorf("failed to register test groups: %w", err))
	}

	// Health and metrics sidecar
	svc := service.New(cfg.ServerAddr)
	svc.Start(cliCtx.Context)
	defer svc.Shutdown()

	appCtx, cancel := context.WithCancelCause(cliCtx.Context)
	defer cancel(nil)

	testService, err := ret.New(appCtx, cfg, Version, reg, cancel)
	if err != nil {
		return ret.NewRuntimeError(fmt.Errorf("failed to create service: %w", err))
	}

	if err := testService.Start(appCtx); err != nil {
		return err
	}
	if cfg.RunOnce {
		return nil
	}

	// Continuous mode: run until interrupted
	<-appCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := testService.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping service", "error", err)
	}
	return testService.WaitForShutdown(shutdownCtx)
}

func setupLogger(cliCtx *cli.Context) (log.Logger, error) {
	lvl, err := log.LvlFromString(cliCtx.String(flags.LogLevel.Name))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, lvl, true))
	log.SetDefault(logger)
	return logger, nil
}
