// Package ret is the host-side service around the embedded test engine:
// it assembles the test tree from the registry, drives runs through the
// engine, and turns the wire report into console output and metrics.
package ret

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/embedded-infra/ret/engine"
	"github.com/embedded-infra/ret/logging"
	"github.com/embedded-infra/ret/metrics"
	"github.com/embedded-infra/ret/registry"
	"github.com/embedded-infra/ret/reporting"
	"github.com/embedded-infra/ret/types"
	"github.com/embedded-infra/ret/ui"
)

// RunResult is the processed outcome of one engine run.
type RunResult struct {
	RunID    string
	Result   types.Result
	Stats    types.RunStats
	Duration time.Duration
	Report   *reporting.Report
}

func (r *RunResult) String() string {
	return fmt.Sprintf("run %s: %s (%d tests, %d passed, %d failed, %s)",
		r.RunID, r.Result, r.Stats.Total, r.Stats.Passed,
		r.Stats.Failed+r.Stats.Timeouts+r.Stats.TagErrors,
		formatDuration(r.Duration))
}

// Service drives test runs: one engine, one report collector, and a
// scheduler deciding when runs happen.
type Service struct {
	ctx       context.Context
	config    *Config
	version   string
	registry  *registry.Registry
	engine    *engine.Engine
	collector *reporting.Collector
	scheduler Scheduler
	tracer    trace.Tracer
	fileLog   *logging.FileLogger
	result    *RunResult

	shutdownCallback func(error) // Callback to signal application shutdown
}

// New assembles the service: the registry's selected groups become the
// engine's root test list.
func New(ctx context.Context, config *Config, version string, reg *registry.Registry, shutdownCallback func(error)) (*Service, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if reg == nil {
		return nil, errors.New("registry is required")
	}

	config.Log.Debug("Creating service with config",
		"mode", config.Mode,
		"target", config.TargetTag,
		"planFile", config.PlanFile,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	list, err := reg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build test list: %w", err)
	}

	collector := &reporting.Collector{}
	eng, err := engine.New(engine.Config{
		Log:        config.Log,
		Root:       list,
		Sink:       collector.Sink(),
		MaxPathLen: config.MaxPathLen,
		MaxDepth:   config.MaxDepth,
		BufferAll:  config.BufferAll,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	var fileLog *logging.FileLogger
	if config.LogDir != "" {
		fileLog, err = logging.NewFileLogger(config.LogDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
	}

	s := &Service{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         reg,
		engine:           eng,
		collector:        collector,
		scheduler:        NewIntervalScheduler(config.RunInterval, config.RunOnce, config.Log),
		tracer:           otel.Tracer("ret"),
		fileLog:          fileLog,
		shutdownCallback: shutdownCallback,
	}
	s.scheduler.RegisterCallback(s.runTests)
	config.Log.Info("Service created", "groups", len(reg.Groups()), "version", version)
	return s, nil
}

// Start runs the tests once and, in continuous mode, keeps running them
// at the configured interval.
func (s *Service) Start(ctx context.Context) error {
	s.ctx = ctx

	if s.config.RunOnce {
		s.config.Log.Info("Starting ret in run-once mode")
	} else {
		s.config.Log.Info("Starting ret in continuous mode", "interval", s.config.RunInterval)
	}

	if err := s.scheduler.Start(ctx); err != nil {
		if IsRuntimeError(err) || IsTestFailureError(err) {
			return err
		}
		return NewRuntimeError(err)
	}

	if s.config.RunOnce {
		s.config.Log.Info("Tests completed, exiting (run-once mode)")

		if s.result != nil && s.result.Result != types.ResultPass {
			s.config.Log.Warn("Run-once test run completed with failures, returning exit code 1")
			return NewTestFailureError(s.result.String())
		}

		// Only need to call this when we're in run-once mode and all tests passed
		go func() {
			s.shutdownCallback(nil)
		}()
		return nil
	}

	s.config.Log.Debug("ret started successfully")
	return nil
}

// Stop stops the service.
func (s *Service) Stop(ctx context.Context) error {
	s.config.Log.Info("Stopping ret")
	if err := s.scheduler.Stop(); err != nil {
		return err
	}
	s.config.Log.Info("ret stopped successfully")
	return nil
}

// Stopped returns true if the service is stopped.
func (s *Service) Stopped() bool {
	return s.scheduler.Stopped()
}

// WaitForShutdown blocks until all goroutines have terminated.
func (s *Service) WaitForShutdown(ctx context.Context) error {
	return s.scheduler.WaitForShutdown(ctx)
}

// Result returns the outcome of the most recent completed run.
func (s *Service) Result() *RunResult {
	return s.result
}

// runTests performs one engine run and processes the report.
func (s *Service) runTests() (err error) {
	runID := uuid.New().String()
	_, span := s.tracer.Start(s.ctx, "test run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("mode", s.config.Mode.String()),
			attribute.String("target", s.config.TargetTag),
		))
	defer span.End()

	// The engine turns assertion failures into report lines; anything
	// escaping it is an application bug, reported as a runtime error.
	defer func() {
		if r := recover(); r != nil {
			err = NewRuntimeError(fmt.Errorf("panic during test run: %v", r))
			metrics.RecordErrorDetails("test run panic", err)
			s.config.Log.Error("Panic during test run", "error", r)
		}
	}()

	s.config.Log.Info("Running tests...", "run_id", runID)
	s.collector.Reset()

	start := time.Now()
	runCfg := &types.RunConfig{Mode: s.config.Mode, TargetTag: s.config.TargetTag}
	res := s.engine.Start(runCfg)
	duration := time.Since(start)

	report, perr := s.collector.Report()
	if perr != nil {
		metrics.RecordErrorDetails("malformed report", perr)
		return NewRuntimeError(fmt.Errorf("malformed run report: %w", perr))
	}
	if !report.Done {
		return NewRuntimeError(fmt.Errorf("target %q not found in the test tree", s.config.TargetTag))
	}

	s.result = &RunResult{
		RunID:    runID,
		Result:   res,
		Stats:    s.engine.Stats(),
		Duration: duration,
		Report:   report,
	}

	for _, line := range report.TestLines() {
		metrics.RecordTestResult(runID, line.Text, line.Result)
	}
	metrics.RecordRun(runID, res, s.result.Stats, duration)

	if s.fileLog != nil {
		if serr := s.fileLog.SaveRun(runID, s.collector.String(), s.result.String()); serr != nil {
			s.config.Log.Error("Failed to persist run report", "run_id", runID, "error", serr)
			metrics.RecordErrorDetails("persist run report", serr)
		} else {
			s.config.Log.Info("Run report saved", "dir", s.fileLog.RunDir(runID))
		}
	}

	if s.config.Mode == types.ModeSearch {
		s.printSearchTree(report)
	} else {
		s.printResultsTable(report)
		fmt.Println(s.result.String())
	}

	s.config.Log.Info("Test run completed", "run_id", runID, "result", res, "duration", duration)
	return nil
}

// printSearchTree prints the discovered tag paths as a tree.
func (s *Service) printSearchTree(report *reporting.Report) {
	paths := report.SearchPaths()
	fmt.Printf("Discovered %d tag paths:\n", len(paths))
	fmt.Print(ui.RenderTree(paths))
}

// printResultsTable prints the results of the test run to the console.
func (s *Service) printResultsTable(report *reporting.Report) {
	s.config.Log.Info("Printing results...")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Test Run Results (%s)", formatDuration(s.result.Duration)))

	t.AppendHeader(table.Row{"Seq", "Tag Path", "Elapsed", "Result"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Seq", Align: text.AlignRight},
		{Name: "Tag Path", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Elapsed", Align: text.AlignRight},
	})

	for _, line := range report.TestLines() {
		t.AppendRow(table.Row{
			line.Seq,
			indentPath(line.Text),
			formatTicks(line.Elapsed),
			getResultString(line.Result),
		})
	}

	if s.result.Result == types.ResultPass {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%d tests", s.result.Stats.Total),
		formatDuration(s.result.Duration),
		getResultString(s.result.Result),
	})

	t.Render()
}
