package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/relgate/relgate/pkg/config"
	"github.com/relgate/relgate/pkg/duration"
	"github.com/relgate/relgate/pkg/gate"
	"github.com/relgate/relgate/pkg/report"
	"github.com/relgate/relgate/pkg/scan"
	"github.com/relgate/relgate/pkg/tools"
	"github.com/relgate/relgate/pkg/ui"
)

// runScan is the default pipeline: run every adapter, assemble and
// summarize the report, replace the report file, decide the gate.
func runScan(args []string) gate.Code {
	mgr := gate.NewManager()

	cfg, err := config.ParseFlags(args)
	if err != nil {
		ui.PrintError(err.Error())
		mgr.SetConfigError()
		code, _ := mgr.ExitCode()
		return code
	}
	if cfg.NoColor {
		ui.DisableColor()
	}

	var policy *gate.Policy
	if cfg.PolicyFile != "" {
		policy, err = gate.LoadPolicy(cfg.PolicyFile)
		if err != nil {
			ui.PrintError(err.Error())
			mgr.SetConfigError()
			code, _ := mgr.ExitCode()
			return code
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration.RunMax)
	defer cancel()

	inv := tools.NewInvoker(cfg.Dir, cfg.Image, cfg.ArtifactDir)
	inv.Timeout = cfg.Timeout
	if cfg.Verbose {
		inv.Warnf = func(format string, a ...any) {
			ui.PrintWarning(fmt.Sprintf(format, a...))
		}
	}

	orch := scan.New(inv, tools.Select(cfg.SkipSet()), cfg.Concurrency)
	orch.Observe = func(out tools.Outcome) {
		ui.PrintToolResult(out.Tool, outcomeStatus(out), out.Duration)
	}

	ui.PrintInfo(fmt.Sprintf("scanning %s", cfg.Dir))
	run := orch.Run(ctx)

	// An interrupt mid-run still produces a report from whatever
	// completed, but the gate reports the interruption, not a verdict.
	interrupted := ctx.Err() != nil

	mgr.RecordRun(run, policy)
	pass := policy == nil && !run.AnyIssue ||
		policy != nil && policy.Evaluate(run).Pass

	now := time.Now()
	path := cfg.ReportPath
	if path == "" {
		path = report.DefaultPath(cfg.ReportDir, now)
	}
	doc := report.Summarize(report.Assemble(run, now), pass)
	if err := report.Write(path, doc); err != nil {
		ui.PrintError(err.Error())
		mgr.SetReportError()
	} else {
		ui.PrintInfo("report written to " + path)
	}

	if interrupted {
		mgr.SetInterrupted()
	}

	code, reason := mgr.ExitCode()
	ui.PrintGate(code == gate.Pass)
	if cfg.Verbose || code != gate.Pass {
		ui.PrintInfo(reason)
	}
	return code
}

// outcomeStatus renders the one-line status for the live log.
func outcomeStatus(out tools.Outcome) string {
	switch {
	case out.Skipped():
		return "skipped (not installed)"
	case out.ToolingError != "":
		return "error: " + out.ToolingError
	case len(out.Findings) == 0:
		return "clean"
	default:
		return fmt.Sprintf("%d finding(s)", len(out.Findings))
	}
}
