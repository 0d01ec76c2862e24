package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/relgate/relgate/pkg/duration"
	"github.com/relgate/relgate/pkg/finding"
)

// ExecFunc runs a command in dir and returns its captured stdout and
// exit code. A non-nil error means the process could not run or did
// not finish; a non-zero exit with output is NOT an error, because
// scanners exit non-zero when findings exist.
type ExecFunc func(ctx context.Context, dir, bin string, args ...string) (stdout []byte, exitCode int, err error)

// Invoker carries the ambient state adapters need: where to scan,
// where to drop raw artifacts, and how to launch processes. The
// LookPath and Exec fields are seams for tests; NewInvoker wires the
// real implementations.
type Invoker struct {
	// Dir is the repository root to scan and the working directory
	// for every tool process.
	Dir string

	// Image is the container image reference for the image scanner.
	// Empty means no image was built this run.
	Image string

	// ArtifactDir receives one raw-output file per tool, overwritten
	// each run.
	ArtifactDir string

	// Timeout bounds one tool invocation.
	Timeout time.Duration

	LookPath func(bin string) (string, error)
	Exec     ExecFunc

	// Warnf reports non-fatal adapter conditions (missing binary,
	// artifact write failure). Defaults to a no-op.
	Warnf func(format string, args ...any)
}

// NewInvoker returns an Invoker using the real PATH lookup and
// process execution.
func NewInvoker(dir, image, artifactDir string) *Invoker {
	return &Invoker{
		Dir:         dir,
		Image:       image,
		ArtifactDir: artifactDir,
		Timeout:     duration.ToolDefault,
		LookPath:    exec.LookPath,
		Exec:        runCommand,
		Warnf:       func(string, ...any) {},
	}
}

func runCommand(ctx context.Context, dir, bin string, args ...string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			// Findings-present exit codes land here.
			return stdout.Bytes(), exitErr.ExitCode(), nil
		}
		if ctx.Err() != nil {
			return stdout.Bytes(), -1, finding.ErrToolTimeout
		}
		return stdout.Bytes(), -1, err
	}
	return stdout.Bytes(), 0, nil
}

// Capture checks the binary is present, runs it bounded by the
// invoker timeout, and writes the raw stdout to the named artifact
// file. skipped is true when the binary is absent.
func (inv *Invoker) Capture(ctx context.Context, artifact, bin string, args ...string) (raw []byte, exitCode int, skipped bool, err error) {
	if _, lookErr := inv.LookPath(bin); lookErr != nil {
		return nil, 0, true, nil
	}

	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	raw, exitCode, err = inv.Exec(runCtx, inv.Dir, bin, args...)
	inv.writeArtifact(artifact, raw)
	return raw, exitCode, false, err
}

// writeArtifact persists raw tool output for later inspection. The
// path is deterministic and overwritten each run. Artifact write
// failures are warnings: they must not turn a scan result into a
// tooling error.
func (inv *Invoker) writeArtifact(name string, raw []byte) {
	if inv.ArtifactDir == "" {
		return
	}
	if err := os.MkdirAll(inv.ArtifactDir, 0o755); err != nil {
		inv.Warnf("artifact dir: %v", err)
		return
	}
	path := filepath.Join(inv.ArtifactDir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		inv.Warnf("artifact %s: %v", name, err)
	}
}

// RunTool is the shared adapter body for single-command tools: run,
// capture, parse. Every failure mode folds into the outcome; panics
// in parsers are converted to tooling errors so one malformed tool
// output can never abort the pipeline.
func (inv *Invoker) RunTool(ctx context.Context, tool finding.Tool, bin string, args []string, parse func([]byte) ([]finding.Finding, error)) (out Outcome) {
	out = Outcome{Tool: tool}
	start := time.Now()

	defer func() {
		out.Duration = time.Since(start)
		if r := recover(); r != nil {
			out.Invoked = true
			out.Findings = nil
			out.ToolingError = fmt.Sprintf("adapter panic: %v", r)
		}
	}()

	raw, exitCode, skipped, err := inv.Capture(ctx, string(tool)+".json", bin, args...)
	if skipped {
		inv.Warnf("%s not installed, skipping", bin)
		return out
	}

	out.Invoked = true
	out.ExitCode = exitCode

	if err != nil {
		if errors.Is(err, finding.ErrToolTimeout) {
			out.ToolingError = fmt.Sprintf("tool unresponsive after %s", inv.Timeout)
		} else {
			out.ToolingError = err.Error()
		}
		return out
	}

	findings, parseErr := parse(raw)
	if parseErr != nil {
		out.ToolingError = fmt.Sprintf("%s output not usable: %v", tool, parseErr)
		return out
	}

	out.Findings = findings
	return out
}
