package scan

import (
	"context"
	"sync"
	"testing"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/tools"
)

// stubAdapter returns a canned outcome; used to exercise the
// orchestrator without external processes.
type stubAdapter struct {
	tool    finding.Tool
	outcome tools.Outcome
}

func (s stubAdapter) Tool() finding.Tool { return s.tool }
func (s stubAdapter) Run(context.Context, *tools.Invoker) tools.Outcome {
	out := s.outcome
	out.Tool = s.tool
	return out
}

func withFindings(tool finding.Tool, severities ...finding.Severity) stubAdapter {
	fs := make([]finding.Finding, len(severities))
	for i, sev := range severities {
		fs[i] = finding.Finding{Tool: tool, Severity: sev, Title: "stub"}
	}
	return stubAdapter{tool: tool, outcome: tools.Outcome{Invoked: true, Findings: fs}}
}

func clean(tool finding.Tool) stubAdapter {
	return stubAdapter{tool: tool, outcome: tools.Outcome{Invoked: true}}
}

func skipped(tool finding.Tool) stubAdapter {
	return stubAdapter{tool: tool, outcome: tools.Outcome{Invoked: false}}
}

func broken(tool finding.Tool) stubAdapter {
	return stubAdapter{tool: tool, outcome: tools.Outcome{Invoked: true, ToolingError: "bad json"}}
}

func TestRunPreservesAdapterOrder(t *testing.T) {
	adapters := []tools.Adapter{
		withFindings("a", finding.Medium),
		skipped("b"),
		clean("c"),
	}

	run := New(nil, adapters, 3).Run(context.Background())
	if len(run.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(run.Outcomes))
	}
	for i, want := range []finding.Tool{"a", "b", "c"} {
		if run.Outcomes[i].Tool != want {
			t.Errorf("outcome %d is %s, want %s", i, run.Outcomes[i].Tool, want)
		}
	}
}

func TestAnyIssueScenario(t *testing.T) {
	// Adapter A reports one MEDIUM finding, B is absent, C is clean:
	// the gate signal must be set and the run must carry 3 outcomes.
	run := New(nil, []tools.Adapter{
		withFindings("a", finding.Medium),
		skipped("b"),
		clean("c"),
	}, 0).Run(context.Background())

	if !run.AnyIssue {
		t.Error("one finding must set AnyIssue")
	}
	if got := run.Counts()[finding.Medium]; got != 1 {
		t.Errorf("medium count = %d, want 1", got)
	}
	if run.TotalFindings() != 1 {
		t.Errorf("total findings = %d, want 1", run.TotalFindings())
	}
}

func TestAnyIssueAllClean(t *testing.T) {
	run := New(nil, []tools.Adapter{clean("a"), clean("b"), clean("c")}, 0).
		Run(context.Background())

	if run.AnyIssue {
		t.Error("clean run must not set AnyIssue")
	}
	if run.TotalFindings() != 0 {
		t.Errorf("total findings = %d, want 0", run.TotalFindings())
	}
}

func TestToolingErrorDoesNotSetAnyIssue(t *testing.T) {
	run := New(nil, []tools.Adapter{broken("a"), clean("b")}, 0).
		Run(context.Background())

	if run.AnyIssue {
		t.Error("a tooling error is not a security finding and must not gate")
	}
}

func TestLowOnlyFindingsStillSetAnyIssue(t *testing.T) {
	// Gating is severity-independent: low-only findings fail too.
	run := New(nil, []tools.Adapter{withFindings("a", finding.Low)}, 0).
		Run(context.Background())

	if !run.AnyIssue {
		t.Error("low-severity findings must still set AnyIssue")
	}
}

func TestObserveReceivesEveryOutcome(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[finding.Tool]bool)

	o := New(nil, []tools.Adapter{clean("a"), skipped("b"), withFindings("c", finding.High)}, 2)
	o.Observe = func(out tools.Outcome) {
		mu.Lock()
		defer mu.Unlock()
		seen[out.Tool] = true
	}
	o.Run(context.Background())

	for _, tool := range []finding.Tool{"a", "b", "c"} {
		if !seen[tool] {
			t.Errorf("observer never saw outcome for %s", tool)
		}
	}
}

func TestRunMetadata(t *testing.T) {
	run := New(nil, []tools.Adapter{clean("a")}, 0).Run(context.Background())

	if run.ID == "" {
		t.Error("run ID must be set")
	}
	if run.StartedAt.IsZero() {
		t.Error("StartedAt must be set")
	}
}
