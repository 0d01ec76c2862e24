package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/scan"
	"github.com/relgate/relgate/pkg/tools"
)

var testTime = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func testRun(outcomes ...tools.Outcome) *scan.Run {
	run := &scan.Run{
		ID:        "11111111-2222-3333-4444-555555555555",
		StartedAt: testTime,
		Outcomes:  outcomes,
	}
	for _, out := range outcomes {
		if len(out.Findings) > 0 {
			run.AnyIssue = true
		}
	}
	return run
}

func outcomeWith(tool finding.Tool, fs ...finding.Finding) tools.Outcome {
	return tools.Outcome{Tool: tool, Invoked: true, Findings: fs}
}

func TestAssembleScenarioMediumSkippedClean(t *testing.T) {
	// Adapter A: one MEDIUM finding. Adapter B: absent. Adapter C: clean.
	run := testRun(
		outcomeWith("bandit", finding.Finding{
			Tool: "bandit", Severity: finding.Medium,
			Title: "B108: hardcoded tmp directory", File: "app/cache.py", Line: 9,
		}),
		tools.Outcome{Tool: "safety", Invoked: false},
		outcomeWith("semgrep"),
	)

	doc := Summarize(Assemble(run, testTime), !run.AnyIssue)

	require.Equal(t, 3, strings.Count(doc, "\n## ")-1, "expected 3 tool sections plus summary")
	assert.Contains(t, doc, "- MEDIUM: 1")
	assert.Contains(t, doc, "- CRITICAL: 0")
	assert.Contains(t, doc, "- HIGH: 0")
	assert.Contains(t, doc, "- LOW: 0")
	assert.Contains(t, doc, "Overall: FAIL")
	assert.Contains(t, doc, "- [MEDIUM] B108: hardcoded tmp directory (app/cache.py:9)")
	assert.Contains(t, doc, "Skipped: tool not available.")
	assert.Contains(t, doc, "No issues found.")
}

func TestAssembleAllClean(t *testing.T) {
	run := testRun(
		outcomeWith("bandit"),
		outcomeWith("safety"),
		outcomeWith("semgrep"),
	)

	doc := Summarize(Assemble(run, testTime), !run.AnyIssue)

	assert.Contains(t, doc, "Overall: PASS")
	assert.Equal(t, 3, strings.Count(doc, "No issues found."))
	for _, line := range []string{"- CRITICAL: 0", "- HIGH: 0", "- MEDIUM: 0", "- LOW: 0"} {
		assert.Contains(t, doc, line)
	}
}

func TestPassedMarkerCarriesNoSeverityToken(t *testing.T) {
	run := testRun(outcomeWith("bandit"))
	doc := Assemble(run, testTime)

	for _, m := range []string{"[CRITICAL]", "[HIGH]", "[MEDIUM]", "[LOW]"} {
		assert.NotContains(t, doc, m)
	}
}

func TestToolingErrorSectionIsDistinct(t *testing.T) {
	run := testRun(tools.Outcome{
		Tool: "semgrep", Invoked: true,
		ToolingError: "semgrep output not usable: unexpected EOF",
	})

	doc := Assemble(run, testTime)

	// A tooling error must never render as a clean pass.
	assert.NotContains(t, doc, "No issues found.")
	assert.Contains(t, doc, "Tool error: semgrep output not usable: unexpected EOF")
	assert.Contains(t, doc, "not a clean pass")
}

func TestAssembleIdempotentModuloTimestamp(t *testing.T) {
	run := testRun(
		outcomeWith("bandit", finding.Finding{
			Tool: "bandit", Severity: finding.High, Title: "B602: shell=True", File: "a.py", Line: 1,
		}),
		tools.Outcome{Tool: "safety", Invoked: false},
	)

	first := Assemble(run, testTime)
	second := Assemble(run, testTime.Add(time.Hour))

	require.NotEqual(t, first, second, "timestamp must differ")
	assert.Equal(t, Body(first), Body(second), "bodies must be byte-identical")

	// And with the same timestamp the whole document is identical.
	assert.Equal(t, first, Assemble(run, testTime))
}

func TestSummaryBlindSpotInfoAndUnknown(t *testing.T) {
	// Info and unknown bullets are present in the body but invisible
	// to the legacy text-scan summary. The typed aggregation sees them.
	run := testRun(outcomeWith("outdated",
		finding.Finding{Tool: "outdated", Severity: finding.Info, Title: "pip: requests 2.28.0 (latest 2.31.0)"},
		finding.Finding{Tool: "npm-audit", Severity: finding.Unknown, Title: "undetailed advisory"},
	))

	doc := Summarize(Assemble(run, testTime), !run.AnyIssue)

	assert.Contains(t, doc, "- [INFO] pip: requests")
	assert.Contains(t, doc, "- [UNKNOWN] undetailed advisory")
	assert.NotContains(t, doc, "- INFO:", "summary must not count info markers")

	// The text-scan severity counts are all zero...
	for _, line := range []string{"- CRITICAL: 0", "- HIGH: 0", "- MEDIUM: 0", "- LOW: 0"} {
		assert.Contains(t, doc, line)
	}
	// ...yet the gate still fails, and the typed counts disagree on purpose.
	assert.Contains(t, doc, "Overall: FAIL")
	assert.Equal(t, 1, run.Counts()[finding.Info])
	assert.Equal(t, 1, run.Counts()[finding.Unknown])
}

func TestTextScanCountMatchesMarkedBullets(t *testing.T) {
	run := testRun(outcomeWith("trivy",
		finding.Finding{Tool: "trivy", Severity: finding.High, Title: "openssl: CVE-1"},
		finding.Finding{Tool: "trivy", Severity: finding.High, Title: "busybox: CVE-2"},
		finding.Finding{Tool: "trivy", Severity: finding.Critical, Title: "zlib: CVE-3"},
	))

	doc := Summarize(Assemble(run, testTime), !run.AnyIssue)

	assert.Contains(t, doc, "- HIGH: 2")
	assert.Contains(t, doc, "- CRITICAL: 1")

	// Both signals align when every bullet carries a recognized marker.
	assert.Equal(t, 2, run.Counts()[finding.High])
	assert.Equal(t, 1, run.Counts()[finding.Critical])
}

func TestSummaryPrecedesToolSections(t *testing.T) {
	run := testRun(outcomeWith("bandit"))
	doc := Summarize(Assemble(run, testTime), true)

	sumIdx := strings.Index(doc, "## Summary")
	toolIdx := strings.Index(doc, "## bandit")
	require.GreaterOrEqual(t, sumIdx, 0)
	require.GreaterOrEqual(t, toolIdx, 0)
	assert.Less(t, sumIdx, toolIdx, "summary block must precede tool sections")
}
