// Package report renders a scan.Run into the consolidated markdown
// report and prepends the severity summary block.
//
// Two counting signals exist on purpose. The typed aggregation over
// Finding.Severity (scan.Run.Counts) is the source of truth for
// console output. The summary block in the rendered report is
// re-derived by scanning the rendered body for literal bracket
// markers, which keeps the report byte-compatible with the legacy
// pipeline it replaced; bullets without a recognized marker (info,
// unknown) are invisible to that count even though they appear in the
// body. Tests pin both signals and where they diverge.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/relgate/relgate/pkg/scan"
	"github.com/relgate/relgate/pkg/tools"
)

const title = "# Security Scan Report"

// Assemble renders the run into the full document: an unscored header
// carrying the generation timestamp and run ID, then one section per
// tool outcome in pipeline order. Rendering is idempotent: the same
// run always yields a byte-identical document apart from the
// timestamp passed in.
func Assemble(run *scan.Run, generated time.Time) string {
	var b strings.Builder

	b.WriteString(title)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Run: %s\n", run.ID)

	for _, out := range run.Outcomes {
		b.WriteString("\n## ")
		b.WriteString(string(out.Tool))
		b.WriteString("\n\n")
		writeSection(&b, out)
	}
	return b.String()
}

// writeSection renders one tool outcome. The passed marker line must
// contain no severity token: the summarizer greps the body for
// bracket markers and a decorative [PASS] would corrupt the counts.
func writeSection(b *strings.Builder, out tools.Outcome) {
	switch {
	case out.Skipped():
		b.WriteString("Skipped: tool not available.\n")
	case out.ToolingError != "":
		fmt.Fprintf(b, "Tool error: %s\n", out.ToolingError)
		b.WriteString("The tool ran but its output could not be interpreted; ")
		b.WriteString("this is not a clean pass.\n")
	case len(out.Findings) == 0:
		b.WriteString("No issues found.\n")
	default:
		fmt.Fprintf(b, "%d issue(s) found:\n\n", len(out.Findings))
		for _, f := range out.Findings {
			b.WriteString("- ")
			b.WriteString(f.Severity.Marker())
			b.WriteString(" ")
			b.WriteString(f.Title)
			if loc := f.Location(); loc != "" {
				fmt.Fprintf(b, " (%s)", loc)
			}
			b.WriteString("\n")
		}
	}
}

// summarized severities, in display order. Info and unknown markers
// are deliberately absent: the legacy summary never counted them.
var summaryMarkers = []struct {
	label  string
	marker string
}{
	{"CRITICAL", "[CRITICAL]"},
	{"HIGH", "[HIGH]"},
	{"MEDIUM", "[MEDIUM]"},
	{"LOW", "[LOW]"},
}

// Summarize post-processes the assembled document as plain text:
// counts occurrences of each literal bracketed severity token across
// the whole document and rewrites the header to carry the summary
// block and the overall PASS/FAIL line. pass is the gate decision
// from the run; the summary displays it but never derives it from
// the counts.
func Summarize(doc string, pass bool) string {
	var summary strings.Builder
	summary.WriteString("## Summary\n\n")
	for _, m := range summaryMarkers {
		fmt.Fprintf(&summary, "- %s: %d\n", m.label, strings.Count(doc, m.marker))
	}
	summary.WriteString("\nOverall: ")
	if pass {
		summary.WriteString("PASS")
	} else {
		summary.WriteString("FAIL")
	}
	summary.WriteString("\n")

	// The summary block replaces the unscored header: it slots in
	// directly after the header lines, before the first tool section.
	idx := strings.Index(doc, "\n## ")
	if idx < 0 {
		return doc + "\n" + summary.String()
	}
	return doc[:idx] + "\n" + summary.String() + doc[idx:]
}

// Body returns the document with its timestamp line removed, for
// byte-identity comparisons across runs.
func Body(doc string) string {
	lines := strings.Split(doc, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "Generated: ") {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
