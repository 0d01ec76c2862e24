package tools

import (
	"context"
	"fmt"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/jsonutil"
)

// SafetyAdapter runs safety, the Python dependency vulnerability
// checker. Its legacy JSON format is a list of positional tuples:
// [package, affected_spec, installed_version, advisory_text, advisory_id].
type SafetyAdapter struct{}

func (SafetyAdapter) Tool() finding.Tool { return Safety }

func (a SafetyAdapter) Run(ctx context.Context, inv *Invoker) Outcome {
	return inv.RunTool(ctx, Safety, "safety",
		[]string{"check", "--json"},
		a.parse)
}

// Safety reports no severity of its own, so every hit carries the
// fixed default High: a known-vulnerable dependency is actionable
// regardless of how the advisory is scored elsewhere.
func (SafetyAdapter) parse(raw []byte) ([]finding.Finding, error) {
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var rows [][]any
	if err := jsonutil.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	findings := make([]finding.Finding, 0, len(rows))
	for _, row := range rows {
		pkg := tupleString(row, 0)
		installed := tupleString(row, 2)
		advisory := tupleString(row, 3)
		advisoryID := tupleString(row, 4)
		if pkg == "" {
			return nil, fmt.Errorf("%w: tuple missing package name", finding.ErrUnparsableOutput)
		}

		title := fmt.Sprintf("%s %s: %s", pkg, installed, advisory)
		findings = append(findings, finding.Finding{
			Tool:     Safety,
			Severity: finding.High,
			Title:    title,
			Raw: map[string]any{
				"package":     pkg,
				"installed":   installed,
				"advisory_id": advisoryID,
			},
		})
	}
	return findings, nil
}

// tupleString extracts element i of a positional tuple as a string,
// tolerating short rows and non-string members.
func tupleString(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}
