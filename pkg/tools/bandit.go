package tools

import (
	"context"
	"fmt"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/jsonutil"
)

// BanditAdapter runs bandit, the Python source static analyzer.
type BanditAdapter struct{}

func (BanditAdapter) Tool() finding.Tool { return Bandit }

func (a BanditAdapter) Run(ctx context.Context, inv *Invoker) Outcome {
	return inv.RunTool(ctx, Bandit, "bandit",
		[]string{"-r", inv.Dir, "-f", "json", "-q"},
		a.parse)
}

type banditIssue struct {
	Severity string `json:"issue_severity"`
	Text     string `json:"issue_text"`
	File     string `json:"filename"`
	Line     int    `json:"line_number"`
	TestID   string `json:"test_id"`
}

type banditOutput struct {
	Results []banditIssue `json:"results"`
}

// banditSeverity maps bandit's LOW/MEDIUM/HIGH vocabulary. Bandit has
// no critical level; anything unrecognized (e.g. UNDEFINED) becomes
// unknown rather than being dropped.
func banditSeverity(s string) finding.Severity {
	switch s {
	case "HIGH":
		return finding.High
	case "MEDIUM":
		return finding.Medium
	case "LOW":
		return finding.Low
	default:
		return finding.Unknown
	}
}

func (BanditAdapter) parse(raw []byte) ([]finding.Finding, error) {
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var out banditOutput
	if err := jsonutil.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	findings := make([]finding.Finding, 0, len(out.Results))
	for _, issue := range out.Results {
		findings = append(findings, finding.Finding{
			Tool:     Bandit,
			Severity: banditSeverity(issue.Severity),
			Title:    issue.TestID + ": " + issue.Text,
			File:     issue.File,
			Line:     issue.Line,
			Raw: map[string]any{
				"test_id":        issue.TestID,
				"issue_severity": issue.Severity,
			},
		})
	}
	return findings, nil
}
