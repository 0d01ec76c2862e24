package tools

import (
	"context"
	"fmt"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/jsonutil"
)

// SemgrepAdapter runs semgrep as the general SAST pass.
type SemgrepAdapter struct{}

func (SemgrepAdapter) Tool() finding.Tool { return Semgrep }

func (a SemgrepAdapter) Run(ctx context.Context, inv *Invoker) Outcome {
	return inv.RunTool(ctx, Semgrep, "semgrep",
		[]string{"scan", "--config", "auto", "--json", "--quiet", inv.Dir},
		a.parse)
}

type semgrepResult struct {
	CheckID string `json:"check_id"`
	Path    string `json:"path"`
	Start   struct {
		Line int `json:"line"`
	} `json:"start"`
	Extra struct {
		Severity string `json:"severity"`
		Message  string `json:"message"`
	} `json:"extra"`
}

type semgrepOutput struct {
	Results []semgrepResult `json:"results"`
}

// semgrepSeverity maps semgrep's ERROR/WARNING/INFO vocabulary onto
// the shared scale. Semgrep rules never reach critical on their own.
func semgrepSeverity(s string) finding.Severity {
	switch s {
	case "ERROR":
		return finding.High
	case "WARNING":
		return finding.Medium
	case "INFO":
		return finding.Info
	default:
		return finding.Unknown
	}
}

func (SemgrepAdapter) parse(raw []byte) ([]finding.Finding, error) {
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var out semgrepOutput
	if err := jsonutil.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	findings := make([]finding.Finding, 0, len(out.Results))
	for _, res := range out.Results {
		findings = append(findings, finding.Finding{
			Tool:     Semgrep,
			Severity: semgrepSeverity(res.Extra.Severity),
			Title:    res.CheckID + ": " + res.Extra.Message,
			File:     res.Path,
			Line:     res.Start.Line,
			Raw: map[string]any{
				"check_id": res.CheckID,
				"severity": res.Extra.Severity,
			},
		})
	}
	return findings, nil
}
