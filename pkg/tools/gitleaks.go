package tools

import (
	"context"
	"fmt"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/jsonutil"
)

// GitleaksAdapter runs gitleaks, the secret scanner.
type GitleaksAdapter struct{}

func (GitleaksAdapter) Tool() finding.Tool { return Gitleaks }

func (a GitleaksAdapter) Run(ctx context.Context, inv *Invoker) Outcome {
	return inv.RunTool(ctx, Gitleaks, "gitleaks",
		[]string{"detect", "--source", inv.Dir, "--no-banner",
			"--report-format", "json", "--report-path", "/dev/stdout"},
		a.parse)
}

type gitleaksLeak struct {
	Description string `json:"Description"`
	File        string `json:"File"`
	StartLine   int    `json:"StartLine"`
	RuleID      string `json:"RuleID"`
}

// Gitleaks has no severity concept: a committed secret is a committed
// secret. Every hit carries the fixed default High.
func (GitleaksAdapter) parse(raw []byte) ([]finding.Finding, error) {
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var leaks []gitleaksLeak
	if err := jsonutil.Unmarshal(raw, &leaks); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	findings := make([]finding.Finding, 0, len(leaks))
	for _, leak := range leaks {
		title := leak.Description
		if leak.RuleID != "" {
			title = leak.RuleID + ": " + leak.Description
		}
		findings = append(findings, finding.Finding{
			Tool:     Gitleaks,
			Severity: finding.High,
			Title:    title,
			File:     leak.File,
			Line:     leak.StartLine,
			Raw: map[string]any{
				"rule_id": leak.RuleID,
			},
		})
	}
	return findings, nil
}
