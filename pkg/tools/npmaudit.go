package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/jsonutil"
)

// NpmAuditAdapter runs `npm audit` for the JS dependency ecosystem.
type NpmAuditAdapter struct{}

func (NpmAuditAdapter) Tool() finding.Tool { return NpmAudit }

func (a NpmAuditAdapter) Run(ctx context.Context, inv *Invoker) Outcome {
	return inv.RunTool(ctx, NpmAudit, "npm",
		[]string{"audit", "--json"},
		a.parse)
}

type npmAdvisory struct {
	ModuleName string `json:"module_name"`
	Severity   string `json:"severity"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

type npmAuditOutput struct {
	Advisories map[string]npmAdvisory `json:"advisories"`
	Metadata   struct {
		Vulnerabilities struct {
			Total int `json:"total"`
		} `json:"vulnerabilities"`
	} `json:"metadata"`
}

// npmSeverity maps npm audit's info/low/moderate/high/critical
// vocabulary. "moderate" is the only rename.
func npmSeverity(s string) finding.Severity {
	switch s {
	case "critical":
		return finding.Critical
	case "high":
		return finding.High
	case "moderate":
		return finding.Medium
	case "low":
		return finding.Low
	case "info":
		return finding.Info
	default:
		return finding.Unknown
	}
}

func (NpmAuditAdapter) parse(raw []byte) ([]finding.Finding, error) {
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var out npmAuditOutput
	if err := jsonutil.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	// Deterministic ordering: advisories is a map keyed by advisory ID.
	ids := make([]string, 0, len(out.Advisories))
	for id := range out.Advisories {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	findings := make([]finding.Finding, 0, len(ids))
	for _, id := range ids {
		adv := out.Advisories[id]
		findings = append(findings, finding.Finding{
			Tool:     NpmAudit,
			Severity: npmSeverity(adv.Severity),
			Title:    fmt.Sprintf("%s: %s (advisory %s)", adv.ModuleName, adv.Title, id),
			Raw: map[string]any{
				"advisory_id": id,
				"module":      adv.ModuleName,
				"severity":    adv.Severity,
			},
		})
	}

	// npm's newer audit format drops the advisories map but keeps the
	// vulnerability totals. Surface the count instead of silently
	// reporting a clean pass.
	if len(findings) == 0 && out.Metadata.Vulnerabilities.Total > 0 {
		findings = append(findings, finding.Finding{
			Tool:     NpmAudit,
			Severity: finding.Unknown,
			Title: fmt.Sprintf("npm audit reported %d vulnerabilities without advisory detail",
				out.Metadata.Vulnerabilities.Total),
		})
	}
	return findings, nil
}
