package tools

import (
	"context"
	"fmt"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/jsonutil"
)

// TrivyAdapter runs trivy against the container image built this run.
// When no image reference is configured the adapter reports a skip,
// same as an absent binary: an image-less run is not a failure.
type TrivyAdapter struct{}

func (TrivyAdapter) Tool() finding.Tool { return Trivy }

func (a TrivyAdapter) Run(ctx context.Context, inv *Invoker) Outcome {
	if inv.Image == "" {
		inv.Warnf("no container image configured, skipping trivy")
		return Outcome{Tool: Trivy}
	}
	return inv.RunTool(ctx, Trivy, "trivy",
		[]string{"image", "--format", "json", "--quiet", inv.Image},
		a.parse)
}

type trivyVulnerability struct {
	ID        string `json:"VulnerabilityID"`
	PkgName   string `json:"PkgName"`
	Installed string `json:"InstalledVersion"`
	Severity  string `json:"Severity"`
	Title     string `json:"Title"`
}

type trivyResult struct {
	Target          string               `json:"Target"`
	Vulnerabilities []trivyVulnerability `json:"Vulnerabilities"`
}

type trivyOutput struct {
	Results []trivyResult `json:"Results"`
}

// trivySeverity maps trivy's uppercase CRITICAL..UNKNOWN vocabulary.
func trivySeverity(s string) finding.Severity {
	switch s {
	case "CRITICAL":
		return finding.Critical
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

func (TrivyAdapter) parse(raw []byte) ([]finding.Finding, error) {
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var out trivyOutput
	if err := jsonutil.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	var findings []finding.Finding
	for _, res := range out.Results {
		for _, v := range res.Vulnerabilities {
			title := v.Title
			if title == "" {
				title = v.ID
			}
			findings = append(findings, finding.Finding{
				Tool:     Trivy,
				Severity: trivySeverity(v.Severity),
				Title:    fmt.Sprintf("%s %s: %s (%s)", v.PkgName, v.Installed, title, v.ID),
				File:     res.Target,
				Raw: map[string]any{
					"vulnerability_id": v.ID,
					"package":          v.PkgName,
					"severity":         v.Severity,
				},
			})
		}
	}
	return findings, nil
}
