package tools

import (
	"context"
	"time"

	"github.com/relgate/relgate/pkg/finding"
)

// Canonical tool identities. The pipeline runs adapters in the fixed
// order returned by All(); ordering affects report layout only, never
// correctness, since no adapter consumes another's output.
const (
	Bandit   finding.Tool = "bandit"
	Safety   finding.Tool = "safety"
	NpmAudit finding.Tool = "npm-audit"
	Trivy    finding.Tool = "trivy"
	Gitleaks finding.Tool = "gitleaks"
	Semgrep  finding.Tool = "semgrep"
	Outdated finding.Tool = "outdated"
)

// Adapter invokes one external analysis tool and normalizes its
// output. Implementations must be safe for concurrent use with other
// adapters: each one writes to its own artifact path and shares no
// mutable state.
type Adapter interface {
	// Tool returns the adapter's identity.
	Tool() finding.Tool

	// Run invokes the tool through inv and returns its outcome.
	// Run never returns an error: every failure mode is folded into
	// the outcome (skipped, tooling error) so a broken tool cannot
	// abort the scan.
	Run(ctx context.Context, inv *Invoker) Outcome
}

// Outcome is the per-tool execution result.
type Outcome struct {
	Tool finding.Tool `json:"tool"`

	// Invoked is false when the tool binary was unavailable. A skip,
	// not a failure.
	Invoked bool `json:"invoked"`

	Findings []finding.Finding `json:"findings,omitempty"`

	// ToolingError is set when the tool ran but its output could not
	// be interpreted (malformed JSON, unexpected schema, timeout).
	// Distinct from a clean zero-finding pass, and rendered as such.
	ToolingError string `json:"tooling_error,omitempty"`

	Duration time.Duration `json:"duration,omitempty"`
	ExitCode int           `json:"exit_code,omitempty"`
}

// Clean reports whether the tool ran and produced neither findings
// nor a tooling error.
func (o Outcome) Clean() bool {
	return o.Invoked && o.ToolingError == "" && len(o.Findings) == 0
}

// Skipped reports whether the tool binary was unavailable.
func (o Outcome) Skipped() bool {
	return !o.Invoked
}

// All returns the adapters in canonical pipeline order:
// source static analysis, dependency vulnerabilities (both
// ecosystems), container image, secrets, general SAST, and the
// outdated-dependency report last.
func All() []Adapter {
	return []Adapter{
		&BanditAdapter{},
		&SafetyAdapter{},
		&NpmAuditAdapter{},
		&TrivyAdapter{},
		&GitleaksAdapter{},
		&SemgrepAdapter{},
		&OutdatedAdapter{},
	}
}

// Select returns the adapters from All() whose tool is not in skip.
// Order is preserved.
func Select(skip map[finding.Tool]bool) []Adapter {
	all := All()
	if len(skip) == 0 {
		return all
	}
	out := make([]Adapter, 0, len(all))
	for _, a := range all {
		if !skip[a.Tool()] {
			out = append(out, a)
		}
	}
	return out
}
