package tools

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/jsonutil"
)

// OutdatedAdapter reports stale dependencies across both ecosystems
// (pip and npm). Neither listing has a severity concept; every hit
// carries the fixed default Info. Info bullets still gate the release
// like any other finding, they just stay out of the severity summary.
type OutdatedAdapter struct{}

func (OutdatedAdapter) Tool() finding.Tool { return Outdated }

func (a OutdatedAdapter) Run(ctx context.Context, inv *Invoker) (out Outcome) {
	out = Outcome{Tool: Outdated}
	start := time.Now()
	defer func() {
		out.Duration = time.Since(start)
		if r := recover(); r != nil {
			out.Invoked = true
			out.Findings = nil
			out.ToolingError = fmt.Sprintf("adapter panic: %v", r)
		}
	}()

	var errs []string

	pipRaw, _, pipSkipped, pipErr := inv.Capture(ctx, "outdated-pip.json",
		"pip", "list", "--outdated", "--format", "json")
	if !pipSkipped {
		out.Invoked = true
		switch {
		case pipErr != nil:
			errs = append(errs, "pip: "+pipErr.Error())
		default:
			fs, err := a.parsePip(pipRaw)
			if err != nil {
				errs = append(errs, "pip: "+err.Error())
			} else {
				out.Findings = append(out.Findings, fs...)
			}
		}
	} else {
		inv.Warnf("pip not installed, skipping outdated check")
	}

	npmRaw, _, npmSkipped, npmErr := inv.Capture(ctx, "outdated-npm.json",
		"npm", "outdated", "--json")
	if !npmSkipped {
		out.Invoked = true
		switch {
		case npmErr != nil:
			errs = append(errs, "npm: "+npmErr.Error())
		default:
			fs, err := a.parseNpm(npmRaw)
			if err != nil {
				errs = append(errs, "npm: "+err.Error())
			} else {
				out.Findings = append(out.Findings, fs...)
			}
		}
	} else {
		inv.Warnf("npm not installed, skipping outdated check")
	}

	if len(errs) > 0 {
		out.ToolingError = strings.Join(errs, "; ")
	}
	return out
}

type pipOutdatedEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Latest  string `json:"latest_version"`
}

// parsePip handles `pip list --outdated --format json`. Empty output
// means nothing is outdated; pip prints an empty list either way, but
// some wrappers emit nothing at all.
func (OutdatedAdapter) parsePip(raw []byte) ([]finding.Finding, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var entries []pipOutdatedEntry
	if err := jsonutil.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	findings := make([]finding.Finding, 0, len(entries))
	for _, e := range entries {
		findings = append(findings, finding.Finding{
			Tool:     Outdated,
			Severity: finding.Info,
			Title:    fmt.Sprintf("pip: %s %s (latest %s)", e.Name, e.Version, e.Latest),
		})
	}
	return findings, nil
}

type npmOutdatedEntry struct {
	Current string `json:"current"`
	Latest  string `json:"latest"`
}

// parseNpm handles `npm outdated --json`, a map of package name to
// version info. npm prints nothing when everything is current.
func (OutdatedAdapter) parseNpm(raw []byte) ([]finding.Finding, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !jsonutil.Valid(raw) {
		return nil, finding.ErrUnparsableOutput
	}
	var entries map[string]npmOutdatedEntry
	if err := jsonutil.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", finding.ErrUnparsableOutput, err)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	findings := make([]finding.Finding, 0, len(names))
	for _, name := range names {
		e := entries[name]
		findings = append(findings, finding.Finding{
			Tool:     Outdated,
			Severity: finding.Info,
			Title:    fmt.Sprintf("npm: %s %s (latest %s)", name, e.Current, e.Latest),
		})
	}
	return findings, nil
}
