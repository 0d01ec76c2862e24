package ui

import (
	"strings"
	"testing"

	"github.com/relgate/relgate/pkg/finding"
)

func TestSeverityBadge(t *testing.T) {
	DisableColor()

	for _, s := range finding.Display() {
		badge := SeverityBadge(s)
		if !strings.Contains(badge, strings.ToLower(s.String())) {
			t.Errorf("badge for %s missing severity text: %q", s, badge)
		}
		if !strings.HasPrefix(badge, "[") || !strings.HasSuffix(badge, "]") {
			t.Errorf("badge for %s not bracketed: %q", s, badge)
		}
	}
}

func TestSeverityStyleUnknownFallsBackToMuted(t *testing.T) {
	// Unknown severities must still render, just without a severity color.
	got := SeverityStyle(finding.Severity("bogus"))
	if got.GetBold() {
		t.Error("fallback style should not be bold")
	}
}
