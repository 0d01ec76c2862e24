package finding

import "strconv"

// Tool identifies the external scanner that produced a finding.
// The canonical values live in pkg/tools next to their adapters.
type Tool string

// Finding is one normalized unit of scanner evidence. It is created
// once by an adapter at parse time and never mutated afterwards; the
// ScanRun that produced it owns the value for its lifetime.
type Finding struct {
	Tool     Tool     `json:"tool"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`

	// File and Line locate the finding in the scanned tree when the
	// tool reports a location. Line is 0 when unknown.
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`

	// Raw preserves the tool-specific record the finding was parsed
	// from, for artifact inspection and debugging. Opaque to every
	// consumer.
	Raw map[string]any `json:"raw,omitempty"`
}

// Location returns "file:line", "file", or "" depending on what the
// producing tool reported.
func (f Finding) Location() string {
	if f.File == "" {
		return ""
	}
	if f.Line <= 0 {
		return f.File
	}
	return f.File + ":" + strconv.Itoa(f.Line)
}

// CountBySeverity aggregates findings by their typed severity field.
// This is the source-of-truth signal; the report summarizer derives a
// second, legacy-compatible count by re-scanning rendered text for
// bracket markers. The two align whenever every finding renders with
// a recognized marker.
func CountBySeverity(findings []Finding) map[Severity]int {
	counts := make(map[Severity]int, len(findings))
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}
