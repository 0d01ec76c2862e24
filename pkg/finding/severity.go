package finding

// Severity represents the severity level of a security finding.
// All values are lowercase strings; tool-specific vocabularies are
// mapped onto this shared scale by the adapter that produced the
// finding.
type Severity string

const (
	// Critical represents immediate compromise (exploitable RCE,
	// leaked production credentials).
	Critical Severity = "critical"

	// High represents significant impact requiring prompt fix
	// (known-vulnerable dependency, committed secret).
	High Severity = "high"

	// Medium represents moderate impact (weak crypto usage,
	// moderate advisory).
	Medium Severity = "medium"

	// Low represents limited impact (hardcoded tmp paths, minor
	// advisories).
	Low Severity = "low"

	// Info represents informational findings with no direct
	// security impact (outdated but not vulnerable dependencies).
	Info Severity = "info"

	// Unknown is assigned when a tool reports a severity value
	// outside its documented vocabulary.
	Unknown Severity = "unknown"
)

// IsValid reports whether s is a recognized severity level.
func (s Severity) IsValid() bool {
	switch s {
	case Critical, High, Medium, Low, Info, Unknown:
		return true
	}
	return false
}

// Score returns a numeric score for display grouping and sorting.
// Critical=5, High=4, Medium=3, Low=2, Info=1, Unknown=0.
//
// The score orders report output only. Gating never consults it: the
// gate fails on any finding regardless of severity.
func (s Severity) Score() int {
	switch s {
	case Critical:
		return 5
	case High:
		return 4
	case Medium:
		return 3
	case Low:
		return 2
	case Info:
		return 1
	default:
		return 0
	}
}

// String returns the severity as a string.
func (s Severity) String() string {
	return string(s)
}

// Marker returns the literal bracketed token embedded in rendered
// report bullets, e.g. "[HIGH]". The severity summarizer counts these
// tokens over the rendered document, so the marker format is a
// compatibility contract, not a display preference.
func (s Severity) Marker() string {
	switch s {
	case Critical:
		return "[CRITICAL]"
	case High:
		return "[HIGH]"
	case Medium:
		return "[MEDIUM]"
	case Low:
		return "[LOW]"
	case Info:
		return "[INFO]"
	default:
		return "[UNKNOWN]"
	}
}

// Display returns the severities in report display order, most severe
// first. Unknown is excluded: findings with unknown severity render
// with their marker but are never summarized.
func Display() []Severity {
	return []Severity{Critical, High, Medium, Low, Info}
}
