// Package duration provides canonical time constants for the codebase.
// Reference these instead of hardcoding time.Duration values so every
// timeout policy lives in one place.
package duration

import "time"

const (
	// ToolDefault bounds a single scanner invocation (5min). A tool
	// that has not exited by then becomes a tooling-error outcome
	// instead of blocking the whole run.
	ToolDefault = 5 * time.Minute

	// ToolQuick bounds fast listing tools such as outdated-dependency
	// checks (2min).
	ToolQuick = 2 * time.Minute

	// RunMax bounds the entire pipeline including report writing
	// (30min).
	RunMax = 30 * time.Minute

	// LookupTimeout bounds the PATH presence probe for a tool binary.
	LookupTimeout = 5 * time.Second
)
