package finding

import "errors"

// Sentinel errors for common adapter failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrToolNotFound indicates the scanner binary is not installed
	// on PATH. Treated as a skip, never a failure.
	ErrToolNotFound = errors.New("finding: tool not found")

	// ErrUnparsableOutput indicates the tool ran but produced output
	// the adapter could not interpret.
	ErrUnparsableOutput = errors.New("finding: unparsable tool output")

	// ErrToolTimeout indicates the tool did not finish within the
	// adapter deadline.
	ErrToolTimeout = errors.New("finding: tool timed out")
)
