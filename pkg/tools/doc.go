// Package tools contains one adapter per external security scanner.
//
// An adapter owns everything tool-specific: the command line, the raw
// output schema, and the mapping from the tool's severity vocabulary
// onto the shared finding.Severity scale. The orchestration layer in
// pkg/scan only ever sees the Adapter interface and Outcome values.
//
// Adapter failure policy: a missing binary is a skip, a non-zero tool
// exit is expected behavior (scanners exit non-zero when they find
// issues), and unparsable output becomes a tooling-error outcome.
// Nothing an adapter does can abort the surrounding run.
package tools
