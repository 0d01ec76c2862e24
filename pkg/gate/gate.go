// Package gate turns a completed scan run into a release decision and
// a semantic exit code for CI/CD pipelines.
//
// Exit codes:
//   - 0: Pass (no findings)
//   - 1: Findings detected
//   - 2: Report could not be written
//   - 3: Invalid configuration
//   - 5: Scan interrupted
package gate

import (
	"fmt"
	"sync"

	"github.com/relgate/relgate/pkg/scan"
)

// Code is a semantic exit code for CI/CD pipelines.
type Code int

const (
	// Pass indicates the scan completed with no findings.
	Pass Code = 0
	// Findings indicates at least one tool reported at least one finding.
	Findings Code = 1
	// ReportError indicates the report file could not be written.
	ReportError Code = 2
	// Configuration indicates invalid configuration was provided.
	Configuration Code = 3
	// Interrupted indicates the scan was interrupted (e.g. SIGINT).
	Interrupted Code = 5
)

var codeDescriptions = map[Code]string{
	Pass:          "no security findings detected",
	Findings:      "one or more security findings detected",
	ReportError:   "report file could not be written",
	Configuration: "invalid configuration provided",
	Interrupted:   "scan was interrupted by user or signal",
}

// String returns a human-readable description of the code.
func (c Code) String() string {
	if s, ok := codeDescriptions[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown exit code %d", int(c))
}

// Manager tracks pipeline outcomes and determines the exit code.
// All methods are safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	findings    int
	configError bool
	reportError bool
	interrupted bool
}

// NewManager returns a Manager in the passing state.
func NewManager() *Manager {
	return &Manager{}
}

// RecordRun folds a completed scan run into the gate state.
func (m *Manager) RecordRun(run *scan.Run, policy *Policy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if policy == nil {
		policy = DefaultPolicy()
	}
	if !policy.Evaluate(run).Pass {
		m.findings++
	}
}

// SetConfigError marks that a configuration error occurred.
func (m *Manager) SetConfigError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configError = true
}

// SetReportError marks that the report could not be written.
func (m *Manager) SetReportError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportError = true
}

// SetInterrupted marks that the scan was interrupted.
func (m *Manager) SetInterrupted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interrupted = true
}

// ExitCode returns the exit code and a human-readable reason.
//
// Priority order (highest to lowest):
//  1. Interrupted
//  2. Configuration error
//  3. Report write failure
//  4. Findings detected
//  5. Pass
func (m *Manager) ExitCode() (Code, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.interrupted:
		return Interrupted, codeDescriptions[Interrupted]
	case m.configError:
		return Configuration, codeDescriptions[Configuration]
	case m.reportError:
		return ReportError, codeDescriptions[ReportError]
	case m.findings > 0:
		return Findings, codeDescriptions[Findings]
	}
	return Pass, codeDescriptions[Pass]
}
