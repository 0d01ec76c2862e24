package gate

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/scan"
)

// ErrPolicyNotFound is returned when a policy file does not exist.
var ErrPolicyNotFound = errors.New("policy file not found")

// ErrInvalidPolicy is returned when a policy file is malformed.
var ErrInvalidPolicy = errors.New("invalid policy file")

// Policy controls how a scan run is turned into a pass/fail decision.
// The zero policy (and DefaultPolicy) fails on any finding of any
// severity, which is the behavior CI pipelines get without a policy
// file.
type Policy struct {
	Version string     `yaml:"version"`
	Name    string     `yaml:"name"`
	FailOn  FailOn     `yaml:"fail_on"`
	Ignore  IgnoreSpec `yaml:"ignore"`
}

// FailOn defines conditions that fail the gate. When Any is set (or
// no severity threshold is given) a single finding of any severity
// fails the run. Severity thresholds mean "fail if count > N".
type FailOn struct {
	Any      *bool `yaml:"any"`
	Critical *int  `yaml:"critical"`
	High     *int  `yaml:"high"`
	Medium   *int  `yaml:"medium"`
	Low      *int  `yaml:"low"`
}

// IgnoreSpec lists tools whose findings are excluded from evaluation.
// The tools still run and still appear in the report.
type IgnoreSpec struct {
	Tools []string `yaml:"tools"`
}

// Result is the outcome of a policy evaluation.
type Result struct {
	Pass     bool
	Failures []string
}

// DefaultPolicy returns the policy applied when no policy file is
// given: any finding from any tool fails the gate. Tooling errors and
// skipped tools never fail it.
func DefaultPolicy() *Policy {
	anyFinding := true
	return &Policy{
		Version: "1.0",
		Name:    "default",
		FailOn:  FailOn{Any: &anyFinding},
	}
}

// LoadPolicy loads and parses a policy file.
// Returns ErrPolicyNotFound if the file does not exist.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPolicyNotFound, path)
		}
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy parses policy YAML.
// Returns ErrInvalidPolicy if the data is malformed.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if p.Version == "" {
		p.Version = "1.0"
	}
	return &p, nil
}

// failOnAny reports whether the policy fails on any finding. That is
// the case when Any is explicitly true, or when no condition is set
// at all: an empty fail_on block must not silently disable the gate.
func (p *Policy) failOnAny() bool {
	if p.FailOn.Any != nil {
		return *p.FailOn.Any
	}
	return p.FailOn.Critical == nil && p.FailOn.High == nil &&
		p.FailOn.Medium == nil && p.FailOn.Low == nil
}

func (p *Policy) ignored(tool finding.Tool) bool {
	for _, t := range p.Ignore.Tools {
		if finding.Tool(t) == tool {
			return true
		}
	}
	return false
}

// Evaluate applies the policy to a completed run. Only the typed
// finding counts participate; tooling errors and skipped tools do not
// fail the gate.
func (p *Policy) Evaluate(run *scan.Run) Result {
	total := 0
	counts := make(map[finding.Severity]int)
	for _, out := range run.Outcomes {
		if p.ignored(out.Tool) {
			continue
		}
		total += len(out.Findings)
		for _, f := range out.Findings {
			counts[f.Severity]++
		}
	}

	var failures []string
	if p.failOnAny() && total > 0 {
		failures = append(failures, fmt.Sprintf("%d finding(s) detected", total))
	}
	for _, th := range []struct {
		sev   finding.Severity
		limit *int
	}{
		{finding.Critical, p.FailOn.Critical},
		{finding.High, p.FailOn.High},
		{finding.Medium, p.FailOn.Medium},
		{finding.Low, p.FailOn.Low},
	} {
		if th.limit != nil && counts[th.sev] > *th.limit {
			failures = append(failures, fmt.Sprintf("%s findings: %d (threshold: %d)",
				th.sev, counts[th.sev], *th.limit))
		}
	}

	return Result{Pass: len(failures) == 0, Failures: failures}
}
