// Package cicd provides CI/CD pipeline templates for the release gate
package cicd

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Platform represents a CI/CD platform
type Platform string

const (
	PlatformGitHubActions Platform = "github-actions"
	PlatformGitLabCI      Platform = "gitlab-ci"
)

// TemplateConfig configures the generated CI/CD template
type TemplateConfig struct {
	Platform       Platform `json:"platform"`
	Image          string   `json:"image"`            // Container image for trivy (empty = skip)
	SkipTools      []string `json:"skip_tools"`       // Tools to skip in the pipeline
	PolicyFile     string   `json:"policy_file"`      // Gate policy YAML path
	OnPush         bool     `json:"on_push"`          // Trigger on push
	OnPullRequest  bool     `json:"on_pull_request"`  // Trigger on PR
	OnSchedule     bool     `json:"on_schedule"`      // Trigger on schedule
	ScheduleCron   string   `json:"schedule_cron"`    // e.g., "0 0 * * *"
	Branches       []string `json:"branches"`         // Branch filter
	ReportArtifact bool     `json:"report_artifact"`  // Upload the markdown report
	TimeoutMinutes int      `json:"timeout_minutes"`  // Job timeout
	RelgateVersion string   `json:"relgate_version"`  // Version to install
}

// DefaultConfig returns a default template configuration
func DefaultConfig(platform Platform) *TemplateConfig {
	return &TemplateConfig{
		Platform:       platform,
		OnPush:         true,
		OnPullRequest:  true,
		Branches:       []string{"main", "master"},
		ReportArtifact: true,
		TimeoutMinutes: 30,
		RelgateVersion: "latest",
	}
}

// Generator generates CI/CD templates
type Generator struct {
	templates map[Platform]*template.Template
}

// NewGenerator creates a new template generator
func NewGenerator() *Generator {
	g := &Generator{
		templates: make(map[Platform]*template.Template),
	}
	g.templates[PlatformGitHubActions] = template.Must(template.New("github-actions").Parse(githubActionsTemplate))
	g.templates[PlatformGitLabCI] = template.Must(template.New("gitlab-ci").Parse(gitlabCITemplate))
	return g
}

// Generate creates a CI/CD template from the configuration
func (g *Generator) Generate(config *TemplateConfig) (string, error) {
	tmpl, ok := g.templates[config.Platform]
	if !ok {
		return "", fmt.Errorf("unsupported platform: %s", config.Platform)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, config); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}
	return buf.String(), nil
}

// ListPlatforms returns all supported platforms
func (g *Generator) ListPlatforms() []Platform {
	return []Platform{PlatformGitHubActions, PlatformGitLabCI}
}

// HasPlatform checks if a platform is supported
func (g *Generator) HasPlatform(platform Platform) bool {
	_, ok := g.templates[platform]
	return ok
}

// Validate checks that a generated template is well-formed YAML.
// Template edits drift; this catches broken output before it lands
// in a repository's pipeline config.
func Validate(doc string) error {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
		return fmt.Errorf("generated template is not valid YAML: %w", err)
	}
	return nil
}

// ScanArgs renders the relgate scan invocation shared by all templates.
func (c *TemplateConfig) ScanArgs() string {
	args := "scan -dir . -report-dir reports"
	if c.Image != "" {
		args += " -image " + c.Image
	}
	for _, t := range c.SkipTools {
		args += " -skip " + t
	}
	if c.PolicyFile != "" {
		args += " -policy " + c.PolicyFile
	}
	return args
}

// GitHub Actions template
const githubActionsTemplate = `# Security release gate with relgate
# Auto-generated CI/CD template

name: Security Release Gate

on:
{{- if .OnPush }}
  push:
    branches:
{{- range .Branches }}
      - {{ . }}
{{- end }}
{{- end }}
{{- if .OnPullRequest }}
  pull_request:
    branches:
{{- range .Branches }}
      - {{ . }}
{{- end }}
{{- end }}
{{- if .OnSchedule }}
  schedule:
    - cron: '{{ .ScheduleCron }}'
{{- end }}
  workflow_dispatch:

env:
  RELGATE_VERSION: {{ .RelgateVersion }}

jobs:
  security-gate:
    name: Security Gate
    runs-on: ubuntu-latest
    timeout-minutes: {{ .TimeoutMinutes }}
    steps:
      - name: Checkout
        uses: actions/checkout@v4

      - name: Set up Go
        uses: actions/setup-go@v5
        with:
          go-version: stable

      - name: Install relgate
        run: go install github.com/relgate/relgate/cmd/relgate@${{ "{{" }} env.RELGATE_VERSION {{ "}}" }}

      - name: Run security gate
        run: relgate {{ .ScanArgs }}
{{- if .ReportArtifact }}

      - name: Upload report
        if: always()
        uses: actions/upload-artifact@v4
        with:
          name: security-report
          path: reports/
{{- end }}
`

// GitLab CI template
const gitlabCITemplate = `# Security release gate with relgate
# Auto-generated CI/CD template

stages:
  - security

security-gate:
  stage: security
  image: golang:1.24
  timeout: {{ .TimeoutMinutes }}m
  script:
    - go install github.com/relgate/relgate/cmd/relgate@{{ .RelgateVersion }}
    - relgate {{ .ScanArgs }}
{{- if .ReportArtifact }}
  artifacts:
    when: always
    paths:
      - reports/
{{- end }}
{{- if .OnSchedule }}
  rules:
    - if: '$CI_PIPELINE_SOURCE == "schedule"'
    - if: '$CI_PIPELINE_SOURCE == "push"'
{{- end }}
`
