package cicd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGitHubActions(t *testing.T) {
	g := NewGenerator()
	cfg := DefaultConfig(PlatformGitHubActions)
	cfg.Image = "registry.local/app:latest"
	cfg.SkipTools = []string{"outdated"}

	out, err := g.Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "name: Security Release Gate")
	assert.Contains(t, out, "push:")
	assert.Contains(t, out, "pull_request:")
	assert.Contains(t, out, "- main")
	assert.Contains(t, out, "relgate scan -dir . -report-dir reports -image registry.local/app:latest -skip outdated")
	assert.Contains(t, out, "${{ env.RELGATE_VERSION }}")
	assert.Contains(t, out, "upload-artifact")
	assert.NotContains(t, out, "schedule:")
}

func TestGenerateGitLabCI(t *testing.T) {
	g := NewGenerator()
	cfg := DefaultConfig(PlatformGitLabCI)
	cfg.PolicyFile = "gate-policy.yaml"
	cfg.ReportArtifact = false

	out, err := g.Generate(cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "stage: security")
	assert.Contains(t, out, "-policy gate-policy.yaml")
	assert.NotContains(t, out, "artifacts:")
}

func TestGenerateScheduledTrigger(t *testing.T) {
	g := NewGenerator()
	cfg := DefaultConfig(PlatformGitHubActions)
	cfg.OnSchedule = true
	cfg.ScheduleCron = "0 3 * * *"

	out, err := g.Generate(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "cron: '0 3 * * *'")
}

func TestGenerateUnsupportedPlatform(t *testing.T) {
	g := NewGenerator()
	_, err := g.Generate(&TemplateConfig{Platform: "jenkins"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported platform")
}

func TestListPlatforms(t *testing.T) {
	g := NewGenerator()
	assert.Len(t, g.ListPlatforms(), 2)
	for _, p := range g.ListPlatforms() {
		assert.True(t, g.HasPlatform(p))
	}
}

func TestGeneratedTemplatesAreValidYAML(t *testing.T) {
	g := NewGenerator()
	for _, p := range g.ListPlatforms() {
		cfg := DefaultConfig(p)
		cfg.OnSchedule = true
		cfg.ScheduleCron = "0 0 * * *"
		cfg.Image = "app:latest"
		cfg.PolicyFile = "policy.yaml"

		out, err := g.Generate(cfg)
		require.NoError(t, err)
		assert.NoError(t, Validate(out), "platform %s", p)
	}
}

func TestScanArgsDefault(t *testing.T) {
	args := DefaultConfig(PlatformGitHubActions).ScanArgs()
	assert.Equal(t, "scan -dir . -report-dir reports", args)
	assert.False(t, strings.Contains(args, "-image"))
}
