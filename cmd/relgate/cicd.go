package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/relgate/relgate/pkg/cicd"
	"github.com/relgate/relgate/pkg/config"
	"github.com/relgate/relgate/pkg/ui"
)

// runCicd generates a pipeline template to stdout or a file.
func runCicd(args []string) int {
	fs := flag.NewFlagSet("cicd", flag.ContinueOnError)
	platform := fs.String("platform", string(cicd.PlatformGitHubActions), "CI/CD platform: github-actions, gitlab-ci")
	image := fs.String("image", "", "Container image to scan with trivy")
	policyFile := fs.String("policy", "", "Gate policy YAML path to reference")
	output := fs.String("o", "", "Output file (default: stdout)")
	var skip config.StringSliceFlag
	fs.Var(&skip, "skip", "Tool name(s) to skip in the generated pipeline")

	if err := fs.Parse(args); err != nil {
		return 3
	}

	g := cicd.NewGenerator()
	if !g.HasPlatform(cicd.Platform(*platform)) {
		ui.PrintError(fmt.Sprintf("unsupported platform %q (supported: %v)", *platform, g.ListPlatforms()))
		return 3
	}

	cfg := cicd.DefaultConfig(cicd.Platform(*platform))
	cfg.Image = *image
	cfg.SkipTools = skip
	cfg.PolicyFile = *policyFile
	if version != "dev" {
		cfg.RelgateVersion = version
	}

	out, err := g.Generate(cfg)
	if err != nil {
		ui.PrintError(err.Error())
		return 3
	}
	if err := cicd.Validate(out); err != nil {
		ui.PrintError(err.Error())
		return 3
	}

	if *output == "" {
		fmt.Print(out)
		return 0
	}
	if err := os.WriteFile(*output, []byte(out), 0o644); err != nil {
		ui.PrintError(err.Error())
		return 2
	}
	ui.PrintSuccess("template written to " + *output)
	return 0
}
