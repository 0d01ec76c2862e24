// Command relgate runs the security scanners against a repository,
// writes the consolidated markdown report, and exits with a semantic
// code for the CI release gate.
package main

import (
	"fmt"
	"os"

	"github.com/relgate/relgate/pkg/gate"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		// Bare invocation runs the default scan.
		os.Exit(int(runScan(nil)))
	}

	switch os.Args[1] {
	case "scan":
		os.Exit(int(runScan(os.Args[2:])))
	case "cicd", "ci":
		os.Exit(runCicd(os.Args[2:]))
	case "-v", "--version", "version":
		fmt.Println("relgate " + version)
		os.Exit(0)
	case "-h", "--help", "help":
		printUsage()
		os.Exit(0)
	default:
		// Assume flags for the default scan command.
		os.Exit(int(runScan(os.Args[1:])))
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `relgate %s - security scan release gate

Usage:
  relgate scan [flags]     Run the scanners, write the report, gate the build
  relgate cicd [flags]     Generate a CI/CD pipeline template
  relgate version          Print version

Scan flags:
  -dir, -d       Repository directory to scan (default ".")
  -image         Container image to scan with trivy (empty = skip)
  -timeout       Per-tool timeout in seconds (default 300)
  -c             Concurrent tool runs (default: one per tool)
  -skip          Tool name(s) to skip - comma-separated or repeated
  -report, -o    Report file path (default: ./security-report-<date>.md)
  -report-dir    Directory for the date-stamped report
  -artifacts     Directory for raw tool output (empty = discard)
  -policy        Gate policy YAML file (default: fail on any finding)
  -no-color, -nc Disable colored output
  -verbose, -v   Verbose output

Exit codes:
  %d  %s
  %d  %s
  %d  %s
  %d  %s
  %d  %s
`, version,
		int(gate.Pass), gate.Pass,
		int(gate.Findings), gate.Findings,
		int(gate.ReportError), gate.ReportError,
		int(gate.Configuration), gate.Configuration,
		int(gate.Interrupted), gate.Interrupted)
}
