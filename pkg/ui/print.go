package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/relgate/relgate/pkg/finding"
	"github.com/relgate/relgate/pkg/redact"
)

// Phase logging: one terse line per pipeline phase, to stderr so
// report/JSON output on stdout stays clean. Every message passes
// through redact.Mask before printing.

// PrintSuccess prints a success message (to stderr).
func PrintSuccess(message string) {
	fmt.Fprintln(os.Stderr, PassStyle.Render("  [+] "+redact.Mask(message)))
}

// PrintError prints an error message (to stderr).
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, FailStyle.Render("  [X] "+redact.Mask(message)))
}

// PrintWarning prints a warning message (to stderr).
func PrintWarning(message string) {
	fmt.Fprintln(os.Stderr, WarnStyle.Render("  [!] "+redact.Mask(message)))
}

// PrintInfo prints an info message (to stderr).
func PrintInfo(message string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", MutedStyle.Render("*"), redact.Mask(message))
}

// PrintToolResult prints one per-tool result line in nuclei style:
// [15:04:05] [tool] 3 finding(s) (1.2s)
func PrintToolResult(tool finding.Tool, status string, elapsed time.Duration) {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(MutedStyle.Render("["))
	b.WriteString(time.Now().Format("15:04:05"))
	b.WriteString(MutedStyle.Render("] ["))
	b.WriteString(TitleStyle.Render(string(tool)))
	b.WriteString(MutedStyle.Render("] "))
	b.WriteString(redact.Mask(status))
	if elapsed > 0 {
		b.WriteString(MutedStyle.Render(fmt.Sprintf(" (%s)", elapsed.Round(time.Millisecond))))
	}
	fmt.Fprintln(os.Stderr, b.String())
}

// PrintGate prints the terminal PASS/FAIL line.
func PrintGate(pass bool) {
	if pass {
		fmt.Fprintln(os.Stderr, PassStyle.Render("  [+] gate: PASS"))
		return
	}
	fmt.Fprintln(os.Stderr, FailStyle.Render("  [X] gate: FAIL"))
}
