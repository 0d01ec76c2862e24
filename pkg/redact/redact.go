// Package redact masks sensitive values in log lines and report text.
//
// Scanner output and phase logging can echo fragments of the scanned
// tree, which may include credentials the secret scanner just flagged.
// Everything relgate prints or persists outside the raw artifact files
// passes through Mask first.
package redact

import "regexp"

type rule struct {
	pattern *regexp.Regexp
	mask    string
}

// Masking rules for common credential shapes: assignments of tokens,
// passwords and keys, plus inline SSH public key material.
var rules = []rule{
	{regexp.MustCompile(`(?i)token[:=]\s*['"]?[\w-]+['"]?`), "token=***"},
	{regexp.MustCompile(`(?i)password[:=]\s*['"]?\S+['"]?`), "password=***"},
	{regexp.MustCompile(`(?i)secret[:=]\s*['"]?[\w-]+['"]?`), "secret=***"},
	{regexp.MustCompile(`(?i)api[_-]?key[:=]\s*['"]?[\w-]+['"]?`), "api_key=***"},
	{regexp.MustCompile(`(?i)\bkey[:=]\s*['"]?[\w-]+['"]?`), "key=***"},
	{regexp.MustCompile(`ssh-(?:rsa|ed25519|dss)\s+\S+`), "ssh-key-***"},
}

// Mask replaces recognized credential patterns in s with fixed
// placeholders. The original string is returned unchanged when no
// pattern matches.
func Mask(s string) string {
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.mask)
	}
	return s
}
