// Package match implements the name identity rule of the ledger.
//
// Two names refer to the same party when the first, read as a regular
// expression, matches the start of the second, ignoring case. This is
// deliberately looser than equality: "bob" identifies "Bobby", and a
// partial name is enough to query a counterparty. Patterns that are not
// valid RE2 syntax are treated as literal prefixes.
package match

import (
	"regexp"
	"strings"
)

// Matches reports whether pattern matches the start of subject, case-insensitively.
func Matches(pattern, subject string) bool {
	if _, err := regexp.Compile(pattern); err != nil {
		return strings.HasPrefix(strings.ToLower(subject), strings.ToLower(pattern))
	}
	return regexp.MustCompile(`(?i)^(?:` + pattern + `)`).MatchString(subject)
}
