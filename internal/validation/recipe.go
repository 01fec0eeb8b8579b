package validation

import (
	"regexp"
	"strings"
)

var placeholderValues = map[string]bool{
	"n/a":           true,
	"na":            true,
	"none":          true,
	"null":          true,
	"unknown":       true,
	"not specified": true,
	"not available": true,
	"tbd":           true,
	"todo":          true,
	"placeholder":   true,
	"-":             true,
	"...":           true,
}

var (
	bracketedPattern = regexp.MustCompile(`^[\[<{(]\s*[^\]>})]*\s*[\]>})]$`)
	repeatedPattern  = regexp.MustCompile(`^(?i)(x+|\?+|\.+|-+)$`)
)

// DetectPlaceholders reports whether a generated text entry carries no real content.
func DetectPlaceholders(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	if placeholderValues[strings.ToLower(t)] {
		return true
	}
	return bracketedPattern.MatchString(t) || repeatedPattern.MatchString(t)
}

// CleanEntries trims entries and drops blank and placeholder ones. The result is
// never nil.
func CleanEntries(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if DetectPlaceholders(e) {
			continue
		}
		out = append(out, strings.TrimSpace(e))
	}
	return out
}
