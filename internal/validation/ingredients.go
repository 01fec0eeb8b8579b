package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxIngredients      = 30
	MaxIngredientLength = 80
)

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == '\n' || r == '\r'
}

// NormalizeIngredients splits free-form ingredient text on commas, semicolons and
// newlines. Entries are trimmed and collapsed to single spaces. Blank entries and
// case-insensitive duplicates are dropped. At most MaxIngredients entries of at most
// MaxIngredientLength runes each are kept.
func NormalizeIngredients(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.FieldsFunc(text, isSeparator) {
		item := strings.Join(strings.FieldsFunc(part, unicode.IsSpace), " ")
		if item == "" {
			continue
		}
		if utf8.RuneCountInString(item) > MaxIngredientLength {
			item = strings.TrimSpace(string([]rune(item)[:MaxIngredientLength]))
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if len(out) == MaxIngredients {
			break
		}
	}
	return out
}

// JoinIngredients renders normalized ingredients for a prompt.
func JoinIngredients(items []string) string {
	return strings.Join(items, ", ")
}
