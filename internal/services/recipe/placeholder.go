package recipe

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	coverPlaceholderBase = "https://picsum.photos/400/300?random="
	stepPlaceholderBase  = "https://picsum.photos/1280/720?random="
	dataURIPrefix        = "data:image/png;base64,"
)

// CoverPlaceholder is the same URL for the same recipe name.
func CoverPlaceholder(name string) string {
	return coverPlaceholderBase + escapeComponent(name)
}

// StepPlaceholder returns a placeholder keyed by seed so repeated failures differ.
func StepPlaceholder(seed string) string {
	return stepPlaceholderBase + escapeComponent(seed)
}

// escapeComponent encodes spaces as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func randomSeed() string {
	return uuid.NewString()
}

// DataURI embeds PNG bytes as an image reference.
func DataURI(png []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png)
}

// IsPlaceholder reports whether ref is a fallback rather than a generated image.
func IsPlaceholder(ref string) bool {
	return strings.HasPrefix(ref, coverPlaceholderBase) || strings.HasPrefix(ref, stepPlaceholderBase)
}
