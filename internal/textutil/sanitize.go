package textutil

import (
	"strings"
	"unicode/utf8"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

const ellipsis = "…"

// ShortenPath trims path from the left to at most limit runes, keeping the
// trailing components and marking the cut with an ellipsis. Paths that fit,
// and limits below 2, are returned unchanged.
func ShortenPath(path string, limit int) string {
	if limit < 2 || utf8.RuneCountInString(path) <= limit {
		return path
	}
	runes := []rune(path)
	tail := runes[len(runes)-(limit-1):]
	// Prefer cutting at a separator so the first shown component is whole.
	for i, r := range tail {
		if r == '/' && i < len(tail)-1 {
			return ellipsis + string(tail[i:])
		}
	}
	return ellipsis + string(tail)
}
