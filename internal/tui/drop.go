package tui

import (
	"net/url"
	"strings"
)

// ParseDroppedPath turns the text a terminal pastes for a dropped file into a
// plain path. It accepts single or double quoted paths, backslash-escaped
// spaces, and file:// URIs. Only the first line is considered.
func ParseDroppedPath(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return ""
	}

	if strings.HasPrefix(strings.ToLower(s), "file://") {
		return fromFileURI(s)
	}

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"') && last == first {
			inner := s[1 : len(s)-1]
			if first == '\'' {
				return inner
			}
			return unescape(inner)
		}
	}
	return unescape(s)
}

func fromFileURI(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return strings.TrimPrefix(s[len("file://"):], "localhost")
	}
	path := u.Path
	if u.Host != "" && u.Host != "localhost" {
		path = "//" + u.Host + path
	}
	return path
}

// unescape drops shell backslash escapes ("My\ Files" -> "My Files").
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}
