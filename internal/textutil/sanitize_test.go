package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"Images":        "Images",
		"  Text Docs  ": "Text Docs",
		"Raw/Photos":    "Raw-Photos",
		`a\b:c*d`:       "a-b-c-d",
		`what?"<>|`:     "what",
		"":              "",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestShortenPath(t *testing.T) {
	tests := []struct {
		path  string
		limit int
		want  string
	}{
		{path: "/home/me", limit: 20, want: "/home/me"},
		{path: "/home/me/Downloads", limit: 12, want: "…/Downloads"},
		{path: "/home/me/Downloads", limit: 5, want: "…oads"},
		{path: "/srv/ß/ü", limit: 4, want: "…/ü"},
		{path: "/home/me", limit: 1, want: "/home/me"},
	}
	for _, tt := range tests {
		if got := ShortenPath(tt.path, tt.limit); got != tt.want {
			t.Fatalf("ShortenPath(%q, %d) = %q, want %q", tt.path, tt.limit, got, tt.want)
		}
	}
}
