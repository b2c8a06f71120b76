package category

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FallbackCategory receives files without an extension.
const FallbackCategory = "Other Files"

// syntheticSuffix is appended to the upper-cased extension of unknown types.
const syntheticSuffix = " Files"

var builtin = map[string]string{
	// Images
	".jpg": "Images", ".jpeg": "Images", ".png": "Images", ".gif": "Images",
	".bmp": "Images", ".svg": "Images", ".tiff": "Images", ".webp": "Images",
	".heic": "Images",
	// Documents
	".pdf": "Documents", ".doc": "Documents", ".docx": "Documents",
	".rtf": "Documents", ".odt": "Documents",
	".txt": "Text Documents", ".md": "Text Documents",
	// Spreadsheets & presentations
	".xls": "Spreadsheets", ".xlsx": "Spreadsheets", ".csv": "Spreadsheets",
	".ppt": "Presentations", ".pptx": "Presentations",
	// Audio
	".mp3": "Audio", ".wav": "Audio", ".aac": "Audio", ".flac": "Audio",
	".ogg": "Audio", ".m4a": "Audio",
	// Video
	".mp4": "Videos", ".mov": "Videos", ".avi": "Videos", ".mkv": "Videos",
	".wmv": "Videos", ".flv": "Videos",
	// Archives
	".zip": "Archives", ".rar": "Archives", ".7z": "Archives", ".tar": "Archives",
	".gz": "Archives",
	// Code & scripts
	".py": "Scripts", ".js": "Scripts", ".sh": "Scripts",
	".html": "Web Files", ".css": "Web Files",
	".java": "Code", ".cpp": "Code", ".c": "Code",
	// Executables & installers
	".exe": "Executables", ".msi": "Installers", ".dmg": "Installers",
}

// Table maps lower-cased extensions (".jpg") to category names ("Images").
// The zero value is not usable; construct with Default or New.
type Table struct {
	byExt map[string]string
}

// Default returns the built-in classification table.
func Default() *Table {
	t, _ := New(nil)
	return t
}

// New returns the built-in table with overrides applied. Override keys are
// normalized the same way lookups are; a blank key or category is rejected.
func New(overrides map[string]string) (*Table, error) {
	byExt := make(map[string]string, len(builtin)+len(overrides))
	for ext, name := range builtin {
		byExt[ext] = name
	}
	for ext, name := range overrides {
		key := normalizeExt(ext)
		if key == "" {
			return nil, fmt.Errorf("category override: empty extension key %q", ext)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("category override: empty category for %q", key)
		}
		byExt[key] = name
	}
	return &Table{byExt: byExt}, nil
}

// Classify returns the destination category for a file name.
func (t *Table) Classify(name string) string {
	ext := Ext(name)
	if ext == "" {
		return FallbackCategory
	}
	if category, ok := t.byExt[foldLower(ext)]; ok {
		return category
	}
	return cases.Upper(language.Und).String(strings.TrimPrefix(ext, ".")) + syntheticSuffix
}

// Lookup reports the configured category for ext without synthesizing one.
func (t *Table) Lookup(ext string) (string, bool) {
	category, ok := t.byExt[normalizeExt(ext)]
	return category, ok
}

// Len returns the number of known extensions.
func (t *Table) Len() int {
	return len(t.byExt)
}

// Extensions returns the known extensions sorted alphabetically.
func (t *Table) Extensions() []string {
	exts := make([]string, 0, len(t.byExt))
	for ext := range t.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Categories groups known extensions by category, both sorted.
func (t *Table) Categories() []Group {
	grouped := make(map[string][]string)
	for _, ext := range t.Extensions() {
		name := t.byExt[ext]
		grouped[name] = append(grouped[name], ext)
	}
	groups := make([]Group, 0, len(grouped))
	for name, exts := range grouped {
		groups = append(groups, Group{Name: name, Extensions: exts})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

// Group is one category with the extensions that map to it.
type Group struct {
	Name       string
	Extensions []string
}

// Ext returns the extension of name including its dot, following the
// "last dot, ignoring leading dots" rule: ".bashrc" and "README" have no
// extension, "archive.tar.gz" has ".gz". A bare trailing dot ("notes.")
// counts as no extension on purpose, unlike the splitext convention that
// returns ".", so such files land in "Other Files" rather than " Files".
func Ext(name string) string {
	stem := strings.TrimLeft(name, ".")
	idx := strings.LastIndex(stem, ".")
	if idx < 0 {
		return ""
	}
	ext := stem[idx:]
	if ext == "." {
		return ""
	}
	return ext
}

// SplitExt splits name into the part before Ext(name) and the extension.
func SplitExt(name string) (string, string) {
	ext := Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

func normalizeExt(ext string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return ""
	}
	return "." + foldLower(trimmed)
}

// foldLower applies full Unicode lower-casing. Casers carry state, so one is
// built per call rather than shared between goroutines.
func foldLower(s string) string {
	return cases.Lower(language.Und).String(s)
}
