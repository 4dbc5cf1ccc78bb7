package gallery

import (
	"fmt"
	"regexp"
	"strings"
)

// SlugMode selects how URL segments are mapped back to folder and file names.
type SlugMode int

const (
	// SlugLookup resolves a segment by comparing it against ToSlug of every
	// name in the directory, so any link produced by List resolves.
	SlugLookup SlugMode = iota

	// SlugLegacy decodes the folder segment with FolderName and uses the file
	// segment literally with ".html" appended. File names containing spaces
	// cannot be reached this way.
	SlugLegacy
)

// String returns the name used for the mode in gallery.cfg.
func (m SlugMode) String() string {
	switch m {
	case SlugLookup:
		return "lookup"
	case SlugLegacy:
		return "legacy"
	}
	return fmt.Sprintf("SlugMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m SlugMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SlugMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "lookup":
		*m = SlugLookup
	case "legacy":
		*m = SlugLegacy
	default:
		return fmt.Errorf("unknown slug mode %q", text)
	}
	return nil
}

var space = regexp.MustCompile(`\s`)

// ToSlug converts a folder or file name into a URL segment. Every
// whitespace character becomes a dash and a trailing ".html" is removed.
func ToSlug(name string) string {
	return strings.TrimSuffix(space.ReplaceAllString(name, "-"), ".html")
}

// FolderName turns a folder slug back into a folder name by replacing
// every dash with a space. Names that contain literal dashes do not survive
// the round trip.
func FolderName(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// validSegment reports whether s can name a direct child of a directory.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}
