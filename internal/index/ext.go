package index

import (
	"path/filepath"
	"sort"
	"strings"
)

// ExtensionSet is a case-insensitive set of file extensions without the
// leading dot.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from exts. Leading dots are ignored.
func NewExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(e, "."))
		if e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// Allows reports whether name carries an extension from the set.
func (s ExtensionSet) Allows(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	_, ok := s[strings.ToLower(ext[1:])]
	return ok
}

// List returns the extensions in sorted order.
func (s ExtensionSet) List() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// stem strips the final extension from a file name.
func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
