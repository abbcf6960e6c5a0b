package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"unicode"

	"github.com/spf13/afero"
)

// ScanOptions tunes ScanHours.
type ScanOptions struct {
	// MinKey drops every hour bucket below it. Zero keeps all hours.
	MinKey int
}

// entry is a directory child with symlinks already resolved.
type entry struct {
	name  string
	path  string
	isDir bool
}

// readDir lists dir and resolves symlinked children, dropping dangling ones
// and anything that is neither a regular file nor a directory.
func readDir(fsys afero.Fs, dir string) ([]entry, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, dir, err)
	}
	out := make([]entry, 0, len(infos))
	for _, fi := range infos {
		p := filepath.Join(dir, fi.Name())
		mode := fi.Mode()
		if mode&os.ModeSymlink != 0 {
			target, err := fsys.Stat(p)
			if err != nil {
				continue
			}
			mode = target.Mode()
		}
		switch {
		case mode.IsDir():
			out = append(out, entry{name: fi.Name(), path: p, isDir: true})
		case mode.IsRegular():
			out = append(out, entry{name: fi.Name(), path: p})
		}
	}
	return out, nil
}

// ParseHour parses a bucket name such as "07" or "23". Only plain decimal
// digits in [0,23] are accepted.
func ParseHour(name string) (int, bool) {
	if name == "" || len(name) > 2 {
		return 0, false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	h, err := strconv.Atoi(name)
	if err != nil || h > 23 {
		return 0, false
	}
	return h, true
}

// ScanHours indexes the main collection by hour. Directories named after an
// hour become Groups, image files whose stem is an hour become Entries.
// Everything else is ignored. It fails with ErrNotFound when dir cannot be
// listed and with ErrEmpty when no hour bucket survives opts.MinKey.
func ScanHours(fsys afero.Fs, dir string, exts ExtensionSet, opts ScanOptions) (*Index[int], error) {
	entries, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	b := newBuilder[int]()
	for _, e := range entries {
		if e.isDir {
			if h, ok := ParseHour(e.name); ok {
				b.add(h, Group(e.path))
			}
			continue
		}
		if !exts.Allows(e.name) {
			continue
		}
		if h, ok := ParseHour(stem(e.name)); ok {
			b.add(h, Entry(e.path))
		}
	}
	ix := b.build()
	if opts.MinKey > 0 {
		ix = ix.AtLeast(opts.MinKey)
	}
	if ix.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmpty, dir)
	}
	return ix, nil
}

// ScanNames indexes the special collection by name. Directory names are used
// as-is, file names lose their extension. An empty result is not an error
// here; the special collection is optional.
func ScanNames(fsys afero.Fs, dir string, exts ExtensionSet) (*Index[string], error) {
	entries, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	b := newBuilder[string]()
	for _, e := range entries {
		if e.isDir {
			b.add(e.name, Group(e.path))
			continue
		}
		if exts.Allows(e.name) {
			b.add(stem(e.name), Entry(e.path))
		}
	}
	return b.build(), nil
}

// ListPlain returns the image files directly inside dir, sorted by name.
// It is how a Group is expanded, and returns ErrGroupEmpty when nothing
// usable is there.
func ListPlain(fsys afero.Fs, dir string, exts ExtensionSet) ([]string, error) {
	entries, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.isDir && exts.Allows(e.name) {
			files = append(files, e.path)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupEmpty, dir)
	}
	return files, nil
}

// Collections lists the thematic directories of the main collection: any
// subdirectory longer than two characters, or of at most two characters
// when it does not start with a digit. Names are returned sorted.
func Collections(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.isDir {
			continue
		}
		r := []rune(e.name)
		if len(r) > 2 || !unicode.IsDigit(r[0]) {
			names = append(names, e.name)
		}
	}
	return names, nil
}
