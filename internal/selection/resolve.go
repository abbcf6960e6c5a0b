package selection

import (
	"sort"

	"github.com/chronowall/chronowall/internal/index"
	"github.com/spf13/afero"
)

// Resolution is the candidate list produced from one bucket.
type Resolution struct {
	Paths []string
	// Source is the item that produced Paths. It is the directory whose
	// local override applies when Source is a Group.
	Source index.Item
	// Skipped holds the errors of groups that could not be expanded.
	Skipped []error
}

// Empty reports whether nothing is available this cycle.
func (r Resolution) Empty() bool { return len(r.Paths) == 0 }

// Resolve walks items in bucket order. The first Group that expands to at
// least one image wins and yields all of its images, sorted; a Group that
// fails to expand is recorded in Skipped and the walk continues. The first
// Entry reached yields just itself.
func Resolve(fsys afero.Fs, items []index.Item, exts index.ExtensionSet) Resolution {
	var res Resolution
	for _, it := range items {
		if !it.IsGroup() {
			res.Paths = []string{it.Path}
			res.Source = it
			return res
		}
		files, err := index.ListPlain(fsys, it.Path, exts)
		if err != nil {
			res.Skipped = append(res.Skipped, err)
			continue
		}
		sort.Strings(files)
		res.Paths = files
		res.Source = it
		return res
	}
	return res
}
