package index

import (
	"cmp"
	"slices"
)

// Kind tells a Group from an Entry.
type Kind int

const (
	KindGroup Kind = iota
	KindEntry
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// Item is one selectable thing inside a bucket.
type Item struct {
	Kind Kind
	// Path is the directory for a Group and the image file for an Entry.
	Path string
}

// Group returns a Group item for dir.
func Group(dir string) Item { return Item{Kind: KindGroup, Path: dir} }

// Entry returns an Entry item for file.
func Entry(file string) Item { return Item{Kind: KindEntry, Path: file} }

func (i Item) IsGroup() bool { return i.Kind == KindGroup }

// Index is a sorted mapping from bucket key to the bucket's items.
type Index[K cmp.Ordered] struct {
	keys    []K
	buckets map[K][]Item
}

// builder collects groups and entries per key separately so the final
// bucket can be laid out groups-then-entries regardless of listing order.
type builder[K cmp.Ordered] struct {
	groups  map[K][]Item
	entries map[K][]Item
}

func newBuilder[K cmp.Ordered]() *builder[K] {
	return &builder[K]{groups: make(map[K][]Item), entries: make(map[K][]Item)}
}

func (b *builder[K]) add(key K, it Item) {
	if it.IsGroup() {
		b.groups[key] = append(b.groups[key], it)
		return
	}
	b.entries[key] = append(b.entries[key], it)
}

func (b *builder[K]) build() *Index[K] {
	ix := &Index[K]{buckets: make(map[K][]Item, len(b.groups)+len(b.entries))}
	for k, items := range b.groups {
		ix.buckets[k] = append(ix.buckets[k], items...)
	}
	for k, items := range b.entries {
		ix.buckets[k] = append(ix.buckets[k], items...)
	}
	for k := range ix.buckets {
		ix.keys = append(ix.keys, k)
	}
	slices.Sort(ix.keys)
	return ix
}

// Keys returns the bucket keys in ascending order.
func (ix *Index[K]) Keys() []K {
	return slices.Clone(ix.keys)
}

// Lookup returns the items of the bucket at key.
func (ix *Index[K]) Lookup(key K) ([]Item, bool) {
	items, ok := ix.buckets[key]
	return items, ok
}

// Len returns the number of buckets.
func (ix *Index[K]) Len() int { return len(ix.keys) }

// AtLeast returns a copy holding only the buckets whose key is >= min.
func (ix *Index[K]) AtLeast(min K) *Index[K] {
	out := &Index[K]{buckets: make(map[K][]Item)}
	for _, k := range ix.keys {
		if k < min {
			continue
		}
		out.keys = append(out.keys, k)
		out.buckets[k] = ix.buckets[k]
	}
	return out
}
