// Package index scans wallpaper directories into sorted buckets of
// selectable items.
//
// Two bucket kinds exist. The main collection is keyed by hour (0-23): an
// entry named "09" or "09.jpg" lands in the 9 o'clock bucket. The special
// collection is keyed by name: "birthday" and "birthday.png" both land in
// the "birthday" bucket. Directories become Groups, files with an allowed
// extension become Entries, and within a bucket every Group precedes every
// Entry.
//
// The index is rebuilt from scratch on every call; nothing is cached.
package index
