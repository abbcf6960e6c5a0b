package index

import "errors"

var (
	// ErrNotFound is returned when a directory cannot be listed.
	ErrNotFound = errors.New("directory not found")
	// ErrEmpty is returned when a scan produced no bucket.
	ErrEmpty = errors.New("no wallpapers found")
	// ErrGroupEmpty is returned when a group directory holds no usable image.
	ErrGroupEmpty = errors.New("group has no usable wallpapers")
)
