package store

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// baseOSFS native filesystem, paths are used as given (relative to the
// current working directory or absolute)
type baseOSFS struct {
	osfs.ChrootOS
}

// Chroot returns a new filesystem rooted at the provided path.
func (b *baseOSFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (b *baseOSFS) Root() string {
	return "/"
}

// NewOSFS filesystem working on the native file system
func NewOSFS() billy.Filesystem {
	return &baseOSFS{}
}
