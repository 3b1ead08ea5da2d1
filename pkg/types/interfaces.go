package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotty operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Open(name string) (fs.File, error)
	OpenFile(name string, flag int, perm fs.FileMode) (WriteCloser, error)

	// Directory operations
	Mkdir(name string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// WriteCloser is the writable file handle returned by FS.OpenFile
type WriteCloser interface {
	Write(p []byte) (int, error)
	Sync() error
	Close() error
}

// RepositoryProbe reports whether a directory is itself under version control
type RepositoryProbe interface {
	IsRepository(dir string) bool
}

// ProbeFunc adapts a function to RepositoryProbe
type ProbeFunc func(dir string) bool

// IsRepository calls f(dir)
func (f ProbeFunc) IsRepository(dir string) bool { return f(dir) }
