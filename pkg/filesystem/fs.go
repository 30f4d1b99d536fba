package filesystem

import "io/fs"

// FS is the set of filesystem calls the reconciliation and mutation engines use.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	// EvalSymlinks returns the canonical path of name with every link resolved.
	EvalSymlinks(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// IsSymlink reports whether info describes a symbolic link.
func IsSymlink(info fs.FileInfo) bool {
	return info.Mode()&fs.ModeSymlink != 0
}
