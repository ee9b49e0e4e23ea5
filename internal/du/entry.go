package du

import "strings"

// Kind classifies a filesystem object.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDir is a directory.
	KindDir
	// KindSymlink is a symbolic link. Links are counted, never followed.
	KindSymlink
	// KindOther covers devices, sockets, pipes and similar.
	KindOther
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is a single filesystem object observed during traversal.
type Entry struct {
	// Path as constructed from the scan root.
	Path string
	// Kind of the object.
	Kind Kind
	// Size is the logical length in bytes.
	Size int64
	// Blocks is the allocated 512-byte block count, valid when HasBlocks is set.
	Blocks int64
	// HasBlocks reports whether the filesystem supplied allocation information.
	HasBlocks bool
	// Dev is the device identifier.
	Dev uint64
	// Ino is the inode number (0 when unavailable).
	Ino uint64
	// Nlink is the hard link count (0 when unavailable).
	Nlink uint64
}

// fileID identifies an inode across a single scan.
type fileID struct {
	dev, ino uint64
}

func (e Entry) id() fileID {
	return fileID{dev: e.Dev, ino: e.Ino}
}

// isHidden reports whether name is a dot-file. "." and ".." are not hidden.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
