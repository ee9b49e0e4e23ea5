//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package du

import (
	"io/fs"
	"os"
)

// lstat reads metadata for path without following a final symbolic link.
// No allocation, device or inode information is available on this platform,
// so usage falls back to the logical length.
func lstat(path string) (Entry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}

	return entryOf(path, info), nil
}

// stat reads metadata for path, following symbolic links.
func stat(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}

	return entryOf(path, info), nil
}

func entryOf(path string, info fs.FileInfo) Entry {
	return Entry{
		Path: path,
		Kind: kindOf(info.Mode()),
		Size: info.Size(),
	}
}

// kindOf maps file mode type bits to a Kind.
func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}
