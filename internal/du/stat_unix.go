//go:build linux || darwin || freebsd || netbsd || openbsd

package du

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// lstat reads metadata for path without following a final symbolic link.
func lstat(path string) (Entry, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Entry{}, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}

	return entryOf(path, &st), nil
}

func entryOf(path string, st *unix.Stat_t) Entry {
	return Entry{
		Path:      path,
		Kind:      kindOfStat(uint32(st.Mode)), //nolint:gosec,unconvert // mode width differs per platform
		Size:      st.Size,
		Blocks:    int64(st.Blocks), //nolint:unconvert // int32 on some platforms
		HasBlocks: true,
		Dev:       uint64(st.Dev), //nolint:gosec,unconvert // signed on darwin
		Ino:       uint64(st.Ino), //nolint:unconvert // width differs per platform
		Nlink:     uint64(st.Nlink),
	}
}

// stat reads metadata for path, following symbolic links.
func stat(path string) (Entry, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Entry{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	return entryOf(path, &st), nil
}

// kindOfStat classifies the S_IFMT bits of a raw mode.
func kindOfStat(mode uint32) Kind {
	switch mode & unix.S_IFMT {
	case unix.S_IFREG:
		return KindFile
	case unix.S_IFDIR:
		return KindDir
	case unix.S_IFLNK:
		return KindSymlink
	default:
		return KindOther
	}
}
