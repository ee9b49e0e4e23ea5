package du

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// BlockSize is the unit usage is rounded to and counted in.
type BlockSize uint64

// DefaultBlockSize reports usage in 1K blocks.
const DefaultBlockSize BlockSize = 1024

// statBlockUnit is the unit of the allocated block count reported by stat(2).
const statBlockUnit = 512

// NewBlockSize validates n as a block size.
func NewBlockSize(n uint64) (BlockSize, error) {
	if n == 0 {
		return 0, &ConfigError{Field: "block size", Reason: "must be greater than zero"}
	}

	return BlockSize(n), nil
}

// Usage is a number of bytes occupied on disk.
type Usage uint64

// Blocks returns u expressed in blocks of bs, rounded up.
func (u Usage) Blocks(bs BlockSize) uint64 {
	if bs <= 1 {
		return uint64(u)
	}

	q, r := uint64(u)/uint64(bs), uint64(u)%uint64(bs)
	if r != 0 {
		q++
	}

	return q
}

// roundUp returns the smallest multiple of bs that is >= n.
func roundUp(n uint64, bs BlockSize) Usage {
	return Usage(Usage(n).Blocks(bs) * uint64(max(bs, 1)))
}

// UsageOf returns the on-disk usage of a single entry as a multiple of bs.
//
// Allocation reported by the filesystem is preferred over the logical length.
// Entries without allocation information, or any entry when apparent is set,
// fall back to the logical length rounded up to the block size.
func UsageOf(e Entry, bs BlockSize, apparent bool) Usage {
	var n uint64

	switch {
	case apparent || !e.HasBlocks:
		n = uint64(max(e.Size, 0))
	default:
		n = uint64(max(e.Blocks, 0)) * statBlockUnit
	}

	return roundUp(n, bs)
}

// Units selects how Format renders a usage value.
type Units int

const (
	// UnitsBlocks renders an integer count of blocks.
	UnitsBlocks Units = iota
	// UnitsBytes renders the raw byte count.
	UnitsBytes
	// UnitsHuman renders binary multiples (KiB, MiB, ...).
	UnitsHuman
	// UnitsSI renders decimal multiples (kB, MB, ...).
	UnitsSI
)

// Format renders u for display.
func Format(u Usage, bs BlockSize, units Units) string {
	switch units {
	case UnitsBytes:
		return strconv.FormatUint(uint64(u), 10)
	case UnitsHuman:
		return humanize.IBytes(uint64(u))
	case UnitsSI:
		return humanize.Bytes(uint64(u))
	default:
		return strconv.FormatUint(u.Blocks(bs), 10)
	}
}

// ParseSize parses a size such as "512", "4K", "1MiB" or "10MB".
// Single-letter suffixes, with or without a trailing "B", are binary
// multiples: "4K" and "4KB" are both 4096. Decimal sizes are written out in
// bytes.
func ParseSize(s string) (uint64, error) {
	s = strings.TrimSpace(s)

	unit := strings.TrimRight(s, "Bb")
	if len(s)-len(unit) > 1 {
		unit = s
	}

	if n := len(unit); n > 1 && strings.ContainsRune("kKmMgGtTpPeE", rune(unit[n-1])) {
		if c := unit[n-2]; c == '.' || c == ' ' || (c >= '0' && c <= '9') {
			s = unit + "iB"
		}
	}

	return humanize.ParseBytes(s)
}
