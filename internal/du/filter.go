package du

import "strconv"

// Unlimited disables the depth limit.
const Unlimited = -1

// Policy is the inclusion and exclusion policy of one invocation.
// It is a value: every scan receives its own copy.
type Policy struct {
	// IncludeHidden admits entries whose name starts with a dot.
	IncludeHidden bool
	// Excludes prunes matching paths and everything beneath them.
	Excludes Patterns
	// OneFileSystem keeps the scan on the device of its root.
	OneFileSystem bool
	// MaxDepth is the deepest directory level that is entered (root = 0).
	// Unlimited (-1) removes the limit.
	MaxDepth int
	// CountLinks counts every hard link to a file instead of the first one seen.
	CountLinks bool
}

// DefaultPolicy returns a policy without depth limit or exclusions.
func DefaultPolicy() Policy {
	return Policy{MaxDepth: Unlimited}
}

// Validate checks the policy for values that cannot be honored.
func (p Policy) Validate() error {
	if p.MaxDepth < Unlimited {
		return &ConfigError{Field: "max depth", Reason: "must be non-negative, got " + strconv.Itoa(p.MaxDepth)}
	}

	return nil
}

// Bind fixes the policy to the device of a scan root.
func (p Policy) Bind(rootDev uint64) Filter {
	return Filter{policy: p, rootDev: rootDev}
}

// Filter is a Policy bound to the device of a single scan root.
type Filter struct {
	policy  Policy
	rootDev uint64
}

// EnterDirectory reports whether the directory at path, found at depth, may be
// read. A false result prunes the whole subtree.
func (f Filter) EnterDirectory(path string, depth int, dev uint64) bool {
	if !f.WithinDepth(depth) {
		return false
	}

	if !f.SameFilesystem(dev) {
		return false
	}

	return !f.policy.Excludes.Match(path)
}

// WithinDepth reports whether a node at depth may be retained.
func (f Filter) WithinDepth(depth int) bool {
	return f.policy.MaxDepth == Unlimited || depth <= f.policy.MaxDepth
}

// IncludeEntry reports whether the entry named name at path is counted at all.
func (f Filter) IncludeEntry(path, name string) bool {
	if isHidden(name) && !f.policy.IncludeHidden {
		return false
	}

	return !f.policy.Excludes.Match(path)
}

// SameFilesystem reports whether dev is acceptable under the boundary setting.
func (f Filter) SameFilesystem(dev uint64) bool {
	return !f.policy.OneFileSystem || dev == f.rootDev
}

// CountLinks reports whether hard links are counted every time.
func (f Filter) CountLinks() bool {
	return f.policy.CountLinks
}
