// Package du computes on-disk usage for directory trees.
//
// A scan walks each root exactly once with an explicit stack, applies the
// filter policy (hidden entries, exclusion patterns, filesystem boundary and
// depth) before a directory is entered, and folds block-rounded usage of every
// included entry into an immutable result tree. Formatting and threshold
// filtering operate on the finished tree and never change its numbers.
package du
