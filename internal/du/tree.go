package du

import (
	"iter"

	"go.uber.org/multierr"
)

// Node is one directory, or one file when per-file nodes are retained, in a
// scanned tree. Nodes are read-only once Scan returns.
type Node struct {
	// Path as constructed from the scan root.
	Path string `json:"path"`
	// Name is the final path element.
	Name string `json:"name"`
	// Kind of the filesystem object.
	Kind Kind `json:"kind"`
	// Depth below the scan root (root = 0).
	Depth int `json:"depth"`
	// Self is the usage of the node itself and of the non-directory entries
	// directly below it. For a directory this includes the allocation of the
	// directory inode, so a directory holding one 8K file reports more than
	// 8K. Files below the depth limit are folded into the deepest retained
	// directory.
	Self Usage `json:"self"`
	// Total is Self plus the Total of every included subdirectory.
	Total Usage `json:"total"`
	// Children in name order. Pruned directories never appear.
	Children []*Node `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Kind == KindDir
}

// Tree is the result of scanning one root.
type Tree struct {
	// Root is the node of the scan root.
	Root *Node
	// Errors holds the soft failures met during the scan.
	Errors []*EntryError
}

// Walk returns a pre-order sequence of the nodes no deeper than maxDepth
// (Unlimited for all). Each call starts a fresh iteration.
func (t *Tree) Walk(maxDepth int) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if t == nil || t.Root == nil {
			return
		}

		stack := []*Node{t.Root}

		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(node) {
				return
			}

			if maxDepth != Unlimited && node.Depth >= maxDepth {
				continue
			}

			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, node.Children[i])
			}
		}
	}
}

// Summary holds the figures of a scan root alone.
type Summary struct {
	Path  string `json:"path"`
	Self  Usage  `json:"self"`
	Total Usage  `json:"total"`
}

// Summary flattens the tree to its root figures.
func (t *Tree) Summary() Summary {
	if t == nil || t.Root == nil {
		return Summary{}
	}

	return Summary{Path: t.Root.Path, Self: t.Root.Self, Total: t.Root.Total}
}

// Err combines the soft failures of the scan, or returns nil.
func (t *Tree) Err() error {
	if t == nil {
		return nil
	}

	var err error
	for _, e := range t.Errors {
		err = multierr.Append(err, e)
	}

	return err
}

// Total returns the sum of the root totals of trees. Hard links shared
// between trees are counted once per tree.
func Total(trees ...*Tree) Usage {
	var sum Usage
	for _, t := range trees {
		sum += t.Summary().Total
	}

	return sum
}
