package du

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
)

// frame is a directory whose entries are being folded in.
type frame struct {
	node     *Node
	id       fileID
	entries  []fs.DirEntry
	next     int
	childSum Usage
}

// scanner holds the state of a single root's traversal.
type scanner struct {
	opts     Options
	filter   Filter
	log      *slog.Logger
	progress *progress
	// linked holds hard-linked files already counted.
	linked mapset.Set[fileID]
	// active holds the directories on the stack.
	active mapset.Set[fileID]
	errs   []*EntryError
}

// Scan walks the tree at root once and returns its usage tree.
//
// Invalid options yield a ConfigError. If root itself cannot be statted or
// listed, a RootAccessError is returned and no tree is produced. Failures on
// entries below the root are collected in Tree.Errors and the scan continues.
func Scan(ctx context.Context, root string, opts Options) (*Tree, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return scan(ctx, root, opts, nil)
}

func scan(ctx context.Context, root string, opts Options, prog *progress) (*Tree, error) {
	rootEntry, err := lstat(root)
	if err != nil {
		return nil, &RootAccessError{Path: root, Err: err}
	}

	// A root given as a symlink is scanned through its target. Links found
	// below the root are never followed. A dangling root link counts as itself.
	if rootEntry.Kind == KindSymlink {
		if target, err := stat(root); err == nil {
			rootEntry = target
		} else {
			opts.logger().Debug("root symlink not resolved", "path", root, "error", err)
		}
	}

	s := &scanner{
		opts:     opts,
		filter:   opts.Policy.Bind(rootEntry.Dev),
		log:      opts.logger(),
		progress: prog,
		linked:   mapset.NewThreadUnsafeSet[fileID](),
		active:   mapset.NewThreadUnsafeSet[fileID](),
	}

	rootNode := &Node{
		Path: root,
		Name: filepath.Base(root),
		Kind: rootEntry.Kind,
		Self: s.usage(rootEntry),
	}

	if rootEntry.Kind != KindDir {
		rootNode.Total = rootNode.Self

		return &Tree{Root: rootNode}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &RootAccessError{Path: root, Err: err}
	}

	s.active.Add(rootEntry.id())
	stack := []*frame{{node: rootNode, id: rootEntry.id(), entries: entries}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scanning %q: %w", root, err)
		}

		top := stack[len(stack)-1]

		if top.next == len(top.entries) {
			stack = stack[:len(stack)-1]

			var parent *frame
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			s.finish(top, parent)

			continue
		}

		entry := top.entries[top.next]
		top.next++

		child, err := s.visit(top, entry.Name())
		if err != nil {
			return nil, err
		}

		if child != nil {
			stack = append(stack, child)
		}
	}

	return &Tree{Root: rootNode, Errors: s.errs}, nil
}

// visit folds one directory entry into parent. It returns a frame when the
// entry is a directory that must be descended into.
func (s *scanner) visit(parent *frame, name string) (*frame, error) {
	path := filepath.Join(parent.node.Path, name)

	if !s.filter.IncludeEntry(path, name) {
		s.log.Debug("excluding entry", "path", path)

		return nil, nil
	}

	entry, err := lstat(path)
	if err != nil {
		s.soft(path, "stat", err)

		return nil, nil
	}

	if entry.Kind == KindDir {
		return s.enter(parent, entry, name)
	}

	if !s.filter.SameFilesystem(entry.Dev) {
		s.log.Debug("skipping entry on other filesystem", "path", path)

		return nil, nil
	}

	if entry.Nlink > 1 && entry.Ino != 0 && !s.filter.CountLinks() && !s.linked.Add(entry.id()) {
		s.log.Debug("skipping hard link already counted", "path", path)

		return nil, nil
	}

	usage := s.usage(entry)
	parent.node.Self += usage

	// Files below the depth limit still count towards parent.
	if depth := parent.node.Depth + 1; s.opts.Files && !s.opts.Summarize && s.filter.WithinDepth(depth) {
		parent.node.Children = append(parent.node.Children, &Node{
			Path:  path,
			Name:  name,
			Kind:  entry.Kind,
			Depth: depth,
			Self:  usage,
			Total: usage,
		})
	}

	return nil, nil
}

// enter decides whether the directory entry is descended into and, if so,
// reads its listing. The listing is read in full so no handle stays open
// while the subtree is processed.
func (s *scanner) enter(parent *frame, entry Entry, name string) (*frame, error) {
	depth := parent.node.Depth + 1

	if !s.filter.EnterDirectory(entry.Path, depth, entry.Dev) {
		s.log.Debug("pruning directory", "path", entry.Path, "depth", depth)

		return nil, nil
	}

	if entry.Ino != 0 && s.active.Contains(entry.id()) {
		return nil, &InvariantError{Path: entry.Path, Reason: "directory is its own ancestor"}
	}

	entries, err := os.ReadDir(entry.Path)
	if err != nil {
		s.soft(entry.Path, "read directory", err)

		return nil, nil
	}

	s.active.Add(entry.id())

	return &frame{
		node: &Node{
			Path:  entry.Path,
			Name:  name,
			Kind:  KindDir,
			Depth: depth,
			Self:  s.usage(entry),
		},
		id:      entry.id(),
		entries: entries,
	}, nil
}

// finish finalizes a directory once all its entries are folded in and hands
// its total to the parent.
func (s *scanner) finish(f *frame, parent *frame) {
	f.node.Total = f.node.Self + f.childSum
	f.entries = nil
	s.active.Remove(f.id)

	if parent == nil {
		return
	}

	parent.childSum += f.node.Total

	if !s.opts.Summarize {
		parent.node.Children = append(parent.node.Children, f.node)
	}
}

func (s *scanner) usage(e Entry) Usage {
	u := UsageOf(e, s.opts.BlockSize, s.opts.Apparent)
	s.progress.add(u)

	return u
}

func (s *scanner) soft(path, op string, err error) {
	s.log.Debug("error accessing path", "path", path, "op", op, "error", err)
	s.errs = append(s.errs, &EntryError{Path: path, Op: op, Err: err})
}
