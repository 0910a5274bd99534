// Package node implements the lazy directory tree that sits at the heart
// of this repository: each Node caches its children on first touch and
// never re-parses them, while path resolution walks the tree component by
// component against a shared, mutable backing handle.
package node

import (
	"io"
	"path"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bgrewell/iso9660nav/pkg/isoerr"
	"github.com/bgrewell/iso9660nav/pkg/record"
)

// drivePrefix matches a Windows-style drive letter component (e.g. "C:"),
// which this repository rejects as a typed parse error — see Walk.
var drivePrefix = regexp.MustCompile(`^[A-Za-z]:$`)

// Node is one entry in the directory tree: a file or directory, along with
// its resolved absolute path. Directory Nodes populate contents lazily,
// exactly once, on first access.
type Node struct {
	path   string
	record *record.Record

	// contents is nil until LoadChildren succeeds; the transition from
	// nil to a populated map happens exactly once, observed atomically so
	// a reader never sees a partially built map.
	contents atomic.Pointer[map[string]*Node]

	// loadMu serializes concurrent LoadChildren attempts on the same
	// Node; the fast path (already loaded) never takes it.
	loadMu sync.Mutex
}

// New constructs a Node for rec at the given absolute path. It is exported
// so the root facade can seed the tree from the Primary Volume
// Descriptor's embedded root record.
func New(p string, rec *record.Record) *Node {
	return &Node{path: p, record: rec}
}

// Path returns the Node's absolute, slash-separated path.
func (n *Node) Path() string { return n.path }

// Record returns the directory record this Node wraps.
func (n *Node) Record() *record.Record { return n.record }

// IsDir reports whether this Node is a directory.
func (n *Node) IsDir() bool { return n.record.IsDir }

// Child returns the named child of a directory Node, loading children on
// first access. It fails with isoerr.DirectoryExpected if n is a file, or
// isoerr.NotFound if no child with that name exists.
func (n *Node) Child(name string, handle io.ReadSeeker, blockSize uint32) (*Node, error) {
	if !n.record.IsDir {
		return nil, isoerr.DirectoryExpected(n.path)
	}
	if err := n.LoadChildren(handle, blockSize); err != nil {
		return nil, err
	}
	children := *n.contents.Load()
	child, ok := children[name]
	if !ok {
		return nil, isoerr.NotFound(path.Join(n.path, name))
	}
	return child, nil
}

// Children returns a snapshot of this directory's children, loading them
// if necessary. The returned slice's order is unspecified (it reflects Go
// map iteration order); callers needing a stable order should sort by
// name.
func (n *Node) Children(handle io.ReadSeeker, blockSize uint32) ([]*Node, error) {
	if !n.record.IsDir {
		return nil, isoerr.DirectoryExpected(n.path)
	}
	if err := n.LoadChildren(handle, blockSize); err != nil {
		return nil, err
	}
	children := *n.contents.Load()
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		out = append(out, c)
	}
	return out, nil
}

// LoadChildren populates n.contents if it has not been loaded yet. It is
// idempotent: once loaded, subsequent calls return immediately without
// touching handle. On any decode failure mid-parse, n remains unloaded so
// a retry is possible — nothing is published until the whole directory
// body has been read successfully.
func (n *Node) LoadChildren(handle io.ReadSeeker, blockSize uint32) error {
	if n.contents.Load() != nil {
		return nil
	}

	n.loadMu.Lock()
	defer n.loadMu.Unlock()

	// Re-check: another goroutine may have finished loading while we
	// waited for loadMu.
	if n.contents.Load() != nil {
		return nil
	}

	children, err := n.parseChildren(handle, blockSize)
	if err != nil {
		return err
	}

	n.contents.Store(&children)
	return nil
}

func (n *Node) parseChildren(handle io.ReadSeeker, blockSize uint32) (map[string]*Node, error) {
	start := int64(n.record.Extent) * int64(blockSize)
	if _, err := handle.Seek(start, io.SeekStart); err != nil {
		return nil, isoerr.IO(err)
	}

	children := make(map[string]*Node)
	sector := make([]byte, blockSize)
	var totalRead uint32

sectorLoop:
	for totalRead < n.record.DataLength {
		nRead, err := io.ReadFull(handle, sector)
		if err != nil && err != io.ErrUnexpectedEOF {
			return nil, isoerr.IO(err)
		}
		totalRead += uint32(nRead)

		offset := 0
		for offset < nRead {
			rec, consumed, err := record.Decode(sector[offset:nRead])
			if err == record.ErrEndOfRecords {
				// Padding to the sector boundary: move to the next sector.
				break
			}
			if err != nil {
				return nil, err
			}

			// A self-entry belonging to a *different* extent than ours
			// means we have overshot into the next directory's body
			// (directories are padded to whole sectors, and the sector
			// immediately following this one's data may belong to a
			// neighboring directory). Stop scanning entirely, not just
			// this sector.
			if rec.Name == record.SelfIdentifier && rec.Extent != n.record.Extent {
				break sectorLoop
			}

			offset += consumed

			if rec.Name == record.SelfIdentifier || rec.Name == record.ParentIdentifier {
				continue
			}

			childPath := path.Join(n.path, rec.Name)
			children[rec.Name] = New(childPath, rec)
		}
	}

	return children, nil
}

// componentKind classifies one slash-separated segment of a path during
// Walk.
type componentKind int

const (
	componentNormal componentKind = iota
	componentRoot
	componentCurrent
	componentParent
)

func classify(segment string) (componentKind, error) {
	switch segment {
	case "":
		return componentRoot, nil
	case ".":
		return componentCurrent, nil
	case "..":
		return componentParent, nil
	default:
		if drivePrefix.MatchString(segment) {
			return componentNormal, isoerr.ParseErrorf("invalid path component: %q", segment)
		}
		return componentNormal, nil
	}
}

// Walk resolves p against the tree rooted at root, starting traversal
// fresh from root whenever an absolute (leading "/") component is seen.
// "." components are no-ops; ".." components recompute the current Node's
// parent path and re-walk from root to that path.
func Walk(root *Node, p string, handle io.ReadSeeker, blockSize uint32) (*Node, error) {
	segments := strings.Split(p, "/")

	current := root
	for i, segment := range segments {
		if i == 0 && segment == "" {
			current = root
			continue
		}
		if segment == "" {
			continue // collapse doubled slashes
		}

		kind, err := classify(segment)
		if err != nil {
			return nil, err
		}

		switch kind {
		case componentCurrent:
			// no-op
		case componentParent:
			parentPath := path.Dir(current.path)
			current, err = Walk(root, parentPath, handle, blockSize)
			if err != nil {
				return nil, err
			}
		default:
			current, err = current.Child(segment, handle, blockSize)
			if err != nil {
				return nil, err
			}
		}
	}

	return current, nil
}
