package iso9660nav

import (
	"path"
	"time"

	"github.com/bgrewell/iso9660nav/pkg/node"
)

// Metadata is a read-only view over one resolved filesystem entry. Many
// Metadata values may alias the same underlying Node; Nodes are owned by
// the tree and outlive any particular Metadata view.
type Metadata struct {
	n *node.Node
}

func newMetadata(n *node.Node) *Metadata {
	return &Metadata{n: n}
}

// Name returns the entry's base name, e.g. "README.TXT" for "/ETC/README.TXT".
func (m *Metadata) Name() string {
	if m.n.Path() == "/" {
		return "/"
	}
	return path.Base(m.n.Path())
}

// Path returns the entry's absolute path.
func (m *Metadata) Path() string { return m.n.Path() }

// IsDir reports whether this entry is a directory.
func (m *Metadata) IsDir() bool { return m.n.Record().IsDir }

// IsFile reports whether this entry is a file.
func (m *Metadata) IsFile() bool { return !m.n.Record().IsDir }

// Size returns the entry's data length in bytes, as recorded on disc.
func (m *Metadata) Size() uint32 { return m.n.Record().DataLength }

// ModTime returns the entry's recording date/time.
func (m *Metadata) ModTime() time.Time { return m.n.Record().Date }

// Version returns the entry's ";N" file version suffix, or nil if absent
// (always nil for directories).
func (m *Metadata) Version() *uint8 { return m.n.Record().Version }

// Hidden reports whether the entry's hidden flag is set.
func (m *Metadata) Hidden() bool { return m.n.Record().IsHidden }

// ReadDir lists this entry's children on fs. It is a convenience for
// re-listing a directory already resolved via Metadata, equivalent to
// fs.ReadDir(m.Path()).
func (m *Metadata) ReadDir(fs *FileSystem) ([]*Metadata, error) {
	return fs.ReadDir(m.Path())
}
