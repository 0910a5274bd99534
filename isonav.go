// Package iso9660nav is a read-only parser and navigator for the ISO-9660
// optical-disc filesystem format (ECMA-119). Given a seekable byte source
// containing an ISO-9660 image, it exposes a directory-and-file view
// rooted at "/": test path existence, fetch metadata, enumerate
// directories, and stream file bodies.
package iso9660nav

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/bgrewell/iso9660nav/pkg/consts"
	"github.com/bgrewell/iso9660nav/pkg/descriptor"
	"github.com/bgrewell/iso9660nav/pkg/isoerr"
	"github.com/bgrewell/iso9660nav/pkg/logging"
	"github.com/bgrewell/iso9660nav/pkg/node"
	"github.com/go-logr/logr"
)

// Handle is the minimal capability this package needs from its backing
// byte source: read and seek. *os.File and *bytes.Reader both satisfy it.
type Handle interface {
	io.ReadSeeker
}

// Options configures Open. See the With* functions.
type Options struct {
	logger logr.Logger
}

// Option mutates Options; see WithLogger.
type Option func(*Options)

// WithLogger attaches a logr.Logger that receives structured tracing of
// each volume descriptor decoded during Open, at DEBUG/TRACE verbosity.
// Directory record decoding and path resolution are not logged.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) {
		o.logger = l
	}
}

// FileSystem is a navigable view over one opened ISO-9660 image.
//
// FileSystem is not safe for concurrent use: callers needing concurrent
// access must serialize their own calls. At most one FileReader may be
// open at a time; handleMu enforces this by being held for that reader's
// entire lifetime.
type FileSystem struct {
	handle    Handle
	handleMu  sync.Mutex
	blockSize uint32
	root      *node.Node
	log       *logging.Logger
	closer    func() error
}

// FromPath opens the ISO-9660 image at path on disk.
func FromPath(path string, opts ...Option) (*FileSystem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, isoerr.IO(err)
	}
	fs, err := Open(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	fs.closer = f.Close
	return fs, nil
}

// FromBuffer opens the ISO-9660 image held in buf.
func FromBuffer(buf []byte, opts ...Option) (*FileSystem, error) {
	return Open(bytes.NewReader(buf), opts...)
}

// Open bootstraps a FileSystem from handle: it seeks to logical sector 16
// and decodes volume descriptors one sector at a time until a Set
// Terminator is found, capturing the first Primary Volume Descriptor's
// root record and logical block size along the way.
func Open(handle Handle, opts ...Option) (*FileSystem, error) {
	options := &Options{logger: logr.Discard()}
	for _, opt := range opts {
		opt(options)
	}
	log := logging.NewLogger(options.logger)

	if _, err := handle.Seek(int64(consts.ISO9660SystemAreaSectors)*descriptor.SectorSize, io.SeekStart); err != nil {
		return nil, isoerr.IO(err)
	}

	var pvd *descriptor.PrimaryVolumeDescriptor
	sector := make([]byte, descriptor.SectorSize)

	for {
		if _, err := io.ReadFull(handle, sector); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, isoerr.NoSetTerminator()
			}
			return nil, isoerr.IO(err)
		}

		decoded, err := descriptor.Decode(sector, options.logger)
		if err != nil {
			return nil, err
		}

		switch d := decoded.(type) {
		case *descriptor.PrimaryVolumeDescriptor:
			if pvd == nil {
				pvd = d
			}
		case *descriptor.BootRecord:
			log.Debug("skipping boot record payload", "systemIdentifier", d.SystemIdentifier)
		case *descriptor.SetTerminator:
			if pvd == nil {
				return nil, isoerr.NoPrimaryVolumeDescriptor()
			}
			root := node.New("/", pvd.RootRecord)
			return &FileSystem{
				handle:    handle,
				blockSize: uint32(pvd.LogicalBlockSize),
				root:      root,
				log:       log,
			}, nil
		}
	}
}

// Close releases any resources opened by FromPath. It is a no-op for
// filesystems opened via Open or FromBuffer with a caller-owned handle.
func (fs *FileSystem) Close() error {
	if fs.closer != nil {
		return fs.closer()
	}
	return nil
}

func (fs *FileSystem) walk(path string) (*node.Node, error) {
	fs.handleMu.Lock()
	defer fs.handleMu.Unlock()
	return node.Walk(fs.root, path, fs.handle, fs.blockSize)
}

// Metadata resolves path and returns a read-only view of it.
func (fs *FileSystem) Metadata(path string) (*Metadata, error) {
	n, err := fs.walk(path)
	if err != nil {
		return nil, err
	}
	return newMetadata(n), nil
}

// ReadDir resolves path, requires it to be a directory, and returns a
// snapshot of its children. The returned order is unspecified; sort by
// Metadata.Name for a stable order.
func (fs *FileSystem) ReadDir(path string) ([]*Metadata, error) {
	n, err := fs.walk(path)
	if err != nil {
		return nil, err
	}

	fs.handleMu.Lock()
	defer fs.handleMu.Unlock()
	children, err := n.Children(fs.handle, fs.blockSize)
	if err != nil {
		return nil, err
	}

	out := make([]*Metadata, len(children))
	for i, c := range children {
		out[i] = newMetadata(c)
	}
	return out, nil
}

// IsDir reports whether path resolves to a directory. Any resolution
// error (including not-found) is reported as false.
func (fs *FileSystem) IsDir(path string) bool {
	n, err := fs.walk(path)
	return err == nil && n.IsDir()
}

// IsFile reports whether path resolves to a file. Any resolution error is
// reported as false.
func (fs *FileSystem) IsFile(path string) bool {
	n, err := fs.walk(path)
	return err == nil && !n.IsDir()
}

// Exists reports whether path resolves to anything at all.
func (fs *FileSystem) Exists(path string) bool {
	_, err := fs.walk(path)
	return err == nil
}

// OpenFile resolves path, requires it to be a file, and returns a bounded
// stream over its data. The returned FileReader exclusively borrows this
// FileSystem's backing handle until Close is called.
func (fs *FileSystem) OpenFile(path string) (*FileReader, error) {
	n, err := fs.walk(path)
	if err != nil {
		return nil, err
	}
	if n.IsDir() {
		return nil, isoerr.FileExpected(path)
	}

	fs.handleMu.Lock()
	rec := n.Record()
	start := int64(rec.Extent) * int64(fs.blockSize)
	length := int64(rec.DataLength)

	release := func() { fs.handleMu.Unlock() }
	reader, err := newFileReader(fs.handle, start, length, release)
	if err != nil {
		return nil, err
	}
	return reader, nil
}
