package iso9660nav

import (
	"io"
	"sync"

	"github.com/bgrewell/iso9660nav/pkg/isoerr"
)

// FileReader is a bounded stream view over one file's extent on the
// backing handle. It implements io.Reader, io.Seeker, and io.Closer.
//
// For the FileReader's entire lifetime it exclusively borrows the
// FileSystem's backing handle: no other FileSystem operation may touch the
// handle until Close is called. Forgetting to call Close deadlocks the
// next OpenFile or directory read on this FileSystem.
type FileReader struct {
	handle io.ReadSeeker
	start  int64
	length int64
	pos    int64

	release func()
	once    sync.Once
}

func newFileReader(handle io.ReadSeeker, start, length int64, release func()) (*FileReader, error) {
	if _, err := handle.Seek(start, io.SeekStart); err != nil {
		release()
		return nil, isoerr.IO(err)
	}
	return &FileReader{
		handle:  handle,
		start:   start,
		length:  length,
		release: release,
	}, nil
}

// Read implements io.Reader. It never returns bytes past the file's
// recorded data length.
func (f *FileReader) Read(p []byte) (int, error) {
	remaining := f.length - f.pos
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := f.handle.Read(p)
	f.pos += int64(n)
	if err != nil && err != io.EOF {
		return n, isoerr.IO(err)
	}
	return n, err
}

// Seek implements io.Seeker. The resulting offset is clamped to
// [0, length]; a negative absolute offset is a typed I/O error. A positive
// End-relative offset clamps to the file's end rather than allowing a
// write-oriented seek past it, as os.File would.
func (f *FileReader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = f.pos + offset
	case io.SeekEnd:
		target = f.length + offset
	default:
		return 0, isoerr.ParseErrorf("invalid whence: %d", whence)
	}

	if target < 0 {
		return 0, isoerr.IO(io.ErrUnexpectedEOF)
	}
	if target > f.length {
		target = f.length
	}

	if _, err := f.handle.Seek(f.start+target, io.SeekStart); err != nil {
		return 0, isoerr.IO(err)
	}
	f.pos = target
	return f.pos, nil
}

// Close releases the FileSystem's backing handle for other operations. It
// is safe to call multiple times.
func (f *FileReader) Close() error {
	f.once.Do(f.release)
	return nil
}
