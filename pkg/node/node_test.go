package node

import (
	"bytes"
	"io"
	"testing"

	"github.com/bgrewell/iso9660nav/pkg/record"
	"github.com/stretchr/testify/assert"
)

const blockSize = 2048

// buildDirRecord builds one directory-record entry on-disc. Mirrors
// record_test.go's helper but lives here too since that one is unexported
// in another package.
func buildDirRecord(name string, extent, dataLength uint32, isDir bool) []byte {
	id := []byte(name)
	idLen := len(id)
	length := 33 + idLen
	if idLen%2 == 0 {
		length++
	}
	buf := make([]byte, length)
	buf[0] = byte(length)

	put32 := func(off int, v uint32) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
		buf[off+4] = byte(v >> 24)
		buf[off+5] = byte(v >> 16)
		buf[off+6] = byte(v >> 8)
		buf[off+7] = byte(v)
	}
	put32(2, extent)
	put32(10, dataLength)
	buf[18] = 120
	buf[19] = 1
	buf[20] = 1

	var flags byte
	if isDir {
		flags |= 1 << 1
	}
	buf[25] = flags

	put16 := func(off int, v uint16) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 8)
		buf[off+3] = byte(v)
	}
	put16(28, 1)

	buf[32] = byte(idLen)
	copy(buf[33:], id)
	return buf
}

// buildDirectoryBody assembles a one-sector directory body containing
// self/parent sentinel records followed by the given child records.
func buildDirectoryBody(selfExtent, parentExtent uint32, children ...[]byte) []byte {
	buf := make([]byte, blockSize)
	offset := 0

	self := buildDirRecord("\x00", selfExtent, blockSize, true)
	copy(buf[offset:], self)
	offset += len(self)

	parent := buildDirRecord("\x01", parentExtent, blockSize, true)
	copy(buf[offset:], parent)
	offset += len(parent)

	for _, c := range children {
		copy(buf[offset:], c)
		offset += len(c)
	}
	return buf
}

func TestLoadChildren(t *testing.T) {
	fooRec := buildDirRecord("FOO.;1", 5, 100, false)
	barRec := buildDirRecord("BAR", 6, blockSize, true)
	body := buildDirectoryBody(1, 1, fooRec, barRec)

	// Extent 1: the directory body starts one block into the handle.
	handle := bytes.NewReader(append(make([]byte, blockSize), body...))
	selfLen := len(buildDirRecord("\x00", 1, blockSize, true))
	parentLen := len(buildDirRecord("\x01", 1, blockSize, true))
	root := New("/", &record.Record{
		Extent:     1,
		DataLength: uint32(selfLen + parentLen + len(fooRec) + len(barRec)),
		IsDir:      true,
	})

	children, err := root.Children(handle, blockSize)
	assert.NoError(t, err)
	assert.Len(t, children, 2)

	foo, err := root.Child("FOO", handle, blockSize)
	assert.NoError(t, err)
	assert.False(t, foo.IsDir())
	assert.Equal(t, "/FOO", foo.Path())

	bar, err := root.Child("BAR", handle, blockSize)
	assert.NoError(t, err)
	assert.True(t, bar.IsDir())
}

func TestChildOnFileFails(t *testing.T) {
	f := New("/FOO", &record.Record{Extent: 5, DataLength: 10, IsDir: false})
	_, err := f.Child("X", bytes.NewReader(nil), blockSize)
	assert.Error(t, err)
}

func TestChildNotFound(t *testing.T) {
	body := buildDirectoryBody(1, 1)
	handle := bytes.NewReader(append(make([]byte, blockSize), body...))
	selfLen := len(buildDirRecord("\x00", 1, blockSize, true))
	parentLen := len(buildDirRecord("\x01", 1, blockSize, true))
	root := New("/", &record.Record{Extent: 1, DataLength: uint32(selfLen + parentLen), IsDir: true})

	_, err := root.Child("MISSING", handle, blockSize)
	assert.Error(t, err)
}

func TestLoadChildrenIdempotent(t *testing.T) {
	body := buildDirectoryBody(1, 1)
	selfLen := len(buildDirRecord("\x00", 1, blockSize, true))
	parentLen := len(buildDirRecord("\x01", 1, blockSize, true))
	root := New("/", &record.Record{Extent: 1, DataLength: uint32(selfLen + parentLen), IsDir: true})

	handle := &countingReader{r: bytes.NewReader(append(make([]byte, blockSize), body...))}
	assert.NoError(t, root.LoadChildren(handle, blockSize))
	firstSeeks := handle.seeks
	assert.NoError(t, root.LoadChildren(handle, blockSize))
	assert.Equal(t, firstSeeks, handle.seeks, "second LoadChildren must not touch the handle")
}

type countingReader struct {
	r     *bytes.Reader
	seeks int
}

func (c *countingReader) Read(p []byte) (int, error) { return c.r.Read(p) }
func (c *countingReader) Seek(offset int64, whence int) (int64, error) {
	c.seeks++
	return c.r.Seek(offset, whence)
}

var _ io.ReadSeeker = (*countingReader)(nil)
