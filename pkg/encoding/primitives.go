package encoding

import (
	"bytes"

	"github.com/bgrewell/iso9660nav/pkg/isoerr"
)

// BothEndianUint16 decodes a both-endian 16-bit field (little-endian half
// then big-endian half, 4 bytes total), as used throughout directory
// records and volume descriptors per ECMA-119 7.2.3.
func BothEndianUint16(data []byte) (uint16, error) {
	if len(data) < 4 {
		return 0, isoerr.ParseIncomplete(4 - len(data))
	}
	n, err := UnmarshalInt16LSBMSB(data[:4])
	if err != nil {
		return 0, isoerr.ParseErrorf("both-endian uint16: %v", err)
	}
	return uint16(n), nil
}

// BothEndianUint32 decodes a both-endian 32-bit field (8 bytes total), as
// used for extents, data lengths, and volume space size per ECMA-119 7.3.3.
func BothEndianUint32(data []byte) (uint32, error) {
	if len(data) < 8 {
		return 0, isoerr.ParseIncomplete(8 - len(data))
	}
	n, err := UnmarshalInt32LSBMSB(data[:8])
	if err != nil {
		return 0, isoerr.ParseErrorf("both-endian uint32: %v", err)
	}
	return uint32(n), nil
}

// NullTerminatedField reads a fixed-width field of size n and returns the
// prefix up to (but not including) the first NUL byte. The caller's cursor
// always advances by n regardless of where the terminator fell, or where it
// never appears at all (the whole field is then the value).
func NullTerminatedField(data []byte, n int) (string, error) {
	if len(data) < n {
		return "", isoerr.ParseIncomplete(n - len(data))
	}
	field := data[:n]
	if idx := bytes.IndexByte(field, 0x00); idx >= 0 {
		field = field[:idx]
	}
	return string(field), nil
}

// RangedByte consumes the single byte b and succeeds iff lo <= b <= hi.
func RangedByte(b byte, lo, hi byte, field string) (byte, error) {
	if b < lo || b > hi {
		return 0, isoerr.ParseErrorf("%s out of range: %d (expected %d..%d)", field, b, lo, hi)
	}
	return b, nil
}

// TrimPadding strips trailing ISO-9660 filler bytes (0x20, ASCII space)
// from a fixed-width identifier field, mirroring the space-padding used for
// system/volume/publisher/preparer/application identifiers in the PVD.
func TrimPadding(s string) string {
	return string(bytes.TrimRight([]byte(s), " "))
}
