// Package record decodes ISO-9660 directory records: the variable-length
// structures that describe one filesystem entry (file or subdirectory)
// within a directory's body, including the embedded root record carried
// inside the Primary Volume Descriptor.
package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/bgrewell/iso9660nav/pkg/encoding"
	"github.com/bgrewell/iso9660nav/pkg/isoerr"
	"github.com/bgrewell/iso9660nav/pkg/validation"
)

const (
	// flagHidden is bit 0 of the record flags byte.
	flagHidden = 1 << 0
	// flagDirectory is bit 1 of the record flags byte.
	flagDirectory = 1 << 1

	// SelfIdentifier is the reserved identifier for a directory's entry
	// referring to itself.
	SelfIdentifier = "\x00"
	// ParentIdentifier is the reserved identifier for a directory's entry
	// referring to its parent.
	ParentIdentifier = "\x01"
)

// ErrEndOfRecords is returned by Decode when the length byte at the start
// of the slice is zero, signalling that no more records remain in the
// current sector (the decoder should advance to the next sector, if any).
var ErrEndOfRecords = isoerr.ParseError("end of records in sector")

// Record is one directory entry: a file or a subdirectory.
type Record struct {
	Name       string
	Version    *uint8
	Extent     uint32
	EARLength  uint8
	DataLength uint32
	SeqNumber  uint16
	Date       time.Time
	IsDir      bool
	IsHidden   bool

	// Length is the total on-disc size of this record in bytes, used by
	// callers to advance their cursor to the next record.
	Length uint8
}

// Decode parses a single directory record from the start of data. It
// returns the decoded Record and the number of bytes consumed (equal to
// Record.Length). If the first byte is zero, it returns ErrEndOfRecords.
func Decode(data []byte) (*Record, int, error) {
	if len(data) == 0 {
		return nil, 0, isoerr.ParseIncomplete(1)
	}
	length := data[0]
	if length == 0 {
		return nil, 0, ErrEndOfRecords
	}
	if int(length) > len(data) {
		return nil, 0, isoerr.ParseIncomplete(int(length) - len(data))
	}
	body := data[:length]

	earLength := body[1]

	extent, err := encoding.BothEndianUint32(body[2:10])
	if err != nil {
		return nil, 0, isoerr.ParseErrorf("record extent: %v", err)
	}

	dataLength, err := encoding.BothEndianUint32(body[10:18])
	if err != nil {
		return nil, 0, isoerr.ParseErrorf("record data length: %v", err)
	}

	date, err := decodeDate(body[18:25])
	if err != nil {
		return nil, 0, isoerr.ParseErrorf("record date: %v", err)
	}

	flags := body[25]

	seqNumber, err := encoding.BothEndianUint16(body[28:32])
	if err != nil {
		return nil, 0, isoerr.ParseErrorf("record sequence number: %v", err)
	}

	idLength := int(body[32])
	idStart := 33
	idEnd := idStart + idLength
	if idEnd > len(body) {
		return nil, 0, isoerr.ParseIncomplete(idEnd - len(body))
	}
	rawID := body[idStart:idEnd]

	isDir := flags&flagDirectory != 0

	name, version, err := decodeIdentifier(rawID, isDir)
	if err != nil {
		return nil, 0, err
	}

	rec := &Record{
		Name:       name,
		Version:    version,
		Extent:     extent,
		EARLength:  earLength,
		DataLength: dataLength,
		SeqNumber:  seqNumber,
		Date:       date,
		IsDir:      isDir,
		IsHidden:   flags&flagHidden != 0,
		Length:     length,
	}
	return rec, int(length), nil
}

// decodeDate parses the 7-byte binary recording date/time used by
// directory records (distinct from the 17-byte long-form date used in
// volume descriptors, see pkg/descriptor).
func decodeDate(data []byte) (time.Time, error) {
	if len(data) != 7 {
		return time.Time{}, isoerr.ParseErrorf("invalid date length: %d", len(data))
	}

	year := int(data[0]) + 1900

	month, err := encoding.RangedByte(data[1], 1, 12, "month")
	if err != nil {
		return time.Time{}, err
	}
	day, err := encoding.RangedByte(data[2], 1, 31, "day")
	if err != nil {
		return time.Time{}, err
	}
	hour, err := encoding.RangedByte(data[3], 0, 23, "hour")
	if err != nil {
		return time.Time{}, err
	}
	minute, err := encoding.RangedByte(data[4], 0, 59, "minute")
	if err != nil {
		return time.Time{}, err
	}
	second, err := encoding.RangedByte(data[5], 0, 59, "second")
	if err != nil {
		return time.Time{}, err
	}

	tz := int(data[6])
	offsetSeconds := (tz - 48) * 15 * 60
	loc := time.FixedZone("iso9660", offsetSeconds)

	return time.Date(year, time.Month(month), int(day), int(hour), int(minute), int(second), 0, loc), nil
}

// decodeIdentifier extracts the entry name and optional file version from
// the raw identifier bytes. Self (0x00) and parent (0x01) sentinel
// identifiers are returned verbatim with no version. Directory identifiers
// never carry a version suffix. File identifiers may end in ";N" where N is
// an ASCII-digit version number; a trailing "." immediately before ";" is
// stripped along with it.
func decodeIdentifier(raw []byte, isDir bool) (string, *uint8, error) {
	if len(raw) == 1 && raw[0] == 0x00 {
		return SelfIdentifier, nil, nil
	}
	if len(raw) == 1 && raw[0] == 0x01 {
		return ParentIdentifier, nil, nil
	}

	id := string(raw)

	if isDir {
		if !validation.ValidDirectoryIdentifier(id) {
			return "", nil, isoerr.ParseErrorf("invalid directory identifier: %q", id)
		}
		return id, nil, nil
	}

	if !validation.ValidFileIdentifier(id) {
		return "", nil, isoerr.ParseErrorf("invalid file identifier: %q", id)
	}

	semi := strings.IndexByte(id, ';')
	if semi < 0 {
		return id, nil, nil
	}

	name := id[:semi]
	versionStr := id[semi+1:]
	if strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}

	v, err := strconv.ParseUint(versionStr, 10, 8)
	if err != nil {
		return "", nil, isoerr.ParseErrorf("invalid version suffix %q: %v", versionStr, err)
	}
	version := uint8(v)
	return name, &version, nil
}
