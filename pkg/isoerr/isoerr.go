// Package isoerr defines the typed error taxonomy shared by every decoder
// and by the public facade. It has no dependencies on the rest of this
// module so that low-level packages (record, descriptor, node) and the
// root facade can both construct and inspect these errors without an
// import cycle.
package isoerr

import "fmt"

// Kind identifies the category of failure.
type Kind int

const (
	// KindIO wraps a failure from the backing handle (read/seek).
	KindIO Kind = iota
	// KindDirectoryExpected means an operation required a directory Node
	// but found a file.
	KindDirectoryExpected
	// KindFileExpected means an operation required a file Node but found
	// a directory.
	KindFileExpected
	// KindNotFound means a path component could not be resolved. Carries Path.
	KindNotFound
	// KindNoPrimaryVolumeDescriptor means Open's descriptor scan never
	// encountered a Primary Volume Descriptor.
	KindNoPrimaryVolumeDescriptor
	// KindNoSetTerminator means Open's descriptor scan ran off the end of
	// the image without encountering a Set Terminator.
	KindNoSetTerminator
	// KindUnknownDescriptorType means a descriptor type byte outside
	// {0x00, 0x01, 0xFF} was encountered. Carries Byte.
	KindUnknownDescriptorType
	// KindParseError is a generic decode failure. Carries Detail.
	KindParseError
	// KindParseIncomplete means fewer bytes were available than a decode
	// step required. Carries Needed.
	KindParseIncomplete
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindDirectoryExpected:
		return "directory expected"
	case KindFileExpected:
		return "file expected"
	case KindNotFound:
		return "not found"
	case KindNoPrimaryVolumeDescriptor:
		return "no primary volume descriptor"
	case KindNoSetTerminator:
		return "no set terminator"
	case KindUnknownDescriptorType:
		return "unknown descriptor type"
	case KindParseError:
		return "parse error"
	case KindParseIncomplete:
		return "parse incomplete"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every package in this
// module. Context fields are populated only for the Kind that uses them.
type Error struct {
	Kind   Kind
	Path   string // KindNotFound, KindDirectoryExpected, KindFileExpected
	Byte   byte   // KindUnknownDescriptorType
	Detail string // KindParseError
	Needed int    // KindParseIncomplete
	Err    error  // wrapped cause, e.g. for KindIO
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("iso9660nav: io error: %v", e.Err)
	case KindNotFound:
		return fmt.Sprintf("iso9660nav: not found: %s", e.Path)
	case KindUnknownDescriptorType:
		return fmt.Sprintf("iso9660nav: unknown descriptor type: 0x%02x", e.Byte)
	case KindParseError:
		return fmt.Sprintf("iso9660nav: parse error: %s", e.Detail)
	case KindParseIncomplete:
		return fmt.Sprintf("iso9660nav: parse incomplete: needed %d more byte(s)", e.Needed)
	default:
		return fmt.Sprintf("iso9660nav: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func IO(err error) *Error { return &Error{Kind: KindIO, Err: err} }

func DirectoryExpected(path string) *Error {
	return &Error{Kind: KindDirectoryExpected, Path: path}
}

func FileExpected(path string) *Error {
	return &Error{Kind: KindFileExpected, Path: path}
}

func NotFound(path string) *Error {
	return &Error{Kind: KindNotFound, Path: path}
}

func NoPrimaryVolumeDescriptor() *Error {
	return &Error{Kind: KindNoPrimaryVolumeDescriptor}
}

func NoSetTerminator() *Error {
	return &Error{Kind: KindNoSetTerminator}
}

func UnknownDescriptorType(b byte) *Error {
	return &Error{Kind: KindUnknownDescriptorType, Byte: b}
}

func ParseError(detail string) *Error {
	return &Error{Kind: KindParseError, Detail: detail}
}

func ParseErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindParseError, Detail: fmt.Sprintf(format, args...)}
}

func ParseIncomplete(needed int) *Error {
	return &Error{Kind: KindParseIncomplete, Needed: needed}
}
