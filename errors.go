package iso9660nav

import "github.com/bgrewell/iso9660nav/pkg/isoerr"

// Error is the structured error type returned by every operation in this
// package. Use errors.As to recover it and inspect Kind.
type Error = isoerr.Error

// Kind identifies the category of an Error.
type Kind = isoerr.Kind

const (
	KindIO                        = isoerr.KindIO
	KindDirectoryExpected         = isoerr.KindDirectoryExpected
	KindFileExpected              = isoerr.KindFileExpected
	KindNotFound                  = isoerr.KindNotFound
	KindNoPrimaryVolumeDescriptor = isoerr.KindNoPrimaryVolumeDescriptor
	KindNoSetTerminator           = isoerr.KindNoSetTerminator
	KindUnknownDescriptorType     = isoerr.KindUnknownDescriptorType
	KindParseError                = isoerr.KindParseError
	KindParseIncomplete           = isoerr.KindParseIncomplete
)
