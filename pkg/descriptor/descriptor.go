// Package descriptor decodes ISO-9660 volume descriptors: the 2048-byte
// records at logical sectors 16.. that describe a volume, including the
// Primary Volume Descriptor (which carries the root directory record and
// filesystem geometry), Boot Records, and the Set Terminator.
package descriptor

import (
	"github.com/bgrewell/iso9660nav/pkg/consts"
	"github.com/bgrewell/iso9660nav/pkg/isoerr"
	"github.com/go-logr/logr"
)

// Type identifies the kind of volume descriptor.
type Type byte

const (
	TypeBootRecord    Type = 0x00
	TypePrimary       Type = 0x01
	TypeSupplementary Type = 0x02
	TypePartition     Type = 0x03
	TypeSetTerminator Type = 0xFF
)

// StandardIdentifier is the required 5-byte magic ("CD001") present at
// offset 1 of every volume descriptor.
const StandardIdentifier = consts.ISO9660StandardIdentifier

// SupportedVersion is the only volume descriptor version this repository
// understands.
const SupportedVersion byte = consts.ISO9660VolumeDescriptorVersion

// SectorSize is the fixed size of a volume descriptor (and the fixed unit
// used to locate the descriptor set, independent of the logical block size
// later reported by the PVD).
const SectorSize = consts.ISO9660SectorSize

// Decode dispatches on the descriptor's type byte and decodes exactly one
// of BootRecord, PrimaryVolumeDescriptor, or SetTerminator. data must be
// exactly SectorSize bytes. Supplementary (Joliet) and Partition
// descriptors are explicitly not decoded by this repository: their type
// bytes surface as isoerr.UnknownDescriptorType, matching the Non-goal
// that Joliet/Rock Ridge/El Torito support stops at recognizing the Boot
// descriptor's existence.
func Decode(data []byte, log logr.Logger) (any, error) {
	if len(data) < SectorSize {
		return nil, isoerr.ParseIncomplete(SectorSize - len(data))
	}

	typeByte := data[0]
	log.V(2).Info("decoding volume descriptor", "type", typeByte)

	switch Type(typeByte) {
	case TypeBootRecord:
		return decodeBootRecord(data, log)
	case TypePrimary:
		return decodePrimaryVolumeDescriptor(data, log)
	case TypeSetTerminator:
		return decodeSetTerminator(data, log)
	default:
		return nil, isoerr.UnknownDescriptorType(typeByte)
	}
}

func checkHeader(data []byte) error {
	if string(data[1:6]) != StandardIdentifier {
		return isoerr.ParseErrorf("bad standard identifier: %q", data[1:6])
	}
	if data[6] != SupportedVersion {
		return isoerr.ParseErrorf("unsupported descriptor version: %d", data[6])
	}
	return nil
}

// SetTerminator marks the end of the volume descriptor set.
type SetTerminator struct {
	Version byte
}

func decodeSetTerminator(data []byte, log logr.Logger) (*SetTerminator, error) {
	if err := checkHeader(data); err != nil {
		return nil, err
	}
	log.V(1).Info("decoded set terminator")
	return &SetTerminator{Version: data[6]}, nil
}
