package descriptor

import (
	"github.com/bgrewell/iso9660nav/pkg/encoding"
	"github.com/go-logr/logr"
)

// BootRecord identifies a bootable volume. Its payload is recognized but
// never interpreted: El Torito boot catalog parsing is out of scope for
// this repository.
type BootRecord struct {
	Version          byte
	SystemIdentifier string
	BootIdentifier   string
	Payload          []byte
}

func decodeBootRecord(data []byte, log logr.Logger) (*BootRecord, error) {
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	systemID, err := encoding.NullTerminatedField(data[7:39], 32)
	if err != nil {
		return nil, err
	}
	bootID, err := encoding.NullTerminatedField(data[39:71], 32)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, len(data[71:2048]))
	copy(payload, data[71:2048])

	log.V(1).Info("decoded boot record", "systemIdentifier", systemID, "bootIdentifier", bootID)

	return &BootRecord{
		Version:          data[6],
		SystemIdentifier: systemID,
		BootIdentifier:   bootID,
		Payload:          payload,
	}, nil
}
