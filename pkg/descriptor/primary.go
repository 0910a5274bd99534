package descriptor

import (
	"time"

	"github.com/bgrewell/iso9660nav/pkg/encoding"
	"github.com/bgrewell/iso9660nav/pkg/isoerr"
	"github.com/bgrewell/iso9660nav/pkg/record"
	"github.com/go-logr/logr"
)

// PrimaryVolumeDescriptor is the one volume descriptor required in every
// ISO-9660 image. It carries the root directory record and the geometry
// (logical block size) that the rest of this repository needs to navigate
// the disc.
type PrimaryVolumeDescriptor struct {
	Version              byte
	SystemIdentifier     string
	VolumeIdentifier     string
	VolumeSpaceSize      uint32
	VolumeSetSize        uint16
	VolumeSequenceNumber uint16
	LogicalBlockSize     uint16
	PathTableSize        uint32
	RootRecord           *record.Record

	VolumeSetIdentifier         string
	PublisherIdentifier         string
	DataPreparerIdentifier      string
	ApplicationIdentifier       string
	CopyrightFileIdentifier     string
	AbstractFileIdentifier      string
	BibliographicFileIdentifier string

	VolumeCreationDate     *time.Time
	VolumeModificationDate *time.Time
	VolumeExpirationDate   *time.Time
	VolumeEffectiveDate    *time.Time

	FileStructureVersion byte
	ApplicationUse       [512]byte
}

func decodePrimaryVolumeDescriptor(data []byte, log logr.Logger) (*PrimaryVolumeDescriptor, error) {
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	systemID, err := encoding.NullTerminatedField(data[8:40], 32)
	if err != nil {
		return nil, err
	}
	volumeID, err := encoding.NullTerminatedField(data[40:72], 32)
	if err != nil {
		return nil, err
	}

	volumeSpaceSize, err := encoding.BothEndianUint32(data[80:88])
	if err != nil {
		return nil, isoerr.ParseErrorf("volume space size: %v", err)
	}

	volumeSetSize, err := encoding.BothEndianUint16(data[120:124])
	if err != nil {
		return nil, isoerr.ParseErrorf("volume set size: %v", err)
	}

	seqNumber, err := encoding.BothEndianUint16(data[124:128])
	if err != nil {
		return nil, isoerr.ParseErrorf("volume sequence number: %v", err)
	}

	blockSize, err := encoding.BothEndianUint16(data[128:132])
	if err != nil {
		return nil, isoerr.ParseErrorf("logical block size: %v", err)
	}

	pathTableSize, err := encoding.BothEndianUint32(data[132:140])
	if err != nil {
		return nil, isoerr.ParseErrorf("path table size: %v", err)
	}
	// data[140:156]: the four path-table location fields (L and M, 4
	// bytes each) are parsed-over and never retained. This repository's
	// node tree resolves directories exclusively through directory
	// records reachable from the root; it never walks the path table.

	rootRec, _, err := record.Decode(data[156:190])
	if err != nil {
		return nil, isoerr.ParseErrorf("root directory record: %v", err)
	}

	volumeSetID, err := encoding.NullTerminatedField(data[190:318], 128)
	if err != nil {
		return nil, err
	}
	publisherID, err := encoding.NullTerminatedField(data[318:446], 128)
	if err != nil {
		return nil, err
	}
	dataPreparerID, err := encoding.NullTerminatedField(data[446:574], 128)
	if err != nil {
		return nil, err
	}
	applicationID, err := encoding.NullTerminatedField(data[574:702], 128)
	if err != nil {
		return nil, err
	}
	copyrightFileID, err := encoding.NullTerminatedField(data[702:740], 38)
	if err != nil {
		return nil, err
	}
	abstractFileID, err := encoding.NullTerminatedField(data[740:776], 36)
	if err != nil {
		return nil, err
	}
	bibliographicFileID, err := encoding.NullTerminatedField(data[776:813], 37)
	if err != nil {
		return nil, err
	}

	creationDate, err := parseLongDate(data[813:830])
	if err != nil {
		return nil, isoerr.ParseErrorf("volume creation date: %v", err)
	}
	modificationDate, err := parseLongDate(data[830:847])
	if err != nil {
		return nil, isoerr.ParseErrorf("volume modification date: %v", err)
	}
	expirationDate, err := parseLongDate(data[847:864])
	if err != nil {
		return nil, isoerr.ParseErrorf("volume expiration date: %v", err)
	}
	effectiveDate, err := parseLongDate(data[864:881])
	if err != nil {
		return nil, isoerr.ParseErrorf("volume effective date: %v", err)
	}

	fileStructureVersion := data[881]
	// data[882]: reserved, parsed-over.

	var appUse [512]byte
	copy(appUse[:], data[883:1395])
	// data[1395:2048]: reserved tail, parsed-over and never retained: no
	// component in this repository has a use for it.

	pvd := &PrimaryVolumeDescriptor{
		Version:                     data[6],
		SystemIdentifier:            encoding.TrimPadding(systemID),
		VolumeIdentifier:            encoding.TrimPadding(volumeID),
		VolumeSpaceSize:             volumeSpaceSize,
		VolumeSetSize:               volumeSetSize,
		VolumeSequenceNumber:        seqNumber,
		LogicalBlockSize:            blockSize,
		PathTableSize:               pathTableSize,
		RootRecord:                  rootRec,
		VolumeSetIdentifier:         encoding.TrimPadding(volumeSetID),
		PublisherIdentifier:         encoding.TrimPadding(publisherID),
		DataPreparerIdentifier:      encoding.TrimPadding(dataPreparerID),
		ApplicationIdentifier:       encoding.TrimPadding(applicationID),
		CopyrightFileIdentifier:     encoding.TrimPadding(copyrightFileID),
		AbstractFileIdentifier:      encoding.TrimPadding(abstractFileID),
		BibliographicFileIdentifier: encoding.TrimPadding(bibliographicFileID),
		VolumeCreationDate:          creationDate,
		VolumeModificationDate:      modificationDate,
		VolumeExpirationDate:        expirationDate,
		VolumeEffectiveDate:         effectiveDate,
		FileStructureVersion:        fileStructureVersion,
		ApplicationUse:              appUse,
	}

	log.V(1).Info("decoded primary volume descriptor",
		"volumeIdentifier", pvd.VolumeIdentifier,
		"logicalBlockSize", pvd.LogicalBlockSize,
		"rootExtent", rootRec.Extent,
	)

	return pvd, nil
}
