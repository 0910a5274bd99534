// Package consts holds the fixed constants ECMA-119 defines for ISO-9660
// images: sector geometry, descriptor framing, and the allowed filename
// character sets this repository validates identifiers against.
package consts

const (
	// ISO9660SystemAreaSectors is the number of sectors reserved before
	// the volume descriptor set begins.
	ISO9660SystemAreaSectors = 16

	// ISO9660StandardIdentifier is the "CD001" magic present in every
	// volume descriptor.
	ISO9660StandardIdentifier = "CD001"

	// ISO9660VolumeDescriptorVersion is the only descriptor version this
	// repository understands.
	ISO9660VolumeDescriptorVersion = 1

	// ISO9660SectorSize is the fixed sector size used for volume
	// descriptor discovery.
	ISO9660SectorSize = 2048

	// DCharacters is the 37-character set ("d-characters" in ECMA-119)
	// allowed in directory identifiers: digits, uppercase A-Z, and
	// underscore.
	DCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_"

	// ISO9660Separator1 and ISO9660Separator2 are the two special
	// characters permitted in file identifiers beyond DCharacters: '.'
	// delimits the name from the extension, ';' delimits the version.
	ISO9660Separator1 = "."
	ISO9660Separator2 = ";"

	// ISO9660Filler is the space-padding byte used in fixed-width
	// identifier fields in the Primary Volume Descriptor.
	ISO9660Filler = " "
)
