// Package validation checks decoded filesystem identifiers against the
// character sets ECMA-119 permits, used by the record decoder as a
// stricter check than plain ASCII validity.
package validation

import (
	"strings"

	"github.com/bgrewell/iso9660nav/pkg/consts"
)

// ValidFileIdentifier reports whether identifier contains only characters
// permitted in an ISO-9660 file identifier: d-characters plus the '.' and
// ';' separators.
func ValidFileIdentifier(identifier string) bool {
	return validateIdentifierRune(identifier, consts.ISO9660Separator1+consts.ISO9660Separator2)
}

// ValidDirectoryIdentifier reports whether identifier contains only
// characters permitted in an ISO-9660 directory identifier. The self
// (0x00) and parent (0x01) sentinel identifiers are always valid.
func ValidDirectoryIdentifier(identifier string) bool {
	if len(identifier) == 1 && (identifier[0] == 0x00 || identifier[0] == 0x01) {
		return true
	}
	return validateIdentifierRune(identifier, "")
}

func validateIdentifierRune(identifier string, additionalChars string) bool {
	allowed := consts.DCharacters + additionalChars
	for _, r := range identifier {
		if !strings.ContainsRune(allowed, r) {
			return false
		}
	}
	return true
}
