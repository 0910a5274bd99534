package descriptor

import (
	"strconv"
	"time"

	"github.com/bgrewell/iso9660nav/pkg/isoerr"
)

// parseLongDate decodes the 17-byte ASCII volume-descriptor date/time
// format: "YYYYMMDDHHMMSSCC" (year, month, day, hour, minute, second,
// centisecond, each fixed-width ASCII digits) followed by a 1-byte GMT
// offset in 15-minute units offset by 48 (48 = UTC), distinct from the
// 7-byte binary format used by ordinary directory records (see pkg/record).
// All-ASCII-zero digits with a zero offset byte denote "unset" and decode
// to nil.
func parseLongDate(data []byte) (*time.Time, error) {
	if len(data) != 17 {
		return nil, isoerr.ParseErrorf("invalid long-form date length: %d", len(data))
	}

	allZero := true
	for _, b := range data[:16] {
		if b != '0' {
			allZero = false
			break
		}
	}
	if allZero && data[16] == 0 {
		return nil, nil
	}

	digits := string(data[:16])
	year, err := strconv.Atoi(digits[0:4])
	if err != nil {
		return nil, isoerr.ParseErrorf("long-form date year: %v", err)
	}
	month, err := strconv.Atoi(digits[4:6])
	if err != nil {
		return nil, isoerr.ParseErrorf("long-form date month: %v", err)
	}
	day, err := strconv.Atoi(digits[6:8])
	if err != nil {
		return nil, isoerr.ParseErrorf("long-form date day: %v", err)
	}
	hour, err := strconv.Atoi(digits[8:10])
	if err != nil {
		return nil, isoerr.ParseErrorf("long-form date hour: %v", err)
	}
	minute, err := strconv.Atoi(digits[10:12])
	if err != nil {
		return nil, isoerr.ParseErrorf("long-form date minute: %v", err)
	}
	second, err := strconv.Atoi(digits[12:14])
	if err != nil {
		return nil, isoerr.ParseErrorf("long-form date second: %v", err)
	}
	// digits[14:16] is hundredths of a second; not representable in the
	// second-resolution time.Time this repository uses elsewhere, and no
	// consumer needs sub-second precision for a volume timestamp.

	tz := int(data[16])
	offsetSeconds := (tz - 48) * 15 * 60
	loc := time.FixedZone("iso9660", offsetSeconds)

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	return &t, nil
}
