package core

import (
	"fmt"
	"time"
)

// Logbook dates are stored as compact YYMMDD digit strings with the year
// mapped into 2000-2099. Anything that is not exactly six ASCII digits is
// treated as unset.

// ValidDate reports whether raw is a well-formed stored date.
func ValidDate(raw string) bool {
	if len(raw) != 6 {
		return false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

// DecodeDate converts a stored date into a calendar date usable for
// comparisons. Component ranges are not checked; out-of-range months or days
// normalize the way time.Date does.
func DecodeDate(raw string) (time.Time, bool) {
	if !ValidDate(raw) {
		return time.Time{}, false
	}
	yy := int(raw[0]-'0')*10 + int(raw[1]-'0')
	mm := int(raw[2]-'0')*10 + int(raw[3]-'0')
	dd := int(raw[4]-'0')*10 + int(raw[5]-'0')
	return time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC), true
}

// EncodeDate is the inverse of DecodeDate for years in 2000-2099.
func EncodeDate(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", t.Year()%100, int(t.Month()), t.Day())
}

// FormatDate renders a stored date for display as YYYY-MM-DD. It works on the
// raw digits without decoding, so inputs that are not six digits (including
// the empty string) come back unchanged.
func FormatDate(raw string) string {
	if !ValidDate(raw) {
		return raw
	}
	return "20" + raw[0:2] + "-" + raw[2:4] + "-" + raw[4:6]
}
