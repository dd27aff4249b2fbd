package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericDateRe = regexp.MustCompile(`^(\d{1,4})[\/\-.](\d{1,2})[\/\-.](\d{1,4})$`)

	monthNameFormats = []string{
		"Jan 2, 2006",
		"Jan 2 2006",
		"January 2, 2006",
		"January 2 2006",
		"2 Jan 2006",
		"2 January 2006",
		"02-Jan-2006",
	}
)

// NormalizeDate converts a raw date string into ISO year-month-day form.
// A 4-digit token identifies the year; when day/month order is ambiguous
// (both values <= 12) the month-first reading is assumed, since a true day
// position over 12 would have disambiguated.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		return normalizeNumericDate(m[1], m[2], m[3])
	}

	for _, f := range monthNameFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

func normalizeNumericDate(a, b, c string) (string, bool) {
	an, _ := strconv.Atoi(a)
	bn, _ := strconv.Atoi(b)
	cn, _ := strconv.Atoi(c)

	var year, month, day int
	switch {
	case len(a) == 4:
		// year-first: YYYY-MM-DD
		year, month, day = an, bn, cn
	case len(c) == 4:
		year = cn
		switch {
		case an > 12 && bn <= 12:
			day, month = an, bn
		case bn > 12 && an <= 12:
			month, day = an, bn
		default:
			// ambiguous: both positions could be the day
			month, day = an, bn
		}
	default:
		// two-digit year, assume current century
		year = 2000 + cn
		if an > 12 && bn <= 12 {
			day, month = an, bn
		} else {
			month, day = an, bn
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1000 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// isoDateRe matches the canonical output of NormalizeDate.
var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsISODate reports whether a date string is already in canonical form.
func IsISODate(s string) bool {
	return isoDateRe.MatchString(s)
}
