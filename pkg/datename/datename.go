// Package datename extracts a calendar date embedded in a filename.
//
// Extraction is strict: a filename must contain exactly one candidate date
// pattern, and that candidate must form a real calendar date. Anything
// ambiguous yields "no date" rather than a guess.
package datename

import "time"

// Parser attempts to read a date out of a filename. It reports ok=false when
// the name yields no unambiguous, valid date. Parsers never return errors;
// "no date" is an expected outcome, not a failure.
type Parser func(name string) (t time.Time, ok bool)

// Parsers returns the default parser chain, tried in order. First success
// wins. New formats slot in here without touching any caller.
func Parsers() []Parser {
	return []Parser{YYYYMMDD}
}

// Extract runs the default chain over name.
func Extract(name string) (time.Time, bool) {
	return ExtractWith(Parsers(), name)
}

// ExtractWith runs the given parsers in order and returns the first match.
func ExtractWith(parsers []Parser, name string) (time.Time, bool) {
	for _, parse := range parsers {
		if t, ok := parse(name); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// YYYYMMDD parses an 8-digit date embedded anywhere in name.
//
// Every position is scanned, so overlapping windows count separately: a run
// of nine digits contains two candidates and is rejected as ambiguous. The
// name must contain exactly one window, and the window must be a real
// calendar date (month 1-12, day valid for that month and year).
func YYYYMMDD(name string) (time.Time, bool) {
	start := -1
	windows := 0
	for i := 0; i+8 <= len(name); i++ {
		if !allDigits(name[i : i+8]) {
			continue
		}
		windows++
		if windows > 1 {
			return time.Time{}, false
		}
		start = i
	}
	if windows != 1 {
		return time.Time{}, false
	}

	win := name[start : start+8]
	year := atoi(win[0:4])
	month := atoi(win[4:6])
	day := atoi(win[6:8])
	return makeDate(year, month, day)
}

// makeDate validates the components by round-tripping them through time.Date,
// which normalizes out-of-range values (2023-02-30 becomes 2023-03-02).
func makeDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoi converts a digit-only substring; callers guarantee the input.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
