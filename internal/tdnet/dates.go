package tdnet

import "time"

// ParseDate parses a YYYY/MM/DD date, falling back to YYYY-MM-DD. Callers
// treat a false return as "skip this row", never as a fatal error.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006/01/02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
