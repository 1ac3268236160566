package tdnet

import "time"

// Window is an inclusive [Start, End] date range. The zero Window is
// unbounded and passes every record.
type Window struct {
	Start time.Time
	End   time.Time
}

// Bounded reports whether both ends of the window are set.
func (w Window) Bounded() bool {
	return !w.Start.IsZero() && !w.End.IsZero()
}

// Contains reports whether d satisfies Start <= d <= End.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Filter keeps the in-window candidates from one page. The stop result is
// true when every date on the page is already older than the window start:
// the source is sorted newest-first, so later pages cannot contain
// in-window records either. A true stop never drops valid records, because
// the page's maximum date precedes the window.
func (w Window) Filter(cands []Candidate) (kept []Candidate, stop bool) {
	if !w.Bounded() {
		return cands, false
	}

	var maxDate time.Time
	for _, c := range cands {
		if c.PublishDate.After(maxDate) {
			maxDate = c.PublishDate
		}
	}
	if !maxDate.IsZero() && maxDate.Before(w.Start) {
		return nil, true
	}

	for _, c := range cands {
		if w.Contains(c.PublishDate) {
			kept = append(kept, c)
		}
	}
	return kept, false
}
