package tdnet

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func candidatesOn(dates ...time.Time) []Candidate {
	var cands []Candidate
	for _, d := range dates {
		cands = append(cands, Candidate{PublishDate: d})
	}
	return cands
}

func TestWindowUnbounded(t *testing.T) {
	cands := candidatesOn(day(2020, 1, 1), day(2030, 12, 31))

	kept, stop := Window{}.Filter(cands)
	if stop {
		t.Error("unbounded window must never signal stop")
	}
	if len(kept) != len(cands) {
		t.Errorf("unbounded window kept %d of %d", len(kept), len(cands))
	}
}

func TestWindowContainment(t *testing.T) {
	w := Window{Start: day(2025, 1, 10), End: day(2025, 1, 20)}
	cands := candidatesOn(
		day(2025, 1, 9),
		day(2025, 1, 10),
		day(2025, 1, 15),
		day(2025, 1, 20),
		day(2025, 1, 21),
	)

	kept, stop := w.Filter(cands)
	if stop {
		t.Error("page with in-window dates must not signal stop")
	}
	if len(kept) != 3 {
		t.Fatalf("kept %d candidates, want 3", len(kept))
	}
	for _, c := range kept {
		if !w.Contains(c.PublishDate) {
			t.Errorf("kept out-of-window date %v", c.PublishDate)
		}
	}
}

func TestWindowStopSignal(t *testing.T) {
	w := Window{Start: day(2025, 1, 10), End: day(2025, 1, 20)}

	// Every date on the page precedes the window start.
	kept, stop := w.Filter(candidatesOn(day(2025, 1, 5), day(2025, 1, 8)))
	if !stop {
		t.Error("page entirely before window start must signal stop")
	}
	if len(kept) != 0 {
		t.Errorf("stop page kept %d candidates", len(kept))
	}

	// One date inside the window: no stop.
	_, stop = w.Filter(candidatesOn(day(2025, 1, 5), day(2025, 1, 12)))
	if stop {
		t.Error("page with an in-window date must not signal stop")
	}
}
