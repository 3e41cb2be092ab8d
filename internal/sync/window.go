package sync

import "time"

// Window is the UTC lookback window queried in one run. Both bounds
// are inclusive: a record starting exactly at End still belongs to
// this run.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow computes the window ending at now, normalized to UTC.
func NewWindow(now time.Time, lookback time.Duration) Window {
	end := now.UTC()
	return Window{
		Start: end.Add(-lookback),
		End:   end,
	}
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
