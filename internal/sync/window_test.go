package sync

import (
	"testing"
	"time"
)

func TestNewWindow(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, loc)

	w := NewWindow(now, 24*time.Hour)

	if w.End.Location() != time.UTC {
		t.Error("window end must be UTC-normalized")
	}
	if !w.End.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected window end: %v", w.End)
	}
	if !w.Start.Equal(w.End.Add(-24 * time.Hour)) {
		t.Errorf("unexpected window start: %v", w.Start)
	}
}

func TestWindowBoundaries(t *testing.T) {
	end := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	w := NewWindow(end, 24*time.Hour)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"exactly at end", end, true},
		{"one second after end", end.Add(time.Second), false},
		{"exactly at start", w.Start, true},
		{"one second before start", w.Start.Add(-time.Second), false},
		{"middle of window", end.Add(-12 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}
