package board

import (
	"testing"
	"time"
)

var filterNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestFilterRows_StaleWindow(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		keep bool
	}{
		{"scheduled 4m ago is kept", Row{Scheduled: filterNow.Add(-4 * time.Minute)}, true},
		{"scheduled 5m ago is dropped", Row{Scheduled: filterNow.Add(-5 * time.Minute)}, false},
		{"scheduled 6m ago is dropped", Row{Scheduled: filterNow.Add(-6 * time.Minute)}, false},
		{"future scheduled is kept", Row{Scheduled: filterNow.Add(10 * time.Minute)}, true},
		{
			name: "stale schedule with fresh prediction is kept",
			row:  Row{Scheduled: filterNow.Add(-10 * time.Minute), Predicted: filterNow.Add(2 * time.Minute)},
			keep: true,
		},
		{
			name: "stale schedule with stale prediction is dropped",
			row:  Row{Scheduled: filterNow.Add(-10 * time.Minute), Predicted: filterNow.Add(-8 * time.Minute)},
			keep: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterRows([]Row{tt.row}, filterNow)
			if kept := len(got) == 1; kept != tt.keep {
				t.Errorf("kept = %v, want %v", kept, tt.keep)
			}
		})
	}
}

func TestFilterRows_LiveSupersedesStaleSchedule(t *testing.T) {
	rows := []Row{
		{Scheduled: filterNow.Add(-2 * time.Minute), Predicted: filterNow.Add(1 * time.Minute)},
		{Scheduled: filterNow.Add(-3 * time.Minute)}, // within the stale window, but superseded
	}

	got := filterRows(rows, filterNow)

	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Predicted.IsZero() {
		t.Error("the surviving row should be the live one")
	}
}

func TestFilterRows_LiveKeepsFutureSchedule(t *testing.T) {
	rows := []Row{
		{Scheduled: filterNow.Add(-2 * time.Minute), Predicted: filterNow.Add(1 * time.Minute)},
		{Scheduled: filterNow.Add(3 * time.Minute)}, // still in the future, stays
	}

	got := filterRows(rows, filterNow)

	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
}

func TestFilterRows_NoLiveKeepsRecentSchedule(t *testing.T) {
	rows := []Row{
		{Scheduled: filterNow.Add(-3 * time.Minute)},
		{Scheduled: filterNow.Add(4 * time.Minute)},
	}

	got := filterRows(rows, filterNow)

	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2: without live data recent schedules stay", len(got))
	}
}

func TestSortRows(t *testing.T) {
	rows := []Row{
		{Predicted: filterNow.Add(10 * time.Minute)},
		{Scheduled: filterNow.Add(2 * time.Minute)},
		{Predicted: filterNow.Add(5 * time.Minute)},
	}

	sortRows(rows, filterNow)

	wantOrder := []time.Time{
		filterNow.Add(2 * time.Minute),
		filterNow.Add(5 * time.Minute),
		filterNow.Add(10 * time.Minute),
	}
	for i, want := range wantOrder {
		if !effectiveTime(rows[i], filterNow).Equal(want) {
			t.Errorf("rows[%d] effective time = %v, want %v", i, effectiveTime(rows[i], filterNow), want)
		}
	}
}

func TestSortRows_SentinelSinksTimelessRows(t *testing.T) {
	rows := []Row{
		{}, // should never exist, but must not float to the top
		{Scheduled: filterNow.Add(2 * time.Minute)},
	}

	sortRows(rows, filterNow)

	if rows[0].Scheduled.IsZero() {
		t.Error("timeless row should sort last")
	}
}

func TestMinutesUntil_TruncatesTowardZero(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"30s ahead", filterNow.Add(30 * time.Second), 0},
		{"30s behind", filterNow.Add(-30 * time.Second), 0},
		{"90s ahead", filterNow.Add(90 * time.Second), 1},
		{"90s behind", filterNow.Add(-90 * time.Second), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := minutesUntil(tt.t, filterNow); got != tt.want {
				t.Errorf("minutesUntil = %d, want %d", got, tt.want)
			}
		})
	}
}
