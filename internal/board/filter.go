package board

import (
	"sort"
	"time"
)

// staleWindow is how many minutes a departure stays visible after its time has
// passed, keeping just-departed trips briefly on the board.
const staleWindow = 5

// filterRows drops rows all of whose times are more than staleWindow minutes
// in the past. When any surviving row carries live data, schedule-only rows
// that are not in the future are considered superseded and dropped too.
func filterRows(rows []Row, now time.Time) []Row {
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		sDiff := 0
		if !r.Scheduled.IsZero() {
			sDiff = minutesUntil(r.Scheduled, now)
		}
		pDiff := sDiff
		if !r.Predicted.IsZero() {
			pDiff = minutesUntil(r.Predicted, now)
		}
		if sDiff > -staleWindow || pDiff > -staleWindow {
			kept = append(kept, r)
		}
	}

	hasLive := false
	for _, r := range kept {
		if !r.Predicted.IsZero() {
			hasLive = true
			break
		}
	}
	if !hasLive {
		return kept
	}

	live := kept[:0]
	for _, r := range kept {
		if !r.Predicted.IsZero() || r.Scheduled.After(now) {
			live = append(live, r)
		}
	}
	return live
}

// sortRows orders rows ascending by predicted time when present, scheduled
// otherwise. Rows with neither sink to the bottom via a far-future sentinel;
// merge never produces such rows, so the sentinel is a safety net.
func sortRows(rows []Row, now time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return effectiveTime(rows[i], now).Before(effectiveTime(rows[j], now))
	})
}

func effectiveTime(r Row, now time.Time) time.Time {
	if !r.Predicted.IsZero() {
		return r.Predicted
	}
	if !r.Scheduled.IsZero() {
		return r.Scheduled
	}
	return now.Add(24 * time.Hour)
}

// minutesUntil is the whole-minute difference from now to t, truncated toward
// zero, negative for past times.
func minutesUntil(t, now time.Time) int {
	return int(t.Sub(now).Minutes())
}
