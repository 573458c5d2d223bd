package board

import "slices"

// maxStopsAway bounds plausible proximity values. A difference of 0 means the
// vehicle is already at the stop, and anything above 20 is a cross-route index
// collision; both are noise, not proximity.
const maxStopsAway = 20

// parentOf resolves a child stop to its parent station, falling back to the
// stop itself when unresolved.
func parentOf(parents map[string]string, stopID string) string {
	if p, ok := parents[stopID]; ok {
		return p
	}
	return stopID
}

// stopsAway counts route-sequence positions between a vehicle's current stop
// and the target stop, both normalized to parent stations. Returns 0 when the
// count is unknown or implausible; that is a common, legitimate outcome.
func stopsAway(vehicleStop, targetStop string, parents map[string]string, sequence []string) int {
	if vehicleStop == "" || targetStop == "" || len(sequence) == 0 {
		return 0
	}
	vi := slices.Index(sequence, parentOf(parents, vehicleStop))
	ti := slices.Index(sequence, parentOf(parents, targetStop))
	if vi < 0 || ti < 0 {
		return 0
	}
	diff := ti - vi
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 || diff > maxStopsAway {
		return 0
	}
	return diff
}
