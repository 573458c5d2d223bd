package board

import "time"

// parseTime converts an RFC-3339 wire timestamp to a local-zone instant. The
// feed routinely omits one of arrival/departure, so an empty or malformed
// value is absence, not an error.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.In(time.Local)
}

// pickTime applies the origin/non-origin field preference: origin stops use
// the departure time, other stops prefer arrival and fall back to departure.
func pickTime(isOrigin bool, arrival, departure string) time.Time {
	s := departure
	if !isOrigin && arrival != "" {
		s = arrival
	}
	return parseTime(s)
}
