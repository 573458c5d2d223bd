package board

import "github.com/adamatan/mbta/internal/mbta"

// mergeRows joins schedule and prediction records by trip ID, producing one
// row per scheduled trip. Predictions with no scheduled counterpart are
// dropped: the board is schedule-driven. Rows that end up with neither a
// scheduled nor a predicted time are skipped.
func mergeRows(stop Stop, scheds []mbta.ScheduleRecord, preds *mbta.PredictionSet, sequence []string) []Row {
	predsByTrip := make(map[string]mbta.PredictionRecord, len(preds.Records))
	for _, p := range preds.Records {
		predsByTrip[p.TripID] = p
	}

	rows := make([]Row, 0, len(scheds))
	for _, sched := range scheds {
		row := Row{
			Scheduled: pickTime(stop.IsOrigin, sched.ArrivalTime, sched.DepartureTime),
		}
		if pred, ok := predsByTrip[sched.TripID]; ok {
			row.Predicted = pickTime(stop.IsOrigin, pred.ArrivalTime, pred.DepartureTime)
			row.StopsAway = stopsAway(preds.VehicleStops[pred.VehicleID], pred.StopID, preds.StopParents, sequence)
		}
		if row.Scheduled.IsZero() && row.Predicted.IsZero() {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
