package mbta

// ScheduleRecord is one scheduled stop-event for a trip. Times are raw RFC-3339
// strings as returned by the API; either may be empty.
type ScheduleRecord struct {
	TripID        string
	ArrivalTime   string
	DepartureTime string
}

// PredictionRecord is one live stop-event for a trip.
type PredictionRecord struct {
	TripID        string
	ArrivalTime   string
	DepartureTime string
	VehicleID     string // empty when no vehicle is assigned yet
	StopID        string // child stop the prediction targets
}

// PredictionSet bundles prediction records with the lookup tables built from
// the response's sideloaded resources. Both maps are rebuilt on every call.
type PredictionSet struct {
	Records      []PredictionRecord
	VehicleStops map[string]string // vehicle ID -> its current child stop
	StopParents  map[string]string // child stop -> parent station (self if none)
}

// JSON:API envelope types. Relationship data is null when the resource has no
// related record, so it decodes through a pointer.

type resourceID struct {
	ID string `json:"id"`
}

type relationship struct {
	Data *resourceID `json:"data"`
}

type scheduleResponse struct {
	Data []struct {
		Attributes struct {
			ArrivalTime   string `json:"arrival_time"`
			DepartureTime string `json:"departure_time"`
		} `json:"attributes"`
		Relationships struct {
			Trip relationship `json:"trip"`
		} `json:"relationships"`
	} `json:"data"`
}

type predictionResponse struct {
	Data []struct {
		Attributes struct {
			ArrivalTime   string `json:"arrival_time"`
			DepartureTime string `json:"departure_time"`
		} `json:"attributes"`
		Relationships struct {
			Trip    relationship `json:"trip"`
			Vehicle relationship `json:"vehicle"`
			Stop    relationship `json:"stop"`
		} `json:"relationships"`
	} `json:"data"`
	Included []struct {
		Type          string `json:"type"`
		ID            string `json:"id"`
		Relationships struct {
			Stop          relationship `json:"stop"`
			ParentStation relationship `json:"parent_station"`
		} `json:"relationships"`
	} `json:"included"`
}

type stopsResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Relationships struct {
			ParentStation relationship `json:"parent_station"`
		} `json:"relationships"`
	} `json:"data"`
}
