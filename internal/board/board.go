// Package board turns raw schedule and prediction records for a stop into an
// ordered, deduplicated list of upcoming departures.
package board

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/adamatan/mbta/internal/mbta"
)

// Stop describes one monitored stop.
type Stop struct {
	Name        string
	RouteID     string
	StopID      string
	DirectionID int // 0 or 1
	IsOrigin    bool
}

// Row is one candidate departure. A zero time means absent, and StopsAway is 0
// when unknown (valid proximities are 1 through maxStopsAway). A Row always
// carries at least one of Scheduled/Predicted.
type Row struct {
	Scheduled time.Time
	Predicted time.Time
	StopsAway int
}

// Service runs the per-stop fetch-and-merge pipeline.
type Service struct {
	api    *mbta.Client
	logger *slog.Logger
}

// New creates a departure board service.
func New(api *mbta.Client, logger *slog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Rows fetches, merges, filters and ranks the upcoming departures for one
// stop. Schedule and prediction fetch failures propagate to the caller; the
// parent-station and route-sequence lookups are best-effort and degrade to
// proximity-unknown, except for a rate limit, which always propagates.
func (s *Service) Rows(ctx context.Context, stop Stop, now time.Time) ([]Row, error) {
	scheds, err := s.api.Schedules(ctx, stop.RouteID, stop.StopID, stop.DirectionID, now)
	if err != nil {
		return nil, err
	}
	preds, err := s.api.Predictions(ctx, stop.RouteID, stop.StopID, stop.DirectionID)
	if err != nil {
		return nil, err
	}

	if err := s.resolveParents(ctx, preds); err != nil {
		return nil, err
	}

	sequence, err := s.api.RouteStops(ctx, stop.RouteID, stop.DirectionID)
	if err != nil {
		if errors.Is(err, mbta.ErrRateLimited) {
			return nil, err
		}
		s.logger.Warn("route stop sequence unavailable", "route", stop.RouteID, "error", err)
		sequence = nil
	}

	rows := mergeRows(stop, scheds, preds, sequence)
	rows = filterRows(rows, now)
	sortRows(rows, now)
	return rows, nil
}

// resolveParents completes the child->parent station map with one batched
// lookup for every stop the proximity estimator will need. A failed lookup is
// not fatal: unresolved stops fall back to mapping to themselves.
func (s *Service) resolveParents(ctx context.Context, preds *mbta.PredictionSet) error {
	missing := missingParentIDs(preds)
	if len(missing) == 0 {
		return nil
	}
	additions, err := s.api.ResolveParents(ctx, missing)
	if err != nil {
		if errors.Is(err, mbta.ErrRateLimited) {
			return err
		}
		s.logger.Warn("parent station lookup failed", "stops", len(missing), "error", err)
		return nil
	}
	for id, parent := range additions {
		preds.StopParents[id] = parent
	}
	return nil
}

// missingParentIDs collects, deduplicated, the vehicle and prediction stops
// not yet present in the parent map.
func missingParentIDs(preds *mbta.PredictionSet) []string {
	seen := make(map[string]bool)
	var missing []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		if _, ok := preds.StopParents[id]; !ok {
			missing = append(missing, id)
		}
	}
	for _, stopID := range preds.VehicleStops {
		add(stopID)
	}
	for _, rec := range preds.Records {
		add(rec.StopID)
	}
	return missing
}
