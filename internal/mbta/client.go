// Package mbta is an HTTP client for the MBTA v3 API (api-v3.mbta.com).
package mbta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimited is returned when the API responds with HTTP 429. A 429 on one
// endpoint strongly predicts failure on the rest, so callers abort the whole
// run instead of rendering partial output.
var ErrRateLimited = errors.New("mbta: rate limited")

// scheduleLookback is how far behind now the schedule query reaches, to catch
// delayed trips that are still inbound.
const scheduleLookback = 30 * time.Minute

// Client is an MBTA v3 API client.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates an MBTA API client. apiKey may be empty; keyless requests
// run at a reduced quota.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Schedules fetches the scheduled stop-events for a stop/route/direction,
// looking back 30 minutes from now.
func (c *Client) Schedules(ctx context.Context, routeID, stopID string, directionID int, now time.Time) ([]ScheduleRecord, error) {
	q := url.Values{
		"filter[stop]":         {stopID},
		"filter[route]":        {routeID},
		"filter[direction_id]": {strconv.Itoa(directionID)},
		"sort":                 {"arrival_time"},
		"filter[min_time]":     {now.Add(-scheduleLookback).Format("15:04")},
		"page[limit]":          {"20"},
	}

	var resp scheduleResponse
	if err := c.getJSON(ctx, "/schedules", q, &resp); err != nil {
		return nil, fmt.Errorf("fetch schedules for stop %s: %w", stopID, err)
	}

	records := make([]ScheduleRecord, 0, len(resp.Data))
	for _, d := range resp.Data {
		rec := ScheduleRecord{
			ArrivalTime:   d.Attributes.ArrivalTime,
			DepartureTime: d.Attributes.DepartureTime,
		}
		if d.Relationships.Trip.Data != nil {
			rec.TripID = d.Relationships.Trip.Data.ID
		}
		records = append(records, rec)
	}
	return records, nil
}

// Predictions fetches live predictions for a stop/route/direction, sideloading
// vehicle and stop resources to build the vehicle-position and parent-station
// lookup tables.
func (c *Client) Predictions(ctx context.Context, routeID, stopID string, directionID int) (*PredictionSet, error) {
	q := url.Values{
		"filter[stop]":         {stopID},
		"filter[route]":        {routeID},
		"filter[direction_id]": {strconv.Itoa(directionID)},
		"sort":                 {"arrival_time"},
		"page[limit]":          {"3"},
		"include":              {"vehicle,stop"},
	}

	var resp predictionResponse
	if err := c.getJSON(ctx, "/predictions", q, &resp); err != nil {
		return nil, fmt.Errorf("fetch predictions for stop %s: %w", stopID, err)
	}

	set := &PredictionSet{
		Records:      make([]PredictionRecord, 0, len(resp.Data)),
		VehicleStops: make(map[string]string),
		StopParents:  make(map[string]string),
	}
	for _, inc := range resp.Included {
		switch inc.Type {
		case "vehicle":
			if inc.Relationships.Stop.Data != nil {
				set.VehicleStops[inc.ID] = inc.Relationships.Stop.Data.ID
			}
		case "stop":
			parent := inc.ID
			if inc.Relationships.ParentStation.Data != nil {
				parent = inc.Relationships.ParentStation.Data.ID
			}
			set.StopParents[inc.ID] = parent
		}
	}
	for _, d := range resp.Data {
		rec := PredictionRecord{
			ArrivalTime:   d.Attributes.ArrivalTime,
			DepartureTime: d.Attributes.DepartureTime,
		}
		if d.Relationships.Trip.Data != nil {
			rec.TripID = d.Relationships.Trip.Data.ID
		}
		if d.Relationships.Vehicle.Data != nil {
			rec.VehicleID = d.Relationships.Vehicle.Data.ID
		}
		if d.Relationships.Stop.Data != nil {
			rec.StopID = d.Relationships.Stop.Data.ID
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}

// ResolveParents maps child stop IDs to their parent stations in one batched
// call. A stop with no parent station maps to itself.
func (c *Client) ResolveParents(ctx context.Context, stopIDs []string) (map[string]string, error) {
	if len(stopIDs) == 0 {
		return nil, nil
	}
	q := url.Values{
		"filter[id]": {strings.Join(stopIDs, ",")},
	}

	var resp stopsResponse
	if err := c.getJSON(ctx, "/stops", q, &resp); err != nil {
		return nil, fmt.Errorf("resolve parent stations: %w", err)
	}

	parents := make(map[string]string, len(resp.Data))
	for _, d := range resp.Data {
		parent := d.ID
		if d.Relationships.ParentStation.Data != nil {
			parent = d.Relationships.ParentStation.Data.ID
		}
		parents[d.ID] = parent
	}
	return parents, nil
}

// RouteStops fetches the ordered stop-ID sequence for a route and direction.
func (c *Client) RouteStops(ctx context.Context, routeID string, directionID int) ([]string, error) {
	q := url.Values{
		"filter[route]":        {routeID},
		"filter[direction_id]": {strconv.Itoa(directionID)},
	}

	var resp stopsResponse
	if err := c.getJSON(ctx, "/stops", q, &resp); err != nil {
		return nil, fmt.Errorf("fetch stops for route %s: %w", routeID, err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, d := range resp.Data {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.api+json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	c.logger.Debug("mbta request", "url", u)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
